package models

type User struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Name         string        `json:"name"`
	PasswordHash string        `json:"-"`
	Blogs        []BlogSummary `json:"blogs"` // creation order
}

// UserSummary is the populated form of Blog.User.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Name: u.Name}
}

// HasBlog reports whether id appears in the owned set.
func (u User) HasBlog(id string) bool {
	for _, b := range u.Blogs {
		if b.ID == id {
			return true
		}
	}
	return false
}
