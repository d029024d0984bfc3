package models

type Blog struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Author   string       `json:"author"`
	URL      string       `json:"url"`
	Likes    int64        `json:"likes"`
	User     *UserSummary `json:"user,omitempty"`
	Comments []string     `json:"comments"`
}

// BlogSummary is the populated form of an entry in User.Blogs.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

func (b Blog) Summary() BlogSummary {
	return BlogSummary{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL}
}

// OwnedBy is false for blogs without an owner.
func (b Blog) OwnedBy(userID string) bool {
	return b.User != nil && userID != "" && b.User.ID == userID
}

// UserID returns the owner id, or "" when unset.
func (b Blog) UserID() string {
	if b.User == nil {
		return ""
	}
	return b.User.ID
}
