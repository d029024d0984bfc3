package mongodb

import (
	"github.com/baharkarakas/bloglist-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Name         string               `bson:"name"`
	PasswordHash string               `bson:"passwordHash"`
	Blogs        []primitive.ObjectID `bson:"blogs"`
}

type blogDoc struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty"`
	Title    string              `bson:"title"`
	Author   string              `bson:"author"`
	URL      string              `bson:"url"`
	Likes    int64               `bson:"likes"`
	User     *primitive.ObjectID `bson:"user,omitempty"`
	Comments []string            `bson:"comments"`
}

func (d userDoc) summary() models.UserSummary {
	return models.UserSummary{ID: d.ID.Hex(), Username: d.Username, Name: d.Name}
}

// model populates Blogs from byID, skipping references whose blog is gone.
func (d userDoc) model(byID map[primitive.ObjectID]blogDoc) models.User {
	u := models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Blogs:        []models.BlogSummary{},
	}
	for _, id := range d.Blogs {
		if b, ok := byID[id]; ok {
			u.Blogs = append(u.Blogs, models.BlogSummary{ID: b.ID.Hex(), Title: b.Title, Author: b.Author, URL: b.URL})
		}
	}
	return u
}

func (d blogDoc) model(owners map[primitive.ObjectID]userDoc) models.Blog {
	b := models.Blog{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Author:   d.Author,
		URL:      d.URL,
		Likes:    d.Likes,
		Comments: d.Comments,
	}
	if b.Comments == nil {
		b.Comments = []string{}
	}
	if d.User != nil {
		if u, ok := owners[*d.User]; ok {
			s := u.summary()
			b.User = &s
		} else {
			b.User = &models.UserSummary{ID: d.User.Hex()}
		}
	}
	return b
}
