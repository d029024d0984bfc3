package services

import "github.com/baharkarakas/bloglist-backend/internal/models"

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int64  `json:"likes"`
}

// Stats summarises a blog list. Ties go to the earliest blog or author.
type Stats struct {
	TotalLikes   int64        `json:"totalLikes"`
	FavoriteBlog *models.Blog `json:"favoriteBlog"`
	MostBlogs    *AuthorBlogs `json:"mostBlogs"`
	MostLikes    *AuthorLikes `json:"mostLikes"`
}

func ComputeStats(blogs []models.Blog) Stats {
	return Stats{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

func TotalLikes(blogs []models.Blog) int64 {
	var total int64
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

func FavoriteBlog(blogs []models.Blog) *models.Blog {
	if len(blogs) == 0 {
		return nil
	}
	best := 0
	for i, b := range blogs {
		if b.Likes > blogs[best].Likes {
			best = i
		}
	}
	fav := blogs[best]
	return &fav
}

func MostBlogs(blogs []models.Blog) *AuthorBlogs {
	order, counts := groupByAuthor(blogs, func(models.Blog) int64 { return 1 })
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, a := range order[1:] {
		if counts[a] > counts[best] {
			best = a
		}
	}
	return &AuthorBlogs{Author: best, Blogs: int(counts[best])}
}

func MostLikes(blogs []models.Blog) *AuthorLikes {
	order, likes := groupByAuthor(blogs, func(b models.Blog) int64 { return b.Likes })
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, a := range order[1:] {
		if likes[a] > likes[best] {
			best = a
		}
	}
	return &AuthorLikes{Author: best, Likes: likes[best]}
}

// groupByAuthor sums weight per author and returns authors in first-seen order.
func groupByAuthor(blogs []models.Blog, weight func(models.Blog) int64) ([]string, map[string]int64) {
	var order []string
	sums := map[string]int64{}
	for _, b := range blogs {
		if _, seen := sums[b.Author]; !seen {
			order = append(order, b.Author)
		}
		sums[b.Author] += weight(b)
	}
	return order, sums
}
