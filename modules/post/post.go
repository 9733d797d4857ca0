package post

import "time"

// Post is a titled piece of content. Titles are unique.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthoredBy string    `json:"authoredBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Summary is the projection returned when a single post is fetched.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Input carries title and body for create and update.
type Input struct {
	Title string
	Body  string
}

// List wraps every stored post.
type List struct {
	PostList []Post `json:"postList"`
}
