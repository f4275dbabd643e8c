package domain

import "time"

// Post is an article written by a User. AuthorID references User.ID.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  int64     `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostChanges carries the columns a post update may touch.
type PostChanges struct {
	Title   string
	Content string
}
