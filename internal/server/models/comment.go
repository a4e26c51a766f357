package models

import "time"

// Comment is a reply to a blog. Comments are append-only.
type Comment struct {
	ID        string
	Content   string
	BlogID    string
	CreatedBy string
	Author    Author
	CreatedAt time.Time
	UpdatedAt time.Time
}
