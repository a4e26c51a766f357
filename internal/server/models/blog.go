package models

import "time"

// Blog is a post. CreatedBy holds the owning user's id; Author is filled by
// read queries that join the users table.
type Blog struct {
	ID            string
	Title         string
	Body          string
	CoverImageKey string
	CreatedBy     string
	Author        Author
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
