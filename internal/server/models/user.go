// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. Salt and PasswordHash are credential material and are
// never serialised.
type User struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Salt            string    `json:"-"`
	PasswordHash    string    `json:"-"`
	ProfileImageURL string    `json:"profileImageURL"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Author is the public summary of a user embedded into blogs and comments.
type Author struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	ProfileImageURL string `json:"profileImageURL"`
}
