// Package common contains shared constants and sentinel errors used across
// Blogify components.
package common

import "time"

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

// DefaultTokenValidity is how long an issued session token stays valid.
const DefaultTokenValidity = 7 * 24 * time.Hour

// DefaultProfileImageURL is assigned to users that never uploaded an avatar.
const DefaultProfileImageURL = "/images/default.png"

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
