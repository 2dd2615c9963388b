package domain

import "time"

// User is an account that owns campaigns. PasswordHash is never serialised.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// NewUser carries the fields needed to insert a user row.
type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
}

// Identity is the authenticated principal extracted from a bearer token.
type Identity struct {
	UserID int64
	Email  string
}
