package domain

import "time"

// User models a registered account. PasswordHash always holds a bcrypt digest.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserChanges carries the columns an update is allowed to touch.
// A nil PasswordHash leaves the stored hash untouched.
type UserChanges struct {
	Username     string
	Email        string
	PasswordHash *string
}
