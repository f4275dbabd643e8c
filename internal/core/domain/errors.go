package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")

	// Empty list results are reported as not-found, not as an empty success.
	ErrNoUsers     = errors.New("no users found")
	ErrNoPosts     = errors.New("no posts found")
	ErrNoUserPosts = errors.New("no posts found for this user")

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPostNotFound) ||
		errors.Is(err, ErrNoUsers) ||
		errors.Is(err, ErrNoPosts) ||
		errors.Is(err, ErrNoUserPosts)
}
