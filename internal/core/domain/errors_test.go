package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrUserNotFound, true},
		{ErrPostNotFound, true},
		{ErrNoUsers, true},
		{ErrNoPosts, true},
		{ErrNoUserPosts, true},
		{fmt.Errorf("find user: %w", ErrUserNotFound), true},
		{ErrEmailTaken, false},
		{ErrInvalidCredentials, false},
		{errors.New("connection reset"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsNotFound(tt.err); got != tt.want {
			t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
