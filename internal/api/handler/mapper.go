package handler

import (
	"strconv"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// listOptions coerces validated query strings. Limit is clamped to
// 1..MaxListLimit; absent values take the defaults.
func listOptions(limit, sort, order string) ports.ListOptions {
	opts := ports.ListOptions{
		Limit: ports.DefaultListLimit,
		Sort:  sort,
		Order: ports.SortOrder(order),
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		switch {
		case err != nil, n > ports.MaxListLimit:
			// only digits reach here, so a parse error means overflow
			n = ports.MaxListLimit
		case n < 1:
			n = 1
		}
		opts.Limit = n
	}
	return opts.WithDefaults()
}

// parseUserID converts a validated numeric path parameter. Values beyond
// int64 cannot name an existing user.
func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return id, nil
}

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

func toUpdateUserInput(id int64, req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

func toCreatePostInput(authorID int64, req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		AuthorID:  authorID,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published != nil && *req.Published,
	}
}

func toUpdatePostInput(id string, req updatePostRequest) ports.UpdatePostInput {
	return ports.UpdatePostInput{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	}
}
