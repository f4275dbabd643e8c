package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	// posts removed by Delete, keyed by author.
	postCounts map[int64]int64
	lastList   ports.ListOptions
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), postCounts: make(map[int64]int64)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	r.lastList = opts
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneUser(r.users[id]))
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, changes domain.UserChanges) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username = changes.Username
	u.Email = changes.Email
	if changes.PasswordHash != nil {
		u.PasswordHash = *changes.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return r.postCounts[id], nil
}

type stubPostRepo struct {
	posts      map[string]*domain.Post
	nextID     int
	lastFilter ports.PostFilter
	createErr  error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) List(_ context.Context, filter ports.PostFilter) ([]*domain.Post, error) {
	r.lastFilter = filter
	var out []*domain.Post
	for _, p := range r.posts {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *post
	if stored.ID == "" {
		r.nextID++
		stored.ID = "post-" + strconv.Itoa(r.nextID)
	}
	r.posts[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Title = changes.Title
	p.Content = changes.Content
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) Issue(*domain.User) (string, error) {
	return s.token, s.err
}
