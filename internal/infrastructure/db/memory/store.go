// Package memory is a process-local persistence gateway. It honours the same
// contracts as the postgres gateway: unique email, author foreign key and
// cascading user delete.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type Store struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	emails map[string]int64
	posts  map[string]*domain.Post
	nextID int64
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:  make(map[int64]*domain.User),
		emails: make(map[string]int64),
		posts:  make(map[string]*domain.Post),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) List(_ context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compareUsers(out[i], out[j], opts.Sort)
		if opts.Order == ports.SortDesc {
			return c > 0
		}
		return c < 0
	})
	return limit(out, opts.Limit), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *r.s.users[id]
	return &clone, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emails[user.Email]; taken {
		return nil, domain.ErrEmailTaken
	}

	r.s.nextID++
	now := r.s.now()
	stored := *user
	stored.ID = r.s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.users[stored.ID] = &stored
	r.s.emails[stored.Email] = stored.ID

	clone := stored
	return &clone, nil
}

func (r *UserRepository) Update(_ context.Context, id int64, changes domain.UserChanges) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if owner, taken := r.s.emails[changes.Email]; taken && owner != id {
		return nil, domain.ErrEmailTaken
	}

	delete(r.s.emails, u.Email)
	u.Username = changes.Username
	u.Email = changes.Email
	if changes.PasswordHash != nil {
		u.PasswordHash = *changes.PasswordHash
	}
	u.UpdatedAt = r.s.now()
	r.s.emails[u.Email] = id

	clone := *u
	return &clone, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}

	var removed int64
	for pid, p := range r.s.posts {
		if p.AuthorID == id {
			delete(r.s.posts, pid)
			removed++
		}
	}
	delete(r.s.emails, u.Email)
	delete(r.s.users, id)
	return removed, nil
}

type PostRepository struct{ s *Store }

func (r *PostRepository) List(_ context.Context, filter ports.PostFilter) ([]*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := comparePosts(out[i], out[j], filter.Sort)
		if filter.Order == ports.SortDesc {
			return c > 0
		}
		return c < 0
	})
	return limit(out, filter.Limit), nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *PostRepository) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	now := r.s.now()
	stored := *post
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.posts[stored.ID] = &stored

	clone := stored
	return &clone, nil
}

func (r *PostRepository) Update(_ context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Title = changes.Title
	p.Content = changes.Content
	p.UpdatedAt = r.s.now()

	clone := *p
	return &clone, nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func compareUsers(a, b *domain.User, field string) int {
	switch field {
	case "username":
		return strings.Compare(a.Username, b.Username)
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return compareInt(a.ID, b.ID)
}

func comparePosts(a, b *domain.Post, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "published":
		return compareBool(a.Published, b.Published)
	case "authorId":
		return compareInt(a.AuthorID, b.AuthorID)
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return strings.Compare(a.ID, b.ID)
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
