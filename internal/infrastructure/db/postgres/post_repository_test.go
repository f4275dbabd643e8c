package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const postID = "3f0c6a52-5a4f-4b59-9a57-2f1f3f3c8f10"

func TestPostRepository_List_ByAuthor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()
	author := int64(3)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE author_id = $1 ORDER BY created_at DESC LIMIT 5")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(postID, "Hello World", "Lorem ipsum dolor", true, int64(3), now, now))

	posts, err := repo.List(context.Background(), ports.PostFilter{
		AuthorID:    &author,
		ListOptions: ports.ListOptions{Limit: 5, Sort: "createdAt", Order: ports.SortDesc},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 || !posts[0].Published || posts[0].AuthorID != 3 {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestPostRepository_List_ZeroAuthorStillFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE author_id = $1 ORDER BY id ASC LIMIT 10")).
		WithArgs(int64(0)).
		WillReturnRows(sqlmock.NewRows(postColumns))

	posts, err := repo.List(context.Background(), ports.ByAuthor(0, ports.ListOptions{Limit: 10, Sort: "id", Order: ports.SortAsc}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts for author 0, got %d", len(posts))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostRepository_List_All(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts ORDER BY id ASC LIMIT 10")).
		WillReturnRows(sqlmock.NewRows(postColumns))

	posts, err := repo.List(context.Background(), ports.PostFilter{ListOptions: ports.ListOptions{Limit: 10, Sort: "id", Order: ports.SortAsc}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty result, got %d", len(posts))
	}
}

func TestPostRepository_Create_ForeignKeyViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts (id,title,content,published,author_id) VALUES ($1,$2,$3,$4,$5)")).
		WithArgs(postID, "Hello World", "Lorem ipsum dolor", false, int64(99)).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.Create(context.Background(), &domain.Post{ID: postID, Title: "Hello World", Content: "Lorem ipsum dolor", AuthorID: 99})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO posts").
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(postID, "Hello World", "Lorem ipsum dolor", false, int64(1), now, now))

	p, err := repo.Create(context.Background(), &domain.Post{ID: postID, Title: "Hello World", Content: "Lorem ipsum dolor", AuthorID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != postID {
		t.Fatalf("unexpected id %s", p.ID)
	}
}

func TestPostRepository_FindAndUpdate_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).WithArgs(postID).WillReturnError(sql.ErrNoRows)
	if _, err := repo.FindByID(context.Background(), postID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE posts SET title = $1, content = $2, updated_at = NOW() WHERE id = $3")).
		WithArgs("New title", "New content here", postID).
		WillReturnError(sql.ErrNoRows)
	if _, err := repo.Update(context.Background(), postID, domain.PostChanges{Title: "New title", Content: "New content here"}); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(deletePost)).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete(context.Background(), postID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta(deletePost)).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), postID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
