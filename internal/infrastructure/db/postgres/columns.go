package postgres

import (
	"github.com/inkwell/blog-api/internal/core/ports"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

var postColumns = []string{"id", "title", "content", "published", "author_id", "created_at", "updated_at"}

// sortable maps public field names to columns. Anything outside the map
// never reaches ORDER BY.
var userSortColumns = map[string]string{
	"id":        "id",
	"username":  "username",
	"email":     "email",
	"createdAt": "created_at",
}

var postSortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"published": "published",
	"authorId":  "author_id",
	"createdAt": "created_at",
}

func orderBy(columns map[string]string, opts ports.ListOptions) string {
	col, ok := columns[opts.Sort]
	if !ok {
		col = "id"
	}
	if opts.Order == ports.SortDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

type scanner interface {
	Scan(dest ...any) error
}
