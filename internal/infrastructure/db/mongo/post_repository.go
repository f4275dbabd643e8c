package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

var postSortFields = map[string]string{
	"id":        "_id",
	"title":     "title",
	"published": "published",
	"authorId":  "author_id",
	"createdAt": "created_at",
}

type postDoc struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Published bool      `bson:"published"`
	AuthorID  int64     `bson:"author_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Published: d.Published,
		AuthorID:  d.AuthorID,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type PostRepository struct {
	store *Store
	col   *mongo.Collection
}

func (r *PostRepository) List(ctx context.Context, filter ports.PostFilter) ([]*domain.Post, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	query := bson.M{}
	if filter.AuthorID != nil {
		query["author_id"] = *filter.AuthorID
	}
	field, ok := postSortFields[filter.Sort]
	if !ok {
		field = "_id"
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: field, Value: sortDirection(filter.Order == ports.SortDesc)}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var d postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return d.toDomain(), nil
}

// Create inserts the post after confirming the author document exists.
// Mongo has no foreign keys, so the check is the only guard here.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	n, err := r.store.db.Collection(collectionUsers).CountDocuments(ctx, bson.M{"_id": post.AuthorID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("check post author: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	d := postDoc{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		AuthorID:  post.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return d.toDomain(), nil
}

func (r *PostRepository) Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":      changes.Title,
		"content":    changes.Content,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}

	var d postDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return d.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
