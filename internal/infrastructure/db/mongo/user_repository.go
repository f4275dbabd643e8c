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

var userSortFields = map[string]string{
	"id":        "_id",
	"username":  "username",
	"email":     "email",
	"createdAt": "created_at",
}

type userDoc struct {
	ID           int64     `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type UserRepository struct {
	store *Store
	col   *mongo.Collection
}

func (r *UserRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	field, ok := userSortFields[opts.Sort]
	if !ok {
		field = "_id"
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: field, Value: sortDirection(opts.Order == ports.SortDesc)}}).
		SetLimit(int64(opts.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	id, err := r.store.nextSequence(ctx, collectionUsers)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	d := userDoc{
		ID:           id,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, changes domain.UserChanges) (*domain.User, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	set := bson.M{
		"username":   changes.Username,
		"email":      changes.Email,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	if changes.PasswordHash != nil {
		set["password_hash"] = *changes.PasswordHash
	}

	var d userDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&d)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return d.toDomain(), nil
}

// Delete removes the user's posts and the user in one session transaction.
// It requires a replica set deployment.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	session, err := r.store.client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	posts := r.store.db.Collection(collectionPosts)
	removed, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		res, err := posts.DeleteMany(sc, bson.M{"author_id": id})
		if err != nil {
			return nil, fmt.Errorf("delete user posts: %w", err)
		}
		userRes, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, fmt.Errorf("delete user: %w", err)
		}
		if userRes.DeletedCount == 0 {
			return nil, domain.ErrUserNotFound
		}
		return res.DeletedCount, nil
	})
	if err != nil {
		return 0, err
	}
	return removed.(int64), nil
}
