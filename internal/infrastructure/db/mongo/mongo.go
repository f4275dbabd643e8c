package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers    = "users"
	collectionPosts    = "posts"
	collectionCounters = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI          string
	Database     string
	Timeout      time.Duration
	QueryTimeout time.Duration
}

// Store groups the collections used by the repositories.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	queryTimeout time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns a Store bound to the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return New(client, client.Database(cfg.Database), cfg.QueryTimeout), nil
}

func New(client *mongo.Client, db *mongo.Database, queryTimeout time.Duration) *Store {
	if queryTimeout <= 0 {
		queryTimeout = defaultTimeout
	}
	return &Store{client: client, db: db, queryTimeout: queryTimeout}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s, col: s.db.Collection(collectionUsers)}
}

func (s *Store) Posts() *PostRepository {
	return &PostRepository{store: s, col: s.db.Collection(collectionPosts)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique email index and the post author index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.db.Collection(collectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = s.db.Collection(collectionPosts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("posts indexes: %w", err)
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// nextSequence atomically increments and returns the named counter. It backs
// the numeric user ids.
func (s *Store) nextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c counter
	err := s.db.Collection(collectionCounters).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return c.Seq, nil
}

func sortDirection(desc bool) int {
	if desc {
		return -1
	}
	return 1
}
