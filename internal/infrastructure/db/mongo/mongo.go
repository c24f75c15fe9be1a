package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/askstack/qa-platform/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers         = "users"
	collectionQuestions     = "questions"
	collectionAnswers       = "answers"
	collectionNotifications = "notifications"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Indexer is implemented by every repository that owns indexes.
type Indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every given repository.
func EnsureIndexes(ctx context.Context, repos ...Indexer) error {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}

// newID returns a fresh document identifier.
func newID() string {
	return primitive.NewObjectID().Hex()
}

// pageOptions applies sort and, when a limit is set, skip/limit.
func pageOptions(req ports.PageRequest, sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if req.Limit > 0 {
		opts.SetSkip(req.Skip()).SetLimit(int64(req.Limit))
	}
	return opts
}

// findAll runs a query and decodes every document.
func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts *options.FindOptions) ([]*T, error) {
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// findOne decodes the first match of filter, mapping no match to notFound.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter any, notFound error) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &doc, nil
}

// findPage counts the matches of filter and returns the requested page.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, req ports.PageRequest, sort bson.D) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := findAll[T](ctx, col, filter, pageOptions(req, sort))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// updateByID applies update to a single document and maps a miss to notFound.
func updateByID(ctx context.Context, col *mongo.Collection, id string, update bson.M, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// replaceByID replaces a whole document and maps a miss to notFound.
func replaceByID(ctx context.Context, col *mongo.Collection, id string, doc any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// deleteFlag builds the is_deleted clause of a filter.
func deleteFlag(filter bson.M, deleted *bool) {
	if deleted != nil {
		filter["is_deleted"] = *deleted
	}
}
