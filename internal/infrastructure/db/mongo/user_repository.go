package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Create inserts a new user. Unique indexes on username and email turn
// duplicates into ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *user
	if doc.ID == "" {
		doc.ID = newID()
	}

	if _, err := r.col.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &doc, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"_id": id}, domain.ErrUserNotFound)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"email": email}, domain.ErrUserNotFound)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"username": username}, domain.ErrUserNotFound)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return replaceByID(ctx, r.col, user.ID, user, domain.ErrUserNotFound)
}

// IncrementCounter adjusts one of the content counters atomically.
func (r *UserRepository) IncrementCounter(ctx context.Context, id string, counter domain.UserCounter, delta int) error {
	update := bson.M{
		"$inc": bson.M{string(counter): delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	return updateByID(ctx, r.col, id, update, domain.ErrUserNotFound)
}

var userSorts = map[ports.UserSort]bson.D{
	ports.UserSortNewest:     {{Key: "created_at", Value: -1}},
	ports.UserSortReputation: {{Key: "reputation", Value: -1}, {Key: "username", Value: 1}},
	ports.UserSortQuestions:  {{Key: "questions_count", Value: -1}, {Key: "username", Value: 1}},
	ports.UserSortAnswers:    {{Key: "answers_count", Value: -1}, {Key: "username", Value: 1}},
	ports.UserSortAccepted:   {{Key: "accepted_answers_count", Value: -1}, {Key: "username", Value: 1}},
}

// List filters by partial username/email match, role and ban state.
func (r *UserRepository) List(ctx context.Context, f ports.UserFilter) ([]*domain.User, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"username": pattern},
			bson.M{"email": pattern},
		}
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.Banned != nil {
		filter["is_banned"] = *f.Banned
	}

	sort, ok := userSorts[f.Sort]
	if !ok {
		sort = userSorts[ports.UserSortNewest]
	}
	return findPage[domain.User](ctx, r.col, filter, f.PageRequest, sort)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type userStatsDoc struct {
	TotalUsers    int64   `bson:"total_users"`
	ActiveUsers   int64   `bson:"active_users"`
	BannedUsers   int64   `bson:"banned_users"`
	AvgReputation float64 `bson:"avg_reputation"`
}

// Stats aggregates the whole directory in a single pass.
func (r *UserRepository) Stats(ctx context.Context) (ports.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total_users":    bson.M{"$sum": 1},
			"active_users":   bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$is_banned", false}}, 1, 0}}},
			"banned_users":   bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$is_banned", true}}, 1, 0}}},
			"avg_reputation": bson.M{"$avg": "$reputation"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.UserStats{}, err
	}
	defer cur.Close(ctx)

	var docs []userStatsDoc
	if err := cur.All(ctx, &docs); err != nil {
		return ports.UserStats{}, err
	}
	if len(docs) == 0 {
		return ports.UserStats{}, nil
	}
	d := docs[0]
	return ports.UserStats{
		TotalUsers:    d.TotalUsers,
		ActiveUsers:   d.ActiveUsers,
		BannedUsers:   d.BannedUsers,
		AvgReputation: d.AvgReputation,
	}, nil
}

// EnsureIndexes creates the uniqueness and leaderboard indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reputation", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
