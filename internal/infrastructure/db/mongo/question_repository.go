package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// QuestionRepository implements ports.QuestionRepository using MongoDB.
type QuestionRepository struct {
	col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{col: db.Collection(collectionQuestions)}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if q.ID == "" {
		q.ID = newID()
	}
	if q.Answers == nil {
		q.Answers = []string{}
	}
	_, err := r.col.InsertOne(ctx, q)
	return err
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	return findOne[domain.Question](ctx, r.col, bson.M{"_id": id}, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) Save(ctx context.Context, q *domain.Question) error {
	return replaceByID(ctx, r.col, q.ID, q, domain.ErrQuestionNotFound)
}

func questionFilter(f ports.QuestionFilter) bson.M {
	filter := bson.M{}
	deleteFlag(filter, f.Deleted)
	if f.AuthorID != "" {
		filter["author_id"] = f.AuthorID
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.Unanswered {
		filter["answers"] = bson.M{"$size": 0}
	}
	return filter
}

var questionSorts = map[string]bson.D{
	domain.SortNewest: {{Key: "created_at", Value: -1}},
	domain.SortVotes:  {{Key: "vote_count", Value: -1}, {Key: "created_at", Value: -1}},
	domain.SortViews:  {{Key: "views", Value: -1}, {Key: "created_at", Value: -1}},
}

func (r *QuestionRepository) List(ctx context.Context, f ports.QuestionFilter) ([]*domain.Question, int64, error) {
	sort, ok := questionSorts[f.Sort]
	if !ok {
		sort = questionSorts[domain.SortNewest]
	}
	return findPage[domain.Question](ctx, r.col, questionFilter(f), f.PageRequest, sort)
}

func (r *QuestionRepository) Count(ctx context.Context, f ports.QuestionFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, questionFilter(f))
}

func (r *QuestionRepository) PushAnswer(ctx context.Context, questionID, answerID string) error {
	update := bson.M{
		"$push": bson.M{"answers": answerID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return updateByID(ctx, r.col, questionID, update, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) PullAnswer(ctx context.Context, questionID, answerID string) error {
	update := bson.M{
		"$pull": bson.M{"answers": answerID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return updateByID(ctx, r.col, questionID, update, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) IncrementViews(ctx context.Context, id string) error {
	return updateByID(ctx, r.col, id, bson.M{"$inc": bson.M{"views": 1}}, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) SoftDeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"author_id": authorID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// PopularTags counts tag usage across live questions.
func (r *QuestionRepository) PopularTags(ctx context.Context, limit int) ([]ports.TagCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tags := make([]ports.TagCount, 0, limit)
	if err := cur.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// AverageViews averages the view counter over live questions.
func (r *QuestionRepository) AverageViews(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg_views": bson.M{"$avg": "$views"}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		AvgViews float64 `bson:"avg_views"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].AvgViews, nil
}

// EnsureIndexes creates the listing and full-text indexes.
func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "tags", Value: "text"},
		}},
		{Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
