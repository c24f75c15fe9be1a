package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// AnswerRepository implements ports.AnswerRepository using MongoDB.
type AnswerRepository struct {
	col *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{col: db.Collection(collectionAnswers)}
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = newID()
	}
	if a.Comments == nil {
		a.Comments = []domain.Comment{}
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *AnswerRepository) FindByID(ctx context.Context, id string) (*domain.Answer, error) {
	return findOne[domain.Answer](ctx, r.col, bson.M{"_id": id}, domain.ErrAnswerNotFound)
}

func (r *AnswerRepository) Save(ctx context.Context, a *domain.Answer) error {
	return replaceByID(ctx, r.col, a.ID, a, domain.ErrAnswerNotFound)
}

func (r *AnswerRepository) FindActive(ctx context.Context, questionID, authorID string) (*domain.Answer, error) {
	filter := bson.M{"question_id": questionID, "author_id": authorID, "is_deleted": false}
	return findOne[domain.Answer](ctx, r.col, filter, domain.ErrAnswerNotFound)
}

func answerFilter(f ports.AnswerFilter) bson.M {
	filter := bson.M{}
	deleteFlag(filter, f.Deleted)
	if f.QuestionID != "" {
		filter["question_id"] = f.QuestionID
	}
	if f.AuthorID != "" {
		filter["author_id"] = f.AuthorID
	}
	if f.Accepted != nil {
		filter["is_accepted"] = *f.Accepted
	}
	return filter
}

func (r *AnswerRepository) List(ctx context.Context, f ports.AnswerFilter) ([]*domain.Answer, int64, error) {
	order := 1
	if f.Newest {
		order = -1
	}
	sort := bson.D{{Key: "created_at", Value: order}}
	return findPage[domain.Answer](ctx, r.col, answerFilter(f), f.PageRequest, sort)
}

func (r *AnswerRepository) Count(ctx context.Context, f ports.AnswerFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, answerFilter(f))
}

func (r *AnswerRepository) SoftDeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
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

// EnsureIndexes creates the thread and author indexes.
func (r *AnswerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "question_id", Value: 1}, {Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
