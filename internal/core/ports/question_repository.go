package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// QuestionFilter carries all query parameters for listing questions.
type QuestionFilter struct {
	Deleted    *bool  // nil = any
	AuthorID   string // optional
	Tag        string // optional, matched against the normalized tag set
	Search     string // optional full-text search on title, description and tags
	Unanswered bool   // only questions with no attached answers
	Sort       string // newest | votes | views
	PageRequest
}

// TagCount is a tag with the number of live questions carrying it.
type TagCount struct {
	Tag   string `json:"tag" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	// FindByID returns the question even when soft-deleted; callers decide visibility.
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	// Save replaces the whole question document.
	Save(ctx context.Context, q *domain.Question) error
	List(ctx context.Context, filter QuestionFilter) ([]*domain.Question, int64, error)
	Count(ctx context.Context, filter QuestionFilter) (int64, error)
	PushAnswer(ctx context.Context, questionID, answerID string) error
	PullAnswer(ctx context.Context, questionID, answerID string) error
	IncrementViews(ctx context.Context, id string) error
	SoftDeleteByAuthor(ctx context.Context, authorID string) (int64, error)
	PopularTags(ctx context.Context, limit int) ([]TagCount, error)
	AverageViews(ctx context.Context) (float64, error)
}
