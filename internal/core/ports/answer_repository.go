package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// AnswerFilter carries the query parameters for listing answers.
type AnswerFilter struct {
	QuestionID string
	AuthorID   string
	Deleted    *bool // nil = any
	Accepted   *bool // nil = any
	Newest     bool  // newest first instead of oldest first
	PageRequest
}

// AnswerRepository defines persistence operations for answers and their comments.
type AnswerRepository interface {
	Create(ctx context.Context, a *domain.Answer) error
	// FindByID returns the answer even when soft-deleted; callers decide visibility.
	FindByID(ctx context.Context, id string) (*domain.Answer, error)
	// Save replaces the whole answer document.
	Save(ctx context.Context, a *domain.Answer) error
	// FindActive returns the non-deleted answer by authorID on questionID,
	// or ErrAnswerNotFound.
	FindActive(ctx context.Context, questionID, authorID string) (*domain.Answer, error)
	// List returns answers oldest first unless filter.Newest is set.
	// A zero Limit returns every match.
	List(ctx context.Context, filter AnswerFilter) ([]*domain.Answer, int64, error)
	Count(ctx context.Context, filter AnswerFilter) (int64, error)
	SoftDeleteByAuthor(ctx context.Context, authorID string) (int64, error)
}
