package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// AnswerService defines use-case operations for answers, acceptance and comments.
type AnswerService interface {
	Post(ctx context.Context, actor domain.Actor, questionID, content string) (*domain.Answer, error)
	Update(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	Vote(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*VoteResult, error)
	// Accept marks the answer as the accepted one of its question. The steps
	// are independent writes; a failure part way leaves earlier steps applied.
	Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Answer, error)
	Comment(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error)
}
