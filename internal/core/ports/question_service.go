package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// ListQuestionsInput carries all parameters for the public question listing.
type ListQuestionsInput struct {
	Tag    string
	Search string
	Sort   string // newest | votes | views | unanswered
	PageRequest
}

// QuestionPage is one page of questions.
type QuestionPage struct {
	Questions  []*domain.Question
	Pagination Pagination
}

// QuestionDetail is a question with its live answers, oldest first.
type QuestionDetail struct {
	Question *domain.Question
	Answers  []*domain.Answer
}

// QuestionInput carries the editable fields of a question.
type QuestionInput struct {
	Title       string
	Description string
	Tags        []string
}

// QuestionPatch is a partial update; nil fields are left unchanged.
type QuestionPatch struct {
	Title       *string
	Description *string
	Tags        []string
	IsClosed    *bool
}

// VoteResult is the derived score after a vote.
type VoteResult struct {
	VoteCount int
	Upvotes   int
	Downvotes int
}

// QuestionService defines use-case operations for questions.
type QuestionService interface {
	List(ctx context.Context, in ListQuestionsInput) (*QuestionPage, error)
	// Get counts a view when viewerID is non-empty.
	Get(ctx context.Context, id, viewerID string) (*QuestionDetail, error)
	Create(ctx context.Context, actor domain.Actor, in QuestionInput) (*domain.Question, error)
	Update(ctx context.Context, actor domain.Actor, id string, patch QuestionPatch) (*domain.Question, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	Vote(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*VoteResult, error)
	PopularTags(ctx context.Context, limit int) ([]TagCount, error)
}
