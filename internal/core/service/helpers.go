package service

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

const defaultContentLimit = 10

func boolPtr(b bool) *bool { return &b }

// castVote runs the vote engine and maps a missing target to notFound.
func castVote(target domain.Votable, actorID string, vt domain.VoteType, notFound error) (*ports.VoteResult, error) {
	if err := domain.ApplyVote(target, actorID, vt); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	t := target.VoteTally()
	return &ports.VoteResult{
		VoteCount: t.VoteCount,
		Upvotes:   len(t.Votes.Upvotes),
		Downvotes: len(t.Votes.Downvotes),
	}, nil
}

// sortThread orders a question's answers: accepted first, then by score, then oldest.
func sortThread(answers []*domain.Answer) {
	slices.SortStableFunc(answers, func(a, b *domain.Answer) int {
		if a.IsAccepted != b.IsAccepted {
			if a.IsAccepted {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.VoteCount, a.VoteCount); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// liveAnswers returns every non-deleted answer of a question in thread order.
func liveAnswers(ctx context.Context, repo ports.AnswerRepository, questionID string) ([]*domain.Answer, error) {
	answers, _, err := repo.List(ctx, ports.AnswerFilter{QuestionID: questionID, Deleted: boolPtr(false)})
	if err != nil {
		return nil, err
	}
	sortThread(answers)
	return answers, nil
}
