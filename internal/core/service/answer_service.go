package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/api/metrics"
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

type AnswerService struct {
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	users     ports.UserRepository
	notifier  ports.NotificationService
	logger    zerolog.Logger
}

func NewAnswerService(
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	users ports.UserRepository,
	notifier ports.NotificationService,
	logger zerolog.Logger,
) *AnswerService {
	return &AnswerService{
		questions: questions,
		answers:   answers,
		users:     users,
		notifier:  notifier,
		logger:    logger,
	}
}

// Post attaches a new answer to a live, open question. Each author may hold
// one live answer per question.
func (s *AnswerService) Post(ctx context.Context, actor domain.Actor, questionID, content string) (*domain.Answer, error) {
	if err := domain.ValidateAnswerContent(content); err != nil {
		return nil, err
	}

	q, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.IsDeleted {
		return nil, domain.ErrQuestionNotFound
	}
	if q.AuthorID == actor.ID {
		return nil, domain.ErrSelfAnswer
	}
	if q.IsClosed {
		return nil, domain.ErrQuestionClosed
	}

	_, err = s.answers.FindActive(ctx, q.ID, actor.ID)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateAnswer
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Answer{
		Content:    strings.TrimSpace(content),
		AuthorID:   actor.ID,
		AuthorName: actor.Username,
		QuestionID: q.ID,
		Tally:      domain.Tally{Votes: domain.VoteSet{Upvotes: []string{}, Downvotes: []string{}}},
		Comments:   []domain.Comment{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.answers.Create(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("question_id", q.ID).Msg("failed to create answer")
		return nil, err
	}
	if err := s.questions.PushAnswer(ctx, q.ID, a.ID); err != nil {
		return nil, err
	}
	if err := s.users.IncrementCounter(ctx, actor.ID, domain.CounterAnswers, 1); err != nil {
		s.logger.Warn().Err(err).Str("user_id", actor.ID).Msg("failed to increment answers counter")
	}
	metrics.AnswersCreatedTotal.Inc()

	if err := s.notifier.AnswerPosted(ctx, actor, q, a); err != nil {
		s.logger.Warn().Err(err).Str("answer_id", a.ID).Msg("answer notification failed")
	}

	s.logger.Info().Str("answer_id", a.ID).Str("question_id", q.ID).Str("author_id", actor.ID).Msg("answer posted")
	return a, nil
}

// live loads an answer and hides it when soft-deleted.
func (s *AnswerService) live(ctx context.Context, id string) (*domain.Answer, error) {
	a, err := s.answers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsDeleted {
		return nil, domain.ErrAnswerNotFound
	}
	return a, nil
}

func (s *AnswerService) Update(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error) {
	a, err := s.live(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(a.AuthorID) {
		return nil, domain.ErrNotAuthor
	}
	if err := domain.ValidateAnswerContent(content); err != nil {
		return nil, err
	}

	a.Content = strings.TrimSpace(content)
	a.UpdatedAt = time.Now().UTC()
	if err := s.answers.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete soft-deletes the answer and detaches it from its question.
func (s *AnswerService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	a, err := s.live(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(a.AuthorID) {
		return domain.ErrNotAuthor
	}

	a.IsDeleted = true
	a.UpdatedAt = time.Now().UTC()
	if err := s.answers.Save(ctx, a); err != nil {
		return err
	}
	if err := s.questions.PullAnswer(ctx, a.QuestionID, a.ID); err != nil {
		return err
	}
	if err := s.users.IncrementCounter(ctx, a.AuthorID, domain.CounterAnswers, -1); err != nil {
		s.logger.Warn().Err(err).Str("user_id", a.AuthorID).Msg("failed to decrement answers counter")
	}

	s.logger.Info().Str("answer_id", a.ID).Str("actor_id", actor.ID).Msg("answer deleted")
	return nil
}

func (s *AnswerService) Vote(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*ports.VoteResult, error) {
	a, err := s.answers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := castVote(a, actor.ID, vt, domain.ErrAnswerNotFound)
	if err != nil {
		return nil, err
	}
	if err := s.answers.Save(ctx, a); err != nil {
		return nil, err
	}

	metrics.VotesCastTotal.WithLabelValues("answer", string(vt)).Inc()
	return res, nil
}

// Accept runs the acceptance workflow:
//  1. un-accept the previously accepted answer, if it still exists
//  2. accept the target answer
//  3. point the question at the target
//  4. bump the answer author's accepted counter
//  5. notify the answer author
//
// Each step is a separate write and earlier steps are not rolled back when a
// later one fails. The counter is never decremented on re-acceptance.
func (s *AnswerService) Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Answer, error) {
	a, err := s.live(ctx, id)
	if err != nil {
		return nil, err
	}
	q, err := s.questions.FindByID(ctx, a.QuestionID)
	if err != nil {
		return nil, err
	}
	if q.IsDeleted {
		return nil, domain.ErrQuestionNotFound
	}
	if q.AuthorID != actor.ID {
		return nil, domain.ErrNotQuestionOwner
	}

	now := time.Now().UTC()

	if prevID := q.AcceptedAnswer; prevID != "" && prevID != a.ID {
		prev, err := s.answers.FindByID(ctx, prevID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn().Str("question_id", q.ID).Str("answer_id", prevID).Msg("previously accepted answer missing")
		case err != nil:
			return nil, err
		default:
			prev.IsAccepted = false
			prev.UpdatedAt = now
			if err := s.answers.Save(ctx, prev); err != nil {
				return nil, err
			}
		}
	}

	a.IsAccepted = true
	a.UpdatedAt = now
	if err := s.answers.Save(ctx, a); err != nil {
		return nil, err
	}

	q.AcceptedAnswer = a.ID
	q.UpdatedAt = now
	if err := s.questions.Save(ctx, q); err != nil {
		return nil, err
	}

	if err := s.users.IncrementCounter(ctx, a.AuthorID, domain.CounterAcceptedAnswers, 1); err != nil {
		return nil, err
	}
	metrics.AnswersAcceptedTotal.Inc()

	if actor.ID != a.AuthorID {
		if err := s.notifier.AnswerAccepted(ctx, actor, q, a); err != nil {
			s.logger.Warn().Err(err).Str("answer_id", a.ID).Msg("accept notification failed")
		}
	}

	s.logger.Info().Str("answer_id", a.ID).Str("question_id", q.ID).Msg("answer accepted")
	return a, nil
}

// Comment appends a comment and fans out mention and comment notifications.
func (s *AnswerService) Comment(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error) {
	if err := domain.ValidateCommentContent(content); err != nil {
		return nil, err
	}
	a, err := s.live(ctx, id)
	if err != nil {
		return nil, err
	}

	c := domain.Comment{
		ID:         uuid.NewString(),
		Content:    strings.TrimSpace(content),
		AuthorID:   actor.ID,
		AuthorName: actor.Username,
		CreatedAt:  time.Now().UTC(),
	}
	a.AddComment(c)
	if err := s.answers.Save(ctx, a); err != nil {
		return nil, err
	}

	if err := s.notifier.CommentPosted(ctx, actor, a, c); err != nil {
		s.logger.Warn().Err(err).Str("answer_id", a.ID).Msg("comment notifications failed")
	}
	return a, nil
}

func (s *AnswerService) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	q, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.IsDeleted {
		return nil, domain.ErrQuestionNotFound
	}
	return liveAnswers(ctx, s.answers, q.ID)
}
