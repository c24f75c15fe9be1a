package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/api/metrics"
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

type QuestionService struct {
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewQuestionService(
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{questions: questions, answers: answers, users: users, logger: logger}
}

// List returns live questions filtered by tag and text, sorted and paginated.
func (s *QuestionService) List(ctx context.Context, in ports.ListQuestionsInput) (*ports.QuestionPage, error) {
	page := in.PageRequest.Normalize(defaultContentLimit)

	filter := ports.QuestionFilter{
		Deleted:     boolPtr(false),
		Tag:         strings.ToLower(strings.TrimSpace(in.Tag)),
		Search:      strings.TrimSpace(in.Search),
		Sort:        in.Sort,
		PageRequest: page,
	}
	switch in.Sort {
	case domain.SortVotes, domain.SortViews:
	case domain.SortUnanswered:
		filter.Unanswered = true
		filter.Sort = domain.SortNewest
	default:
		filter.Sort = domain.SortNewest
	}

	items, total, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.QuestionPage{Questions: items, Pagination: ports.NewPagination(page, total)}, nil
}

// live loads a question and hides it when soft-deleted.
func (s *QuestionService) live(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.IsDeleted {
		return nil, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (s *QuestionService) Get(ctx context.Context, id, viewerID string) (*ports.QuestionDetail, error) {
	q, err := s.live(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		if err := s.questions.IncrementViews(ctx, q.ID); err != nil {
			s.logger.Warn().Err(err).Str("question_id", q.ID).Msg("failed to count view")
		} else {
			q.Views++
		}
	}

	answers, err := liveAnswers(ctx, s.answers, q.ID)
	if err != nil {
		return nil, err
	}
	return &ports.QuestionDetail{Question: q, Answers: answers}, nil
}

func (s *QuestionService) Create(ctx context.Context, actor domain.Actor, in ports.QuestionInput) (*domain.Question, error) {
	tags, err := domain.ValidateQuestion(in.Title, in.Description, in.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	q := &domain.Question{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		AuthorID:    actor.ID,
		AuthorName:  actor.Username,
		Tags:        tags,
		Tally:       domain.Tally{Votes: domain.VoteSet{Upvotes: []string{}, Downvotes: []string{}}},
		Answers:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.questions.Create(ctx, q); err != nil {
		s.logger.Error().Err(err).Msg("failed to create question")
		return nil, err
	}
	if err := s.users.IncrementCounter(ctx, actor.ID, domain.CounterQuestions, 1); err != nil {
		s.logger.Warn().Err(err).Str("user_id", actor.ID).Msg("failed to increment questions counter")
	}

	metrics.QuestionsCreatedTotal.Inc()
	s.logger.Info().Str("question_id", q.ID).Str("author_id", actor.ID).Msg("question created")
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, actor domain.Actor, id string, patch ports.QuestionPatch) (*domain.Question, error) {
	q, err := s.live(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(q.AuthorID) {
		return nil, domain.ErrNotAuthor
	}

	title, description, rawTags := q.Title, q.Description, q.Tags
	if patch.Title != nil {
		title = *patch.Title
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if patch.Tags != nil {
		rawTags = patch.Tags
	}
	tags, err := domain.ValidateQuestion(title, description, rawTags)
	if err != nil {
		return nil, err
	}

	q.Title = strings.TrimSpace(title)
	q.Description = strings.TrimSpace(description)
	q.Tags = tags
	if patch.IsClosed != nil {
		q.IsClosed = *patch.IsClosed
	}
	q.UpdatedAt = time.Now().UTC()

	if err := s.questions.Save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete soft-deletes the question. Its answers keep their own state.
func (s *QuestionService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	q, err := s.live(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(q.AuthorID) {
		return domain.ErrNotAuthor
	}

	q.IsDeleted = true
	q.UpdatedAt = time.Now().UTC()
	if err := s.questions.Save(ctx, q); err != nil {
		return err
	}
	if err := s.users.IncrementCounter(ctx, q.AuthorID, domain.CounterQuestions, -1); err != nil {
		s.logger.Warn().Err(err).Str("user_id", q.AuthorID).Msg("failed to decrement questions counter")
	}

	s.logger.Info().Str("question_id", q.ID).Str("actor_id", actor.ID).Msg("question deleted")
	return nil
}

func (s *QuestionService) Vote(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*ports.VoteResult, error) {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := castVote(q, actor.ID, vt, domain.ErrQuestionNotFound)
	if err != nil {
		return nil, err
	}
	if err := s.questions.Save(ctx, q); err != nil {
		return nil, err
	}

	metrics.VotesCastTotal.WithLabelValues("question", string(vt)).Inc()
	return res, nil
}

func (s *QuestionService) PopularTags(ctx context.Context, limit int) ([]ports.TagCount, error) {
	if limit <= 0 || limit > ports.MaxPageLimit {
		limit = ports.DefaultPageLimit
	}
	return s.questions.PopularTags(ctx, limit)
}
