package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

const recentActivityLimit = 5

type userService struct {
	users     ports.UserRepository
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
}

// NewUserService returns the public user directory service.
func NewUserService(users ports.UserRepository, questions ports.QuestionRepository, answers ports.AnswerRepository) ports.UserService {
	return &userService{users: users, questions: questions, answers: answers}
}

// visible loads a user for the public directory. Banned accounts are
// reported as missing.
func (s *userService) visible(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsBanned {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *userService) Profile(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.visible(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.PublicProfile(), nil
}

func (s *userService) Questions(ctx context.Context, id string, page ports.PageRequest) (*ports.QuestionPage, error) {
	if _, err := s.visible(ctx, id); err != nil {
		return nil, err
	}
	page = page.Normalize(defaultContentLimit)
	items, total, err := s.questions.List(ctx, ports.QuestionFilter{
		AuthorID:    id,
		Deleted:     boolPtr(false),
		Sort:        domain.SortNewest,
		PageRequest: page,
	})
	if err != nil {
		return nil, err
	}
	return &ports.QuestionPage{Questions: items, Pagination: ports.NewPagination(page, total)}, nil
}

func (s *userService) Answers(ctx context.Context, id string, page ports.PageRequest) (*ports.AnswerPage, error) {
	if _, err := s.visible(ctx, id); err != nil {
		return nil, err
	}
	page = page.Normalize(defaultContentLimit)
	items, total, err := s.answers.List(ctx, ports.AnswerFilter{
		AuthorID:    id,
		Deleted:     boolPtr(false),
		Newest:      true,
		PageRequest: page,
	})
	if err != nil {
		return nil, err
	}
	return &ports.AnswerPage{Answers: items, Pagination: ports.NewPagination(page, total)}, nil
}

// Activity gathers counts and recent content concurrently.
func (s *userService) Activity(ctx context.Context, id string) (*ports.UserActivity, error) {
	u, err := s.visible(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &ports.UserActivity{Stats: ports.ActivityStats{Reputation: u.Reputation}}
	recent := ports.PageRequest{Page: 1, Limit: recentActivityLimit}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Stats.QuestionsCount, err = s.questions.Count(gctx, ports.QuestionFilter{AuthorID: id, Deleted: boolPtr(false)})
		return err
	})
	g.Go(func() (err error) {
		out.Stats.AnswersCount, err = s.answers.Count(gctx, ports.AnswerFilter{AuthorID: id, Deleted: boolPtr(false)})
		return err
	})
	g.Go(func() (err error) {
		out.Stats.AcceptedAnswersCount, err = s.answers.Count(gctx, ports.AnswerFilter{
			AuthorID: id,
			Deleted:  boolPtr(false),
			Accepted: boolPtr(true),
		})
		return err
	})
	g.Go(func() (err error) {
		out.RecentQuestions, _, err = s.questions.List(gctx, ports.QuestionFilter{
			AuthorID:    id,
			Deleted:     boolPtr(false),
			Sort:        domain.SortNewest,
			PageRequest: recent,
		})
		return err
	})
	g.Go(func() (err error) {
		out.RecentAnswers, _, err = s.answers.List(gctx, ports.AnswerFilter{
			AuthorID:    id,
			Deleted:     boolPtr(false),
			Newest:      true,
			PageRequest: recent,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *userService) Search(ctx context.Context, query string, page ports.PageRequest) (*ports.UserPage, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < ports.MinSearchLen {
		return nil, domain.NewValidationError("q", "search query must be at least 2 characters long")
	}

	page = page.Normalize(defaultContentLimit)
	users, total, err := s.users.List(ctx, ports.UserFilter{
		Search:      query,
		Banned:      boolPtr(false),
		Sort:        ports.UserSortReputation,
		PageRequest: page,
	})
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{Users: directoryEntries(users), Pagination: ports.NewPagination(page, total)}, nil
}

var leaderboardSorts = map[ports.LeaderboardType]ports.UserSort{
	ports.LeaderboardReputation: ports.UserSortReputation,
	ports.LeaderboardQuestions:  ports.UserSortQuestions,
	ports.LeaderboardAnswers:    ports.UserSortAnswers,
	ports.LeaderboardAccepted:   ports.UserSortAccepted,
}

// Leaderboard ranks non-banned users. An unknown kind ranks by reputation.
func (s *userService) Leaderboard(ctx context.Context, kind ports.LeaderboardType, limit int) ([]*domain.User, error) {
	sort, ok := leaderboardSorts[kind]
	if !ok {
		sort = ports.UserSortReputation
	}

	page := ports.PageRequest{Page: 1, Limit: limit}.Normalize(defaultContentLimit)
	users, _, err := s.users.List(ctx, ports.UserFilter{
		Banned:      boolPtr(false),
		Sort:        sort,
		PageRequest: page,
	})
	if err != nil {
		return nil, err
	}
	return directoryEntries(users), nil
}

func directoryEntries(users []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.DirectoryEntry())
	}
	return out
}
