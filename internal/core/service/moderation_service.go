package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

const (
	dashboardRecentLimit = 10
	reportTagLimit       = 10
	adminListLimit       = 20
)

type moderationService struct {
	users         ports.UserRepository
	questions     ports.QuestionRepository
	answers       ports.AnswerRepository
	notifications ports.NotificationRepository
	notifier      ports.NotificationService
	bans          ports.BanList
	log           zerolog.Logger
}

// NewModerationService returns the admin service. bans mirrors the ban flag
// for the authorization boundary.
func NewModerationService(
	users ports.UserRepository,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	notifications ports.NotificationRepository,
	notifier ports.NotificationService,
	bans ports.BanList,
	log zerolog.Logger,
) ports.ModerationService {
	return &moderationService{
		users:         users,
		questions:     questions,
		answers:       answers,
		notifications: notifications,
		notifier:      notifier,
		bans:          bans,
		log:           log,
	}
}

func (s *moderationService) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	out := &ports.Dashboard{}
	recent := ports.PageRequest{Page: 1, Limit: dashboardRecentLimit}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.users.Stats(gctx)
		out.TotalUsers, out.BannedUsers = stats.TotalUsers, stats.BannedUsers
		return err
	})
	g.Go(func() (err error) {
		out.TotalQuestions, err = s.questions.Count(gctx, ports.QuestionFilter{Deleted: boolPtr(false)})
		return err
	})
	g.Go(func() (err error) {
		out.TotalAnswers, err = s.answers.Count(gctx, ports.AnswerFilter{Deleted: boolPtr(false)})
		return err
	})
	g.Go(func() (err error) {
		out.RecentUsers, _, err = s.users.List(gctx, ports.UserFilter{Sort: ports.UserSortNewest, PageRequest: recent})
		return err
	})
	g.Go(func() (err error) {
		out.RecentQuestions, _, err = s.questions.List(gctx, ports.QuestionFilter{
			Deleted:     boolPtr(false),
			Sort:        domain.SortNewest,
			PageRequest: recent,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *moderationService) ListUsers(ctx context.Context, filter ports.AdminUserFilter) (*ports.UserPage, error) {
	page := filter.PageRequest.Normalize(adminListLimit)
	users, total, err := s.users.List(ctx, ports.UserFilter{
		Search:      strings.TrimSpace(filter.Search),
		Role:        filter.Role,
		Banned:      filter.Banned,
		Sort:        ports.UserSortNewest,
		PageRequest: page,
	})
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{Users: users, Pagination: ports.NewPagination(page, total)}, nil
}

// SetBan bans or unbans a user. Admin accounts cannot be banned.
func (s *moderationService) SetBan(ctx context.Context, userID string, banned bool, reason string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if banned && u.Role == domain.RoleAdmin {
		return nil, domain.ErrAdminProtected
	}

	u.IsBanned = banned
	u.BanReason = ""
	if banned {
		u.BanReason = strings.TrimSpace(reason)
		if u.BanReason == "" {
			u.BanReason = domain.DefaultBanReason
		}
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	cacheErr := s.bans.Unban(ctx, u.ID)
	if banned {
		cacheErr = s.bans.Ban(ctx, u.ID)
	}
	if cacheErr != nil {
		s.log.Error().Err(cacheErr).Str("user_id", u.ID).Msg("ban persisted but cache update failed")
		return nil, fmt.Errorf("update ban cache for %s: %w", u.ID, cacheErr)
	}

	s.log.Info().Str("user_id", u.ID).Bool("banned", banned).Msg("ban state changed")
	return u, nil
}

// WarmBanList copies every banned account from the directory into the ban
// cache and returns how many entries were written. Run at startup so a
// flushed cache does not let banned users back in.
func WarmBanList(ctx context.Context, users ports.UserRepository, bans ports.BanList) (int, error) {
	banned, _, err := users.List(ctx, ports.UserFilter{Banned: boolPtr(true)})
	if err != nil {
		return 0, fmt.Errorf("list banned users: %w", err)
	}
	for _, u := range banned {
		if err := bans.Ban(ctx, u.ID); err != nil {
			return 0, fmt.Errorf("cache ban for %s: %w", u.ID, err)
		}
	}
	return len(banned), nil
}

func (s *moderationService) SetRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.NewValidationError("role", "role must be one of: user admin")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", u.ID).Str("role", role).Msg("role changed")
	return u, nil
}

// DeleteUser removes a non-admin account, soft-deletes everything they
// authored and purges every notification they sent or received.
func (s *moderationService) DeleteUser(ctx context.Context, userID string) (*ports.DeleteUserResult, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role == domain.RoleAdmin {
		return nil, domain.ErrAdminProtected
	}

	res := &ports.DeleteUserResult{}
	if res.QuestionsDeleted, err = s.questions.SoftDeleteByAuthor(ctx, u.ID); err != nil {
		return nil, err
	}
	if res.AnswersDeleted, err = s.answers.SoftDeleteByAuthor(ctx, u.ID); err != nil {
		return nil, err
	}
	if res.NotificationsRemoved, err = s.notifications.DeleteInvolving(ctx, u.ID); err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		return nil, err
	}

	if err := s.bans.Unban(ctx, u.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID).Msg("failed to clear ban cache")
	}

	s.log.Info().
		Str("user_id", u.ID).
		Int64("questions", res.QuestionsDeleted).
		Int64("answers", res.AnswersDeleted).
		Int64("notifications", res.NotificationsRemoved).
		Msg("user deleted")
	return res, nil
}

func (s *moderationService) ListQuestions(ctx context.Context, filter ports.AdminQuestionFilter) (*ports.QuestionPage, error) {
	qf := ports.QuestionFilter{
		Search: strings.TrimSpace(filter.Search),
		Sort:   domain.SortNewest,
	}
	switch filter.Status {
	case "", ports.StatusAll:
	case ports.StatusActive:
		qf.Deleted = boolPtr(false)
	case ports.StatusDeleted:
		qf.Deleted = boolPtr(true)
	default:
		return nil, domain.NewValidationError("status", "status must be one of: all active deleted")
	}

	qf.PageRequest = filter.PageRequest.Normalize(adminListLimit)
	items, total, err := s.questions.List(ctx, qf)
	if err != nil {
		return nil, err
	}
	return &ports.QuestionPage{Questions: items, Pagination: ports.NewPagination(qf.PageRequest, total)}, nil
}

// RestoreQuestion clears the question's own deleted flag; answers are untouched.
func (s *moderationService) RestoreQuestion(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q.IsDeleted = false
	q.UpdatedAt = time.Now().UTC()
	if err := s.questions.Save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *moderationService) Broadcast(ctx context.Context, actor domain.Actor, title, message string) (int, error) {
	return s.notifier.Broadcast(ctx, actor, title, message)
}

// Report computes the requested aggregate on demand. An empty type means general.
func (s *moderationService) Report(ctx context.Context, reportType string) (*ports.Report, error) {
	if reportType == "" {
		reportType = ports.ReportGeneral
	}

	out := &ports.Report{Type: reportType}
	g, gctx := errgroup.WithContext(ctx)
	live := boolPtr(false)

	switch reportType {
	case ports.ReportGeneral:
		r := &ports.GeneralReport{}
		out.General = r
		g.Go(func() error {
			stats, err := s.users.Stats(gctx)
			r.TotalUsers, r.BannedUsers = stats.TotalUsers, stats.BannedUsers
			return err
		})
		g.Go(func() (err error) {
			r.TotalQuestions, err = s.questions.Count(gctx, ports.QuestionFilter{Deleted: live})
			return err
		})
		g.Go(func() (err error) {
			r.TotalAnswers, err = s.answers.Count(gctx, ports.AnswerFilter{Deleted: live})
			return err
		})
		g.Go(func() (err error) {
			r.UnreadNotifications, err = s.notifications.CountUnread(gctx, "")
			return err
		})

	case ports.ReportUserActivity:
		r := &ports.UserActivityReport{}
		out.UserActivity = r
		g.Go(func() (err error) {
			r.Stats, err = s.users.Stats(gctx)
			return err
		})
		g.Go(func() (err error) {
			r.RecentRegistrations, _, err = s.users.List(gctx, ports.UserFilter{
				Banned:      live,
				Sort:        ports.UserSortNewest,
				PageRequest: ports.PageRequest{Page: 1, Limit: dashboardRecentLimit},
			})
			return err
		})

	case ports.ReportContentStats:
		r := &ports.ContentReport{}
		out.Content = r
		g.Go(func() (err error) {
			r.TotalQuestions, err = s.questions.Count(gctx, ports.QuestionFilter{Deleted: live})
			return err
		})
		g.Go(func() (err error) {
			r.TotalAnswers, err = s.answers.Count(gctx, ports.AnswerFilter{Deleted: live})
			return err
		})
		g.Go(func() (err error) {
			r.UnansweredQuestions, err = s.questions.Count(gctx, ports.QuestionFilter{Deleted: live, Unanswered: true})
			return err
		})
		g.Go(func() (err error) {
			r.AverageViews, err = s.questions.AverageViews(gctx)
			return err
		})
		g.Go(func() (err error) {
			r.PopularTags, err = s.questions.PopularTags(gctx, reportTagLimit)
			return err
		})

	default:
		return nil, domain.NewValidationError("type", "type must be one of: general user-activity content-stats")
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
