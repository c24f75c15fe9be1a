package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/api/metrics"
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

type notificationService struct {
	repo   ports.NotificationRepository
	users  ports.UserRepository
	pusher ports.Pusher
	log    zerolog.Logger
}

// NewNotificationService returns the fan-out service. pusher receives one
// event per persisted notification.
func NewNotificationService(
	repo ports.NotificationRepository,
	users ports.UserRepository,
	pusher ports.Pusher,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{repo: repo, users: users, pusher: pusher, log: log}
}

func (s *notificationService) Notify(ctx context.Context, n *domain.Notification) error {
	if n.RecipientID == "" || n.RecipientID == n.SenderID {
		return nil
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.IsRead = false

	if err := s.repo.Create(ctx, n); err != nil {
		metrics.NotificationErrorsTotal.WithLabelValues(string(n.Type)).Inc()
		return fmt.Errorf("notify %s: %w", n.Type, err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(string(n.Type)).Inc()

	s.push(n)
	return nil
}

func (s *notificationService) push(n *domain.Notification) {
	s.pusher.Push(n.RecipientID, domain.PushEvent{
		NotificationID: n.ID,
		Type:           n.Type,
		Message:        n.Message,
	})
}

func (s *notificationService) AnswerPosted(ctx context.Context, sender domain.Actor, q *domain.Question, a *domain.Answer) error {
	return s.Notify(ctx, &domain.Notification{
		RecipientID: q.AuthorID,
		SenderID:    sender.ID,
		SenderName:  sender.Username,
		Type:        domain.NotifyAnswer,
		Title:       "New Answer",
		Message:     fmt.Sprintf("%s answered your question: %s", sender.Username, q.Title),
		QuestionID:  q.ID,
		AnswerID:    a.ID,
	})
}

func (s *notificationService) CommentPosted(ctx context.Context, sender domain.Actor, a *domain.Answer, c domain.Comment) error {
	var errs []error

	for _, name := range domain.ExtractMentions(c.Content) {
		user, err := s.users.FindByUsername(ctx, name)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("resolve mention %q: %w", name, err))
			continue
		}
		err = s.Notify(ctx, &domain.Notification{
			RecipientID: user.ID,
			SenderID:    sender.ID,
			SenderName:  sender.Username,
			Type:        domain.NotifyMention,
			Title:       "You were mentioned",
			Message:     fmt.Sprintf("%s mentioned you in a comment", sender.Username),
			QuestionID:  a.QuestionID,
			AnswerID:    a.ID,
			Data:        map[string]any{"commentId": c.ID},
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	err := s.Notify(ctx, &domain.Notification{
		RecipientID: a.AuthorID,
		SenderID:    sender.ID,
		SenderName:  sender.Username,
		Type:        domain.NotifyComment,
		Title:       "New Comment",
		Message:     fmt.Sprintf("%s commented on your answer", sender.Username),
		QuestionID:  a.QuestionID,
		AnswerID:    a.ID,
		Data:        map[string]any{"commentId": c.ID},
	})
	if err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (s *notificationService) AnswerAccepted(ctx context.Context, sender domain.Actor, q *domain.Question, a *domain.Answer) error {
	return s.Notify(ctx, &domain.Notification{
		RecipientID: a.AuthorID,
		SenderID:    sender.ID,
		SenderName:  sender.Username,
		Type:        domain.NotifyAccept,
		Title:       "Answer Accepted",
		Message:     fmt.Sprintf("%s accepted your answer to: %s", sender.Username, q.Title),
		QuestionID:  q.ID,
		AnswerID:    a.ID,
	})
}

func (s *notificationService) Broadcast(ctx context.Context, sender domain.Actor, title, message string) (int, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	verr := &domain.ValidationError{}
	if n := utf8.RuneCountInString(title); n == 0 || n > domain.MaxBroadcastTitleLen {
		verr.Add("title", "title must be between 1 and 100 characters")
	}
	if n := utf8.RuneCountInString(message); n == 0 || n > domain.MaxBroadcastMessageLen {
		verr.Add("message", "message must be between 1 and 500 characters")
	}
	if err := verr.OrNil(); err != nil {
		return 0, err
	}

	notBanned := false
	users, _, err := s.users.List(ctx, ports.UserFilter{Banned: &notBanned})
	if err != nil {
		return 0, fmt.Errorf("broadcast: list recipients: %w", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	batch := make([]*domain.Notification, 0, len(users))
	for _, u := range users {
		batch = append(batch, &domain.Notification{
			RecipientID: u.ID,
			SenderID:    sender.ID,
			SenderName:  sender.Username,
			Type:        domain.NotifyAdmin,
			Title:       title,
			Message:     message,
			CreatedAt:   now,
		})
	}

	if err := s.repo.CreateMany(ctx, batch); err != nil {
		metrics.NotificationErrorsTotal.WithLabelValues(string(domain.NotifyAdmin)).Add(float64(len(batch)))
		return 0, fmt.Errorf("broadcast: %w", err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(string(domain.NotifyAdmin)).Add(float64(len(batch)))

	for _, n := range batch {
		s.push(n)
	}

	s.log.Info().Str("sender_id", sender.ID).Int("recipients", len(batch)).Msg("broadcast sent")
	return len(batch), nil
}

func (s *notificationService) List(ctx context.Context, recipientID string, page ports.PageRequest, unreadOnly bool) (*ports.NotificationPage, error) {
	page = page.Normalize(ports.DefaultPageLimit)

	items, total, err := s.repo.List(ctx, ports.NotificationFilter{
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		PageRequest: page,
	})
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return &ports.NotificationPage{
		Notifications: items,
		Pagination:    ports.NewPagination(page, total),
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// owned loads a notification and checks that requesterID is its recipient.
func (s *notificationService) owned(ctx context.Context, id, requesterID string) (*domain.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != requesterID {
		return nil, domain.ErrNotRecipient
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, requesterID string) (*domain.Notification, error) {
	n, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, requesterID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, requesterID)
}

func (s *notificationService) MarkMany(ctx context.Context, ids []string, requesterID string) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError("notificationIds", "notificationIds must be a non-empty array")
	}
	return s.repo.MarkManyRead(ctx, ids, requesterID)
}

func (s *notificationService) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *notificationService) ClearAll(ctx context.Context, requesterID string) (int64, error) {
	return s.repo.DeleteByRecipient(ctx, requesterID)
}
