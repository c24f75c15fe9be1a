package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// NotificationPage is one page of a recipient's notifications.
type NotificationPage struct {
	Notifications []*domain.Notification
	Pagination    Pagination
	UnreadCount   int64
}

// NotificationService is the fan-out and read-state manager.
type NotificationService interface {
	// Notify persists n and pushes it to the recipient. It is a no-op when
	// recipient and sender are the same user.
	Notify(ctx context.Context, n *domain.Notification) error

	AnswerPosted(ctx context.Context, sender domain.Actor, q *domain.Question, a *domain.Answer) error
	// CommentPosted emits mention notices for the resolvable users named in
	// the comment and a comment notice to the answer author.
	CommentPosted(ctx context.Context, sender domain.Actor, a *domain.Answer, c domain.Comment) error
	AnswerAccepted(ctx context.Context, sender domain.Actor, q *domain.Question, a *domain.Answer) error
	// Broadcast sends an admin notice to every non-banned user and returns how many were created.
	Broadcast(ctx context.Context, sender domain.Actor, title, message string) (int, error)

	List(ctx context.Context, recipientID string, page PageRequest, unreadOnly bool) (*NotificationPage, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id, requesterID string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, requesterID string) (int64, error)
	MarkMany(ctx context.Context, ids []string, requesterID string) (int64, error)
	Delete(ctx context.Context, id, requesterID string) error
	ClearAll(ctx context.Context, requesterID string) (int64, error)
}
