package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// NotificationFilter scopes a notification listing to one recipient.
type NotificationFilter struct {
	RecipientID string
	UnreadOnly  bool
	PageRequest
}

// NotificationRepository defines persistence for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	CreateMany(ctx context.Context, ns []*domain.Notification) error
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// List returns newest first.
	List(ctx context.Context, filter NotificationFilter) ([]*domain.Notification, int64, error)
	// CountUnread counts unread notifications of recipientID, or of everyone when empty.
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	// MarkManyRead only touches ids whose recipient is recipientID.
	MarkManyRead(ctx context.Context, ids []string, recipientID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByRecipient(ctx context.Context, recipientID string) (int64, error)
	// DeleteInvolving removes every notification where userID is sender or recipient.
	DeleteInvolving(ctx context.Context, userID string) (int64, error)
}
