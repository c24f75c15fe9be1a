package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// Pusher hands a real-time event to a recipient's channel. Push must not
// block the caller; delivery is at-most-once and failures are not reported.
type Pusher interface {
	Push(recipientID string, event domain.PushEvent)
}

// BanList is a fast lookup of banned accounts used by the authorization boundary.
type BanList interface {
	IsBanned(ctx context.Context, userID string) (bool, error)
	Ban(ctx context.Context, userID string) error
	Unban(ctx context.Context, userID string) error
}
