package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// UserSort selects the ordering of user listings.
type UserSort string

const (
	UserSortNewest     UserSort = "newest"
	UserSortReputation UserSort = "reputation"
	UserSortQuestions  UserSort = "questions"
	UserSortAnswers    UserSort = "answers"
	UserSortAccepted   UserSort = "accepted"
)

// UserFilter carries the query parameters for listing users.
type UserFilter struct {
	Search string // case-insensitive partial match on username or email
	Role   string
	Banned *bool // nil = any
	Sort   UserSort
	PageRequest
}

// UserStats is the on-demand aggregate over the whole directory.
type UserStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	ActiveUsers   int64   `json:"activeUsers"`
	BannedUsers   int64   `json:"bannedUsers"`
	AvgReputation float64 `json:"avgReputation"`
}

// UserRepository defines persistence for the user directory.
// Username and email uniqueness is enforced by the store (ErrUserExists).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update replaces the whole user document.
	Update(ctx context.Context, user *domain.User) error
	IncrementCounter(ctx context.Context, id string, counter domain.UserCounter, delta int) error
	// List returns a page of users matching filter and the total count.
	// A zero Limit returns every match.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (UserStats, error)
}
