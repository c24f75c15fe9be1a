package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login authenticates by email and returns a signed token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, actor domain.Actor) (*domain.User, error)
}
