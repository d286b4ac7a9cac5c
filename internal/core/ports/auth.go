package ports

import (
	"context"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

// UserRepository persists dashboard operators. Create and UpdateProfile
// return a domain conflict error when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// TokenIssuer signs identities into bearer tokens.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// TokenVerifier turns a bearer token back into the identity it was issued for.
type TokenVerifier interface {
	Verify(raw string) (domain.Identity, error)
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type UserService interface {
	UpdateProfile(ctx context.Context, userID int64, name, email string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}
