package ports

import (
	"context"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// RegisterInput carries the self-registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // empty = candidate
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// PrincipalResolver turns a raw Authorization header value into a verified
// Principal. It fails closed with one of the unauthorized domain errors.
type PrincipalResolver interface {
	Resolve(ctx context.Context, authorization string) (domain.Principal, error)
}

// UserService exposes account management.
type UserService interface {
	Me(ctx context.Context, p domain.Principal) (*domain.User, error)
	List(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error)
	ChangeRole(ctx context.Context, p domain.Principal, id, role string) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
