package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/policy"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.users.FindByID(ctx, p.ID)
}

func (s *UserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if err := policy.RequireRole(p, policy.AdminOnly); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Get is allowed for the user themselves or an admin.
func (s *UserService) Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	if err := policy.Authorize(p, policy.AnyRole, id); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// ChangeRole takes effect on the user's next request; outstanding tokens keep
// working but resolve to the new role.
func (s *UserService) ChangeRole(ctx context.Context, p domain.Principal, id, role string) (*domain.User, error) {
	if err := policy.RequireRole(p, policy.AdminOnly); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, id, parsed)
	if err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}
	s.log.Info().Str("user_id", id).Str("role", role).Str("actor", p.ID).Msg("role changed")
	return updated, nil
}

// Delete removes the account. Tokens issued to it stop resolving immediately.
func (s *UserService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := policy.RequireRole(p, policy.AdminOnly); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("user_id", id).Str("actor", p.ID).Msg("user deleted")
	return nil
}
