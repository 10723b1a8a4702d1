// Package policy is the single access decision point for every resource.
//
// A decision is a pure function of the principal, the roles the operation
// accepts and the owner ids of the target resource. The role gate is always
// evaluated before the ownership gate.
package policy

import (
	"fmt"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// Common role sets.
var (
	AnyRole         []domain.Role
	CandidateOnly   = []domain.Role{domain.RoleCandidate}
	EmployerOrAdmin = []domain.Role{domain.RoleEmployer, domain.RoleAdmin}
	AdminOnly       = []domain.Role{domain.RoleAdmin}
)

// Authorize returns nil when p may act, or a wrapped domain.ErrInsufficientRole
// or domain.ErrInsufficientOwnership otherwise.
//
// An empty roles slice skips the role gate. When owners is non-empty the
// principal must match one of them unless it is an admin. Empty owner ids never match.
func Authorize(p domain.Principal, roles []domain.Role, owners ...string) error {
	if err := RequireRole(p, roles); err != nil {
		return err
	}
	if len(owners) == 0 || p.Role == domain.RoleAdmin {
		return nil
	}
	for _, owner := range owners {
		if owner != "" && owner == p.ID {
			return nil
		}
	}
	return fmt.Errorf("authorize %s: %w", p.ID, domain.ErrInsufficientOwnership)
}

// RequireRole applies the role gate alone.
func RequireRole(p domain.Principal, roles []domain.Role) error {
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return fmt.Errorf("authorize %s as %q: %w", p.ID, p.Role, domain.ErrInsufficientRole)
}
