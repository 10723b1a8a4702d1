package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const bearerPrefix = "Bearer "

// PrincipalResolver verifies the bearer token and re-reads the subject from the
// credential store, so deletions and role changes apply on the next request.
type PrincipalResolver struct {
	users ports.UserRepository
	codec *TokenCodec
	log   zerolog.Logger
}

func NewPrincipalResolver(users ports.UserRepository, codec *TokenCodec, log zerolog.Logger) *PrincipalResolver {
	return &PrincipalResolver{users: users, codec: codec, log: log}
}

// Resolve expects the raw Authorization header value.
func (r *PrincipalResolver) Resolve(ctx context.Context, authorization string) (domain.Principal, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) || len(authorization) == len(bearerPrefix) {
		return domain.Principal{}, domain.ErrMissingCredential
	}

	claims, err := r.codec.Verify(authorization[len(bearerPrefix):])
	if err != nil {
		return domain.Principal{}, err
	}

	user, err := r.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, fmt.Errorf("resolve %s: %w", claims.UserID, domain.ErrUnknownSubject)
		}
		return domain.Principal{}, fmt.Errorf("resolve principal: %w", err)
	}

	if user.Role != claims.Role {
		r.log.Debug().
			Str("user_id", user.ID).
			Str("token_role", string(claims.Role)).
			Str("stored_role", string(user.Role)).
			Msg("role changed since token was issued")
	}

	return user.Principal(), nil
}
