package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fidomax07/vetting-api/internal/auth"
	"github.com/fidomax07/vetting-api/internal/repository"
	"gorm.io/gorm"
)

// AuthGuard resolves a bearer token to the user holding it.
type AuthGuard struct {
	users    repository.UserRepository
	signer   auth.TokenSigner
	accounts *UserService
}

// NewAuthGuard creates a new AuthGuard.
func NewAuthGuard(users repository.UserRepository, signer auth.TokenSigner, accounts *UserService) *AuthGuard {
	return &AuthGuard{
		users:    users,
		signer:   signer,
		accounts: accounts,
	}
}

// Resolve verifies token and returns the account whose active tokens still
// contain it. Every failure is reported as ErrUnauthenticated except store errors.
func (g *AuthGuard) Resolve(ctx context.Context, token string) (*Account, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := g.signer.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := g.users.FindByIDAndToken(ctx, userID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return g.accounts.Account(user), nil
}
