package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// UserRepository persists user identities. Lookups return nil when no
// row matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create inserts a user. A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, u domain.NewUser) (*domain.User, error)
}

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash.
	Verify(password, hash string) bool
}

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	Issue(userID int64, email string) (string, error)
	// Validate returns the identity bound to token or domain.ErrInvalidToken.
	Validate(token string) (domain.Identity, error)
}
