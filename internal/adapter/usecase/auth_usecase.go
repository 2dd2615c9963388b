package usecase

import (
	"context"
	"fmt"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// AuthUseCase composes the credential store and token service. It
// implements port.AuthUseCase.
type AuthUseCase struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	tokens port.TokenService
}

// NewAuthUseCase creates a new usecase with the provided collaborators.
func NewAuthUseCase(users port.UserRepository, hasher port.PasswordHasher, tokens port.TokenService) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a user and issues a token for it. The email lookup is
// only a fast path: two concurrent registrations can both pass it, and the
// unique index then rejects the second insert with domain.ErrEmailTaken.
func (u *AuthUseCase) Register(ctx context.Context, req port.RegisterReq) (*port.AuthResp, error) {
	existing, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := u.users.Create(ctx, domain.NewUser{Email: req.Email, Name: req.Name, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	return u.respond(user)
}

// Login verifies the credentials and issues a token. The caller cannot
// tell an unknown email from a wrong password.
func (u *AuthUseCase) Login(ctx context.Context, req port.LoginReq) (*port.AuthResp, error) {
	user, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !u.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return u.respond(user)
}

// Me loads the user behind id. A token may outlive its user row, in which
// case domain.ErrNotFound is returned.
func (u *AuthUseCase) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (u *AuthUseCase) respond(user *domain.User) (*port.AuthResp, error) {
	tok, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &port.AuthResp{User: *user, Token: tok}, nil
}
