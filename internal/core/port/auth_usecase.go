package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// AuthUseCase exposes registration, login and identity lookup.
type AuthUseCase interface {
	// Register creates an account and returns it together with a fresh token.
	// domain.ErrEmailTaken is returned when the email is already in use.
	Register(ctx context.Context, req RegisterReq) (*AuthResp, error)

	// Login checks credentials and issues a token. Unknown emails and wrong
	// passwords both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, req LoginReq) (*AuthResp, error)

	// Me returns the user behind an authenticated identity.
	Me(ctx context.Context, id domain.Identity) (*domain.User, error)
}

// RegisterReq is the validated registration input.
type RegisterReq struct {
	Email    string
	Password string
	Name     string
}

// LoginReq is the validated login input.
type LoginReq struct {
	Email    string
	Password string
}

// AuthResp is returned by Register and Login.
type AuthResp struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}
