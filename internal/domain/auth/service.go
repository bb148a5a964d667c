package auth

import (
	"context"
	"net/http"
)

// AuthService issues the identity the engine trusts: JWT claims carrying the
// actor's employee id and role.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, *http.Cookie, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, *http.Cookie, error)
	Logout(ctx context.Context, refreshToken string) error
}
