package services

import "context"

// AuthSvc authenticates the configured admin user and issues API tokens.
type AuthSvc interface {
	// Login verifies credentials and returns a signed JWT.
	Login(ctx context.Context, username, password string) (string, error)
}
