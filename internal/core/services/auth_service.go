package services

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/planfirst/financial_planning_app/internal/utils"
	"github.com/planfirst/financial_planning_app/pkg/config"
)

// authService implements the AuthSvc interface for the single configured
// admin user.
type authService struct {
	BaseService
	cfg *config.Config
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config) portssvc.AuthSvc {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Login verifies the admin credentials and issues a signed JWT.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if s.cfg.AdminPasswordHash == "" {
		s.LogError(ctx, apperrors.ErrUnauthorized, "Login rejected: no admin password hash configured")
		return "", apperrors.ErrUnauthorized
	}

	usernameMatches := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passwordMatches := utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash)
	if !usernameMatches || !passwordMatches {
		s.LogInfo(ctx, "Login failed", slog.String("username", username))
		return "", apperrors.ErrUnauthorized
	}

	token, err := utils.GenerateJWT(username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign JWT")
		return "", err
	}

	s.LogInfo(ctx, "Login succeeded", slog.String("username", username))
	return token, nil
}
