package auth

import (
	"fmt"

	"github.com/google/uuid"
)

// Service issues and validates connection tokens. The sync core never
// sees tokens; enforcement lives entirely in the transport layer and is
// disabled when no secret is configured.
type Service struct {
	cfg *JWTConfig
}

// NewService creates an auth service with the given JWT config.
func NewService(cfg *JWTConfig) *Service {
	return &Service{cfg: cfg}
}

// Enforced reports whether token validation is active.
func (s *Service) Enforced() bool {
	return s != nil && len(s.cfg.Secret) > 0
}

// GuestToken mints a token for an anonymous drawing session and returns
// it with the generated user ID.
func (s *Service) GuestToken() (token, userID string, err error) {
	userID = "guest-" + uuid.NewString()[:8]
	token, err = GenerateToken(s.cfg, userID, true)
	if err != nil {
		return "", "", fmt.Errorf("generate guest token: %w", err)
	}
	return token, userID, nil
}

// ValidateToken parses and validates a token string.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("missing token")
	}
	return ValidateToken(s.cfg, token)
}
