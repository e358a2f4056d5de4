package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
)

// AdminSubject is the token subject issued to operators.
const AdminSubject = "admin"

// AdminAuthService implements ports.AuthService against a single configured
// argon2id hash of the operator API key.
type AdminAuthService struct {
	keyHash  string
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
}

// NewAdminAuthService creates a new AdminAuthService. An empty keyHash disables login.
func NewAdminAuthService(keyHash string, hashSvc ports.HashService, tokenSvc ports.TokenService) *AdminAuthService {
	return &AdminAuthService{
		keyHash:  strings.TrimSpace(keyHash),
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
	}
}

// Login exchanges the operator API key for a JWT.
func (s *AdminAuthService) Login(ctx context.Context, apiKey string) (string, time.Time, error) {
	if s.keyHash == "" {
		return "", time.Time{}, apperror.ErrAdminDisabled()
	}
	if apiKey == "" {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(apiKey, s.keyHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify admin key: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(AdminSubject)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return token, expiry, nil
}
