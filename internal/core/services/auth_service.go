package services

import (
	"fmt"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

type AuthService struct {
	owner  *domain.Owner
	tokens *TokenService
}

func NewAuthService(owner *domain.Owner, tokens *TokenService) *AuthService {
	return &AuthService{
		owner:  owner,
		tokens: tokens,
	}
}

// Login exchanges the owner's password for a signed API token.
func (s *AuthService) Login(password string) (string, error) {
	if err := s.owner.CheckPassword(password); err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("auth service: %w", err)
	}
	return token, nil
}
