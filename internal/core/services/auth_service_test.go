package services

import (
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	owner, err := domain.NewOwner("owner", "")
	require.NoError(t, err)
	require.NoError(t, owner.SetPassword("StrongPassword123!"))

	tokens := NewTokenService("secret", "kanso-test", owner.Name, time.Hour)
	service := NewAuthService(owner, tokens)

	t.Run("Success: Should issue a token for the right password", func(t *testing.T) {
		token, err := service.Login("StrongPassword123!")

		require.NoError(t, err)
		subject, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "owner", subject)
	})

	t.Run("Failure: Wrong password", func(t *testing.T) {
		token, err := service.Login("WrongPassword!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("Failure: Owner without password never logs in", func(t *testing.T) {
		empty, err := domain.NewOwner("owner", "")
		require.NoError(t, err)

		_, err = NewAuthService(empty, tokens).Login("")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
