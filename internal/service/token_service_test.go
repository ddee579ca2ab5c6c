package service

import (
	"testing"

	"github.com/hndoan/Lorises/config"
	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenConfig(secret string) *config.Config {
	return &config.Config{JWT: config.JWT{Secret: secret, AccessTTLHours: 1}}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService(tokenConfig("test-secret"))
	user := &model.User{ID: 7, Email: "learner@example.com"}

	signed, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestTokenParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(tokenConfig("secret-a"))
	verifier := NewTokenService(tokenConfig("secret-b"))

	signed, err := issuer.Issue(&model.User{ID: 7})
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestTokenParseRejectsGarbage(t *testing.T) {
	tokens := NewTokenService(tokenConfig("test-secret"))

	_, err := tokens.Parse("not.a.token")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
