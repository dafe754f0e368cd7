package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/server"
)

func TestTokenCommand(t *testing.T) {
	const secret = "cli-test-secret-0123456789abcdef"
	t.Setenv("SKILLMATCH_AUTH_JWT_SECRET", secret)

	stdout, _, err := executeCommand(t, "token", "--subject", "deploy-bot")
	require.NoError(t, err)

	token := strings.TrimSpace(stdout)
	claims, err := server.NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 24}).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "deploy-bot", claims.SubjectID())
	assert.True(t, claims.HasScope(server.AdminScope))
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("SKILLMATCH_AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	_, _, err := executeCommand(t, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}
