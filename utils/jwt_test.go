package utils

import (
	"testing"

	"formu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, string(models.RoleEditor))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, string(models.RoleEditor), claims.Role)
	assert.Equal(t, "formu.link", claims.Issuer)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("bozuk.token.degeri")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(7, string(models.RoleAdmin))
	require.NoError(t, err)

	// İmza bölümü bozulmuş token reddedilir.
	_, err = ParseToken(token[:len(token)-4] + "aaaa")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
