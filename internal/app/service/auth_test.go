package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndParseToken(t *testing.T) {
	auth := NewAuth("test-secret")

	tokenString, userID, err := auth.BuildTokenString()
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.NotEmpty(t, userID)

	claims, err := auth.ParseClaims(&http.Cookie{Name: "token", Value: tokenString})
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestParseRawTokenErrors(t *testing.T) {
	auth := NewAuth("test-secret")

	_, err := auth.ParseRawToken("not-a-token")
	assert.Error(t, err)

	// token signed with a different secret is rejected
	other := NewAuth("other-secret")
	tokenString, _, err := other.BuildTokenString()
	require.NoError(t, err)

	_, err = auth.ParseRawToken(tokenString)
	assert.Error(t, err)
}
