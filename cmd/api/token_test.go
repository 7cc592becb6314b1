package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignToken(t *testing.T) {
	now := time.Now()

	signed, err := signToken("dev-secret", "E1", "employee", time.Hour, now)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("dev-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "E1", claims["sub"])
	assert.Equal(t, "employee", claims["role"])

	_, err = signToken("", "E1", "employee", time.Hour, now)
	assert.Error(t, err)

	_, err = signToken("dev-secret", "E1", "superuser", time.Hour, now)
	assert.Error(t, err)
}
