package userservice

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Generate(&User{ID: 42, Username: "root"})
	require.NoError(t, err)

	id, err := tm.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestTokenManagerRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	otherSecret, err := NewTokenManager("other", time.Hour).Generate(&User{ID: 1})
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "other secret", token: otherSecret},
		{name: "expired", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))})},
		{name: "no subject", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{})},
		{name: "non numeric subject", token: sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Subject: "root"})},
		{name: "none algorithm", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Subject: "1"})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tm.Verify(tc.token)
			assert.Equal(t, ErrInvalidToken, err)
		})
	}
}
