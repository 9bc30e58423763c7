package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeTokenReadsRoleAndExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signed(t, jwt.MapClaims{"sub": "asha", "role": "ADMIN", "exp": exp.Unix()})

	assert.True(t, LooksLikeToken(token))

	info, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "asha", info.Subject)
	assert.Equal(t, "ADMIN", info.Role)
	require.NotNil(t, info.ExpiresAt)
	assert.True(t, exp.Equal(*info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestRoleFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{"roles string", jwt.MapClaims{"roles": "USER"}, "USER"},
		{"roles list", jwt.MapClaims{"roles": []interface{}{"SUPER_ADMIN", "USER"}}, "SUPER_ADMIN"},
		{"authorities", jwt.MapClaims{"authorities": []interface{}{"ROLE_ADMIN"}}, "ROLE_ADMIN"},
		{"spring authorities", jwt.MapClaims{"authorities": []interface{}{map[string]interface{}{"authority": "ROLE_USER"}}}, "ROLE_USER"},
		{"role wins", jwt.MapClaims{"role": "ADMIN", "roles": "USER"}, "ADMIN"},
		{"none", jwt.MapClaims{"sub": "x"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RoleFromClaims(tc.claims))
		})
	}
}

func TestDecodeTokenWithoutExpiryNeverExpires(t *testing.T) {
	info, err := DecodeToken(signed(t, jwt.MapClaims{"role": "USER"}))
	require.NoError(t, err)
	assert.Nil(t, info.ExpiresAt)
	assert.False(t, info.Expired(time.Now().Add(24*365*time.Hour)))
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, err := DecodeToken("not-a-token")
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.False(t, LooksLikeToken("hello"))
}
