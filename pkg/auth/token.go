package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// TokenInfo is what the storefront reads out of a backend token. The signature
// is the backend's concern; claims are only read, never trusted for access.
type TokenInfo struct {
	Subject   string
	Role      string
	ExpiresAt *time.Time
}

// LooksLikeToken reports whether s has the shape of a JWT (base64 of {"alg":...).
func LooksLikeToken(s string) bool {
	return strings.HasPrefix(s, "ey") && strings.Count(s, ".") == 2
}

// DecodeToken reads the claims of a backend token without verifying it.
func DecodeToken(tokenString string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformedToken
	}

	info := &TokenInfo{Role: RoleFromClaims(claims)}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info, nil
}

// Expired reports whether the token's exp claim is in the past. Tokens
// without exp never expire on this side.
func (t *TokenInfo) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// RoleFromClaims picks the role the way the backend publishes it: role, then
// roles, then the first entry of authorities.
func RoleFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"role", "roles", "authorities"} {
		if role := firstRole(claims[key]); role != "" {
			return role
		}
	}
	return ""
}

func firstRole(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []interface{}:
		if len(value) == 0 {
			return ""
		}
		return firstRole(value[0])
	case map[string]interface{}:
		// Spring serialises GrantedAuthority as {"authority": "ROLE_X"}
		if authority, ok := value["authority"].(string); ok {
			return authority
		}
	}
	return ""
}
