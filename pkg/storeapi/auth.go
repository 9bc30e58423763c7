package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang-storefront/pkg/auth"
)

// ErrNoToken means the login call succeeded but carried no token.
var ErrNoToken = errors.New("login response carried no token")

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Roles    string `json:"roles"`
}

// Login returns the bearer token. The backend answers either {"token": "..."}
// or the bare token as the response body.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	body, _, err := c.do(ctx, http.MethodPost, "/web/login", requestOptions{
		body:        bytes.NewReader(jsonBody),
		contentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return extractToken(body)
}

func extractToken(body []byte) (string, error) {
	var wrapped struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Token != "" {
		return wrapped.Token, nil
	}

	var quoted string
	if err := json.Unmarshal(body, &quoted); err == nil && auth.LooksLikeToken(quoted) {
		return quoted, nil
	}

	if raw := strings.TrimSpace(string(body)); auth.LooksLikeToken(raw) {
		return raw, nil
	}
	return "", ErrNoToken
}

// Register succeeds only on HTTP 200.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return err
	}
	_, status, err := c.do(ctx, http.MethodPost, "/web/register", requestOptions{
		body:        bytes.NewReader(jsonBody),
		contentType: "application/json",
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("register: unexpected status %d", status)
	}
	return nil
}

func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/web/get-otp", "", map[string]string{"email": email}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.doJSON(ctx, http.MethodPost, "/web/verify-otp", "", map[string]string{"email": email, "otp": otp}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/web/reset-password", "", map[string]string{"email": email, "password": password}, nil)
}
