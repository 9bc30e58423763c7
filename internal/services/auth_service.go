package services

import (
	"context"
	"log"
	"strings"

	"golang-storefront/pkg/auth"
	"golang-storefront/pkg/storeapi"
)

type AuthAPI interface {
	Login(ctx context.Context, req storeapi.LoginRequest) (string, error)
	Register(ctx context.Context, req storeapi.RegisterRequest) error
}

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

type AuthService struct {
	api      AuthAPI
	sessions *SessionStore
}

func NewAuthService(api AuthAPI, sessions *SessionStore) *AuthService {
	return &AuthService{api: api, sessions: sessions}
}

// Login stores the token and the role read from its claims. Any failure
// leaves the profile without a token.
func (s *AuthService) Login(ctx context.Context, profileID string, req LoginRequest) (*Session, error) {
	token, err := s.api.Login(ctx, storeapi.LoginRequest{Username: req.Username, Password: req.Password})
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Username, err)
		if dropErr := s.sessions.DropToken(ctx, profileID); dropErr != nil {
			log.Printf("Failed to drop token for profile %s: %v", profileID, dropErr)
		}
		return nil, ErrInvalidCredentials
	}

	session := &Session{Token: token}
	if info, err := auth.DecodeToken(token); err == nil {
		session.Role = info.Role
		session.ExpiresAt = info.ExpiresAt
	}
	if err := s.sessions.Save(ctx, profileID, token, session.Role); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" ||
		req.Password == "" || strings.TrimSpace(req.Roles) == "" {
		return ErrMissingFields
	}
	err := s.api.Register(ctx, storeapi.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		log.Printf("Registration failed for %s: %v", req.Email, err)
		return ErrRegistrationFailed
	}
	return nil
}

// Logout forgets token and role; the cart stays.
func (s *AuthService) Logout(ctx context.Context, profileID string) error {
	return s.sessions.Clear(ctx, profileID)
}

func (s *AuthService) Session(ctx context.Context, profileID string) (*Session, error) {
	return s.sessions.Current(ctx, profileID)
}

// HandleBackendError drops the stored token when the backend rejected it.
func (s *AuthService) HandleBackendError(ctx context.Context, profileID string, err error) {
	if !storeapi.IsUnauthorized(err) {
		return
	}
	if dropErr := s.sessions.DropToken(ctx, profileID); dropErr != nil {
		log.Printf("Failed to drop token for profile %s: %v", profileID, dropErr)
	}
}
