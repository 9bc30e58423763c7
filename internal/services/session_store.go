package services

import (
	"context"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
	"golang-storefront/pkg/auth"
)

// Session is the signed-in state of one profile.
type Session struct {
	Token     string     `json:"-"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// HasRole compares roles ignoring the ROLE_ prefix.
func (s *Session) HasRole(roles ...string) bool {
	current := models.NormalizeRole(s.Role)
	for _, role := range roles {
		if current == models.NormalizeRole(role) {
			return true
		}
	}
	return false
}

// SessionStore reads and writes the token and userRole entries.
type SessionStore struct {
	storage repositories.LocalStorage
	now     func() time.Time
}

func NewSessionStore(storage repositories.LocalStorage) *SessionStore {
	return &SessionStore{storage: storage, now: time.Now}
}

// Current returns the profile's session. A missing token, or one whose exp
// claim has passed, is ErrNotLoggedIn; an expired token is also removed.
func (s *SessionStore) Current(ctx context.Context, profileID string) (*Session, error) {
	token, ok, err := s.storage.GetItem(ctx, profileID, models.StorageKeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrNotLoggedIn
	}

	role, _, err := s.storage.GetItem(ctx, profileID, models.StorageKeyUserRole)
	if err != nil {
		return nil, err
	}

	session := &Session{Token: token, Role: role}
	if info, err := auth.DecodeToken(token); err == nil {
		if info.Expired(s.now()) {
			if err := s.DropToken(ctx, profileID); err != nil {
				return nil, err
			}
			return nil, ErrNotLoggedIn
		}
		session.ExpiresAt = info.ExpiresAt
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, profileID, token, role string) error {
	if err := s.storage.SetItem(ctx, profileID, models.StorageKeyToken, token); err != nil {
		return err
	}
	if role == "" {
		return s.storage.RemoveItem(ctx, profileID, models.StorageKeyUserRole)
	}
	return s.storage.SetItem(ctx, profileID, models.StorageKeyUserRole, role)
}

// DropToken forgets the token but keeps the role entry, as the browser did on a 401.
func (s *SessionStore) DropToken(ctx context.Context, profileID string) error {
	return s.storage.RemoveItem(ctx, profileID, models.StorageKeyToken)
}

// Clear removes token and role; the cart is untouched.
func (s *SessionStore) Clear(ctx context.Context, profileID string) error {
	if err := s.storage.RemoveItem(ctx, profileID, models.StorageKeyToken); err != nil {
		return err
	}
	return s.storage.RemoveItem(ctx, profileID, models.StorageKeyUserRole)
}
