package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// LocalStorage is the per-profile key/value store that stands in for the
// browser's localStorage. Values are opaque strings.
type LocalStorage interface {
	// GetItem returns the value and whether the key exists.
	GetItem(ctx context.Context, profileID, key string) (string, bool, error)
	// SetItem overwrites the value.
	SetItem(ctx context.Context, profileID, key, value string) error
	// RemoveItem deletes the key; removing a missing key is not an error.
	RemoveItem(ctx context.Context, profileID, key string) error
}

var ErrInvalidProfileID = errors.New("invalid profile id")

// validateProfileID keeps profile ids usable as file names and key segments.
func validateProfileID(profileID string) error {
	if profileID == "" || len(profileID) > 64 {
		return ErrInvalidProfileID
	}
	if strings.ContainsAny(profileID, `/\:.`) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileID, profileID)
	}
	return nil
}
