package handlers

import (
	"context"

	"golang-storefront/internal/models"
	"golang-storefront/internal/services"
)

// AddressServiceInterface defines the contract for shipping addresses
type AddressServiceInterface interface {
	Resolve(ctx context.Context, token string) services.AddressResolution
	Prefill(ctx context.Context, token string) (*models.Address, error)
	Add(ctx context.Context, token string, address models.Address) error
	Update(ctx context.Context, token string, address models.Address) error
}

// ProfileServiceInterface defines the contract for the profile screen
type ProfileServiceInterface interface {
	Get(ctx context.Context, token string) (*services.Profile, error)
}
