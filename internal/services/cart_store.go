package services

import (
	"context"
	"encoding/json"
	"log"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
)

// LocalCartStore is the persisted cart of a single profile.
type LocalCartStore interface {
	// Load never fails: absent, unreadable or malformed content is an empty cart.
	Load(ctx context.Context) models.Cart
	// Save overwrites the persisted cart.
	Save(ctx context.Context, cart models.Cart) error
	// Clear removes the persisted cart.
	Clear(ctx context.Context) error
}

type StorageCartStore struct {
	storage   repositories.LocalStorage
	profileID string
}

func NewLocalCartStore(storage repositories.LocalStorage, profileID string) *StorageCartStore {
	return &StorageCartStore{storage: storage, profileID: profileID}
}

func (s *StorageCartStore) Load(ctx context.Context) models.Cart {
	raw, ok, err := s.storage.GetItem(ctx, s.profileID, models.StorageKeyCartItems)
	if err != nil {
		log.Printf("Failed to read cart for profile %s: %v", s.profileID, err)
		return models.Cart{}
	}
	if !ok || raw == "" {
		return models.Cart{}
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		log.Printf("Ignoring malformed cart for profile %s: %v", s.profileID, err)
		return models.Cart{}
	}
	if err := cart.Validate(); err != nil {
		log.Printf("Ignoring invalid cart for profile %s: %v", s.profileID, err)
		return models.Cart{}
	}
	if cart == nil {
		return models.Cart{}
	}
	return cart
}

func (s *StorageCartStore) Save(ctx context.Context, cart models.Cart) error {
	if cart == nil {
		cart = models.Cart{}
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.storage.SetItem(ctx, s.profileID, models.StorageKeyCartItems, string(data))
}

func (s *StorageCartStore) Clear(ctx context.Context) error {
	return s.storage.RemoveItem(ctx, s.profileID, models.StorageKeyCartItems)
}
