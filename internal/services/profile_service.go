package services

import (
	"context"
	"log"
	"sync"

	"golang-storefront/internal/models"
)

type ProfileAPI interface {
	CurrentUser(ctx context.Context, token string) (*models.UserDetails, error)
	Addresses(ctx context.Context, token string) ([]models.Address, error)
}

type Profile struct {
	User    *models.UserDetails `json:"user"`
	Address *models.Address     `json:"address"`
}

type ProfileService struct {
	api ProfileAPI
}

func NewProfileService(api ProfileAPI) *ProfileService {
	return &ProfileService{api: api}
}

// Get loads the user and the first address in parallel. A failed address
// lookup leaves Address nil; a failed user lookup fails the call.
func (s *ProfileService) Get(ctx context.Context, token string) (*Profile, error) {
	var (
		wg        sync.WaitGroup
		user      *models.UserDetails
		userErr   error
		addresses []models.Address
		addrErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = s.api.CurrentUser(ctx, token)
	}()
	go func() {
		defer wg.Done()
		addresses, addrErr = s.api.Addresses(ctx, token)
	}()
	wg.Wait()

	if userErr != nil {
		return nil, userErr
	}
	profile := &Profile{User: user}
	if addrErr != nil {
		log.Printf("Profile address lookup failed: %v", addrErr)
	} else if len(addresses) > 0 {
		first := addresses[0]
		profile.Address = &first
	}
	return profile, nil
}
