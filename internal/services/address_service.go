package services

import (
	"context"
	"log"

	"golang-storefront/internal/models"
)

type AddressAPI interface {
	Addresses(ctx context.Context, token string) ([]models.Address, error)
	AddAddress(ctx context.Context, token string, address models.Address) error
	UpdateAddress(ctx context.Context, token string, address models.Address) error
	UserDetails(ctx context.Context, token string) (*models.UserDetails, error)
}

type AddressStatus string

const (
	AddressUnresolved  AddressStatus = ""
	AddressFound       AddressStatus = "found"
	AddressMissing     AddressStatus = "missing"
	AddressFetchFailed AddressStatus = "fetch_failed"
)

// AddressResolution keeps "no address on file" and "lookup failed" apart even
// though checkout treats both as no address.
type AddressResolution struct {
	Status  AddressStatus   `json:"status"`
	Address *models.Address `json:"address,omitempty"`
	Err     error           `json:"-"`
}

func (r AddressResolution) Resolved() bool {
	return r.Status == AddressFound && r.Address != nil
}

type AddressService struct {
	api AddressAPI
}

func NewAddressService(api AddressAPI) *AddressService {
	return &AddressService{api: api}
}

// Resolve fetches the shipping address; only the first stored address is used.
func (s *AddressService) Resolve(ctx context.Context, token string) AddressResolution {
	addresses, err := s.api.Addresses(ctx, token)
	if err != nil {
		log.Printf("Address lookup failed: %v", err)
		return AddressResolution{Status: AddressFetchFailed, Err: err}
	}
	if len(addresses) == 0 {
		return AddressResolution{Status: AddressMissing}
	}
	first := addresses[0]
	return AddressResolution{Status: AddressFound, Address: &first}
}

// Prefill returns an address form with the read-only username and email filled in.
func (s *AddressService) Prefill(ctx context.Context, token string) (*models.Address, error) {
	details, err := s.api.UserDetails(ctx, token)
	if err != nil {
		return nil, err
	}
	return &models.Address{Username: details.Username, Email: details.Email}, nil
}

func (s *AddressService) Add(ctx context.Context, token string, address models.Address) error {
	if address.Username == "" || address.Email == "" {
		prefill, err := s.Prefill(ctx, token)
		if err != nil {
			return err
		}
		if address.Username == "" {
			address.Username = prefill.Username
		}
		if address.Email == "" {
			address.Email = prefill.Email
		}
	}
	return s.api.AddAddress(ctx, token, address)
}

func (s *AddressService) Update(ctx context.Context, token string, address models.Address) error {
	return s.api.UpdateAddress(ctx, token, address)
}
