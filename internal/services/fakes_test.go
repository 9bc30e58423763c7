package services

import (
	"context"
	"errors"
	"sync"

	"golang-storefront/internal/models"
	"golang-storefront/pkg/storeapi"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeCatalog struct {
	products []models.Product
	err      error
}

func (f *fakeCatalog) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) GetProduct(ctx context.Context, token string, id models.ProductID) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, &storeapi.StatusError{Method: "GET", Path: "/web/product/" + id.String(), StatusCode: 404}
}

type fakeBackend struct {
	mu sync.Mutex

	addresses    []models.Address
	addressesErr error
	details      *models.UserDetails
	user         *models.UserDetails
	userErr      error
	added        []models.Address
	updated      []models.Address

	orderErr   error
	orders     []models.OrderPayload
	orderGate  chan struct{}
	orderEnter chan struct{}
}

func (f *fakeBackend) Addresses(ctx context.Context, token string) ([]models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addresses, f.addressesErr
}

func (f *fakeBackend) AddAddress(ctx context.Context, token string, address models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, address)
	f.addresses = append(f.addresses, address)
	return nil
}

func (f *fakeBackend) UpdateAddress(ctx context.Context, token string, address models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, address)
	return nil
}

func (f *fakeBackend) UserDetails(ctx context.Context, token string) (*models.UserDetails, error) {
	if f.details == nil {
		return nil, errors.New("no details")
	}
	return f.details, nil
}

func (f *fakeBackend) CurrentUser(ctx context.Context, token string) (*models.UserDetails, error) {
	return f.user, f.userErr
}

func (f *fakeBackend) SubmitOrder(ctx context.Context, token string, payload models.OrderPayload) error {
	if f.orderEnter != nil {
		f.orderEnter <- struct{}{}
	}
	if f.orderGate != nil {
		<-f.orderGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, payload)
	return f.orderErr
}

func (f *fakeBackend) submitted() []models.OrderPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.OrderPayload(nil), f.orders...)
}

type fakePublisher struct {
	events []models.OrderPlaced
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, order models.OrderPlaced) error {
	f.events = append(f.events, order)
	return f.err
}

// memoryCartStore is a LocalCartStore double that records calls.
type memoryCartStore struct {
	cart    models.Cart
	saveErr error
	saves   int
	clears  int
}

func (m *memoryCartStore) Load(ctx context.Context) models.Cart {
	return m.cart.Clone()
}

func (m *memoryCartStore) Save(ctx context.Context, cart models.Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.cart = cart.Clone()
	return nil
}

func (m *memoryCartStore) Clear(ctx context.Context) error {
	m.clears++
	m.cart = models.Cart{}
	return nil
}
