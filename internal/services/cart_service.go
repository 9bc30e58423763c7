package services

import (
	"context"
	"sync"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartController is the in-memory view of one profile's cart. Apart from the
// settlement after a placed order it is the only writer of the persisted cart
// entry; every mutation is saved before it is applied to the in-memory copy.
type CartController struct {
	store LocalCartStore
	items models.Cart
}

func NewCartController(ctx context.Context, store LocalCartStore) *CartController {
	return &CartController{store: store, items: store.Load(ctx)}
}

func (c *CartController) commit(ctx context.Context, next models.Cart) error {
	if err := c.store.Save(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// AddOrIncrement bumps the quantity of an existing line or appends a new one.
func (c *CartController) AddOrIncrement(ctx context.Context, product models.Product) error {
	next := c.items.Clone()
	if i := next.Index(product.ID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, models.LineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.ImageName,
			Quantity: 1,
		})
	}
	return c.commit(ctx, next)
}

// SetQuantity ignores quantities below 1; removing is a separate action.
func (c *CartController) SetQuantity(ctx context.Context, id models.ProductID, quantity int) error {
	if quantity < 1 {
		return nil
	}
	i := c.items.Index(id)
	if i < 0 {
		return ErrNotInCart
	}
	next := c.items.Clone()
	next[i].Quantity = quantity
	return c.commit(ctx, next)
}

func (c *CartController) Remove(ctx context.Context, id models.ProductID) error {
	i := c.items.Index(id)
	if i < 0 {
		return ErrNotInCart
	}
	next := make(models.Cart, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return c.commit(ctx, next)
}

func (c *CartController) Items() models.Cart {
	return c.items.Clone()
}

func (c *CartController) Total() decimal.Decimal {
	return c.items.Total()
}

// TotalDisplay rounds to two decimals for display only.
func (c *CartController) TotalDisplay() string {
	return c.Total().StringFixed(2)
}

func (c *CartController) IsEmpty() bool {
	return len(c.items) == 0
}

// CartView is the cart as returned to the storefront.
type CartView struct {
	Items        models.Cart     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	Empty        bool            `json:"empty"`
}

func (c *CartController) View() *CartView {
	return &CartView{
		Items:        c.Items(),
		Total:        c.Total(),
		TotalDisplay: c.TotalDisplay(),
		Empty:        c.IsEmpty(),
	}
}

// ProductLookup resolves a product id to the catalog entry being added.
type ProductLookup interface {
	GetProduct(ctx context.Context, token string, id models.ProductID) (*models.Product, error)
}

// ProfileLocks hands out one mutex per profile. Every writer of a profile's
// persisted cart takes it, so concurrent writers cannot lose updates.
type ProfileLocks struct {
	locks sync.Map
}

func NewProfileLocks() *ProfileLocks {
	return &ProfileLocks{}
}

// Lock blocks until the profile's mutex is held and returns its unlock.
func (l *ProfileLocks) Lock(profileID string) func() {
	mu, _ := l.locks.LoadOrStore(profileID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

// CartService serves cart requests for every profile.
type CartService struct {
	storage repositories.LocalStorage
	locks   *ProfileLocks
	catalog ProductLookup
}

func NewCartService(storage repositories.LocalStorage, locks *ProfileLocks, catalog ProductLookup) *CartService {
	return &CartService{storage: storage, locks: locks, catalog: catalog}
}

func (s *CartService) lock(profileID string) func() {
	return s.locks.Lock(profileID)
}

// Controller loads a fresh controller for the profile.
func (s *CartService) Controller(ctx context.Context, profileID string) *CartController {
	return NewCartController(ctx, NewLocalCartStore(s.storage, profileID))
}

func (s *CartService) GetCart(ctx context.Context, profileID string) *CartView {
	return s.Controller(ctx, profileID).View()
}

// AddProduct looks the product up in the catalog and adds one unit.
func (s *CartService) AddProduct(ctx context.Context, profileID, token string, id models.ProductID) (*CartView, error) {
	product, err := s.catalog.GetProduct(ctx, token, id)
	if err != nil {
		return nil, err
	}

	defer s.lock(profileID)()
	controller := s.Controller(ctx, profileID)
	if err := controller.AddOrIncrement(ctx, *product); err != nil {
		return nil, err
	}
	return controller.View(), nil
}

func (s *CartService) SetQuantity(ctx context.Context, profileID string, id models.ProductID, quantity int) (*CartView, error) {
	defer s.lock(profileID)()
	controller := s.Controller(ctx, profileID)
	if err := controller.SetQuantity(ctx, id, quantity); err != nil {
		return nil, err
	}
	return controller.View(), nil
}

func (s *CartService) Remove(ctx context.Context, profileID string, id models.ProductID) (*CartView, error) {
	defer s.lock(profileID)()
	controller := s.Controller(ctx, profileID)
	if err := controller.Remove(ctx, id); err != nil {
		return nil, err
	}
	return controller.View(), nil
}
