package handlers

import (
	"context"

	"golang-storefront/internal/models"
	"golang-storefront/internal/services"
)

// CartServiceInterface defines the contract for cart service
type CartServiceInterface interface {
	GetCart(ctx context.Context, profileID string) *services.CartView
	AddProduct(ctx context.Context, profileID, token string, id models.ProductID) (*services.CartView, error)
	SetQuantity(ctx context.Context, profileID string, id models.ProductID, quantity int) (*services.CartView, error)
	Remove(ctx context.Context, profileID string, id models.ProductID) (*services.CartView, error)
}

// CheckoutServiceInterface defines the contract for the checkout flow
type CheckoutServiceInterface interface {
	State(ctx context.Context, profileID string) *services.CheckoutView
	Proceed(ctx context.Context, profileID, token string) (*services.CheckoutView, error)
	RefreshAddress(ctx context.Context, profileID, token string) (*services.CheckoutView, error)
	ContinueToPayment(ctx context.Context, profileID string) (*services.CheckoutView, error)
	SelectPayment(ctx context.Context, profileID string, method models.PaymentMethod) (*services.CheckoutView, error)
	Submit(ctx context.Context, profileID, token string) (*services.CheckoutView, error)
	Reset(profileID string)
}
