package handlers

import (
	"context"

	"golang-storefront/internal/models"
	"golang-storefront/internal/services"
	"golang-storefront/pkg/storeapi"
)

// CatalogServiceInterface defines the contract for product browsing
type CatalogServiceInterface interface {
	List(ctx context.Context, token string, filter services.ProductFilter) ([]models.Product, error)
	Categories(ctx context.Context, token string) ([]string, error)
	Get(ctx context.Context, token string, id models.ProductID) (*models.Product, error)
}

// AdminServiceInterface defines the contract for product and role administration
type AdminServiceInterface interface {
	FetchProduct(ctx context.Context, session *services.Session, query string) error
	UpdateProduct(ctx context.Context, session *services.Session, product models.ProductUpdate, image *storeapi.ImageUpload) error
	ListUsers(ctx context.Context, session *services.Session, search string) ([]models.User, error)
	UpdateRole(ctx context.Context, session *services.Session, email, role string) (*models.User, error)
}
