package services

import (
	"context"
	"strings"

	"golang-storefront/internal/models"
)

// CategoryAll matches every product.
const CategoryAll = "all"

type CatalogAPI interface {
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	GetProduct(ctx context.Context, token string, id models.ProductID) (*models.Product, error)
}

type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}

func (f ProductFilter) matches(p models.Product) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	return true
}

type CatalogService struct {
	api CatalogAPI
}

func NewCatalogService(api CatalogAPI) *CatalogService {
	return &CatalogService{api: api}
}

func (s *CatalogService) List(ctx context.Context, token string, filter ProductFilter) ([]models.Product, error) {
	products, err := s.api.ListProducts(ctx, token)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filter.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Categories returns "all" followed by each category in first-seen order.
func (s *CatalogService) Categories(ctx context.Context, token string) ([]string, error) {
	products, err := s.api.ListProducts(ctx, token)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	categories := []string{CategoryAll}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories, nil
}

func (s *CatalogService) Get(ctx context.Context, token string, id models.ProductID) (*models.Product, error) {
	return s.api.GetProduct(ctx, token, id)
}

// GetProduct lets the cart add products through the catalog.
func (s *CatalogService) GetProduct(ctx context.Context, token string, id models.ProductID) (*models.Product, error) {
	return s.Get(ctx, token, id)
}
