package services

import (
	"context"
	"strings"

	"golang-storefront/internal/models"
	"golang-storefront/pkg/storeapi"
)

type AdminAPI interface {
	FetchProducts(ctx context.Context, token, query string) error
	UpdateProduct(ctx context.Context, token string, product models.ProductUpdate, image *storeapi.ImageUpload) error
	Users(ctx context.Context, token string) ([]models.User, error)
	UpdateUserRole(ctx context.Context, token string, user models.User) error
}

// AdminService covers product maintenance and role management. Callers pass
// the session so role checks happen here as well as in middleware.
type AdminService struct {
	api AdminAPI
}

func NewAdminService(api AdminAPI) *AdminService {
	return &AdminService{api: api}
}

func (s *AdminService) FetchProduct(ctx context.Context, session *Session, query string) error {
	if !session.HasRole(models.RoleAdmin, models.RoleSuperAdmin) {
		return ErrForbidden
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrSearchQueryRequired
	}
	return s.api.FetchProducts(ctx, session.Token, query)
}

func (s *AdminService) UpdateProduct(ctx context.Context, session *Session, product models.ProductUpdate, image *storeapi.ImageUpload) error {
	if !session.HasRole(models.RoleAdmin, models.RoleSuperAdmin) {
		return ErrForbidden
	}
	return s.api.UpdateProduct(ctx, session.Token, product, image)
}

// ListUsers filters by case-insensitive substring of username or email.
func (s *AdminService) ListUsers(ctx context.Context, session *Session, search string) ([]models.User, error) {
	if !session.HasRole(models.RoleSuperAdmin) {
		return nil, ErrForbidden
	}
	users, err := s.api.Users(ctx, session.Token)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return users, nil
	}
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), term) || strings.Contains(strings.ToLower(u.Email), term) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// UpdateRole posts the full user record with its roles replaced.
func (s *AdminService) UpdateRole(ctx context.Context, session *Session, email, role string) (*models.User, error) {
	if !session.HasRole(models.RoleSuperAdmin) {
		return nil, ErrForbidden
	}
	role = models.NormalizeRole(role)
	if !models.IsKnownRole(role) {
		return nil, ErrUnknownRole
	}

	users, err := s.api.Users(ctx, session.Token)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		u.Roles = role
		if err := s.api.UpdateUserRole(ctx, session.Token, u); err != nil {
			return nil, err
		}
		return &u, nil
	}
	return nil, ErrUserNotFound
}
