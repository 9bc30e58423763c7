package storeapi

import (
	"context"
	"net/http"

	"golang-storefront/internal/models"
)

// Addresses returns the user's saved addresses; an empty list means none on file.
func (c *Client) Addresses(ctx context.Context, token string) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.doJSON(ctx, http.MethodGet, "/web/user/address", token, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) AddAddress(ctx context.Context, token string, address models.Address) error {
	return c.doJSON(ctx, http.MethodPost, "/web/addAddress", token, address, nil)
}

func (c *Client) UpdateAddress(ctx context.Context, token string, address models.Address) error {
	return c.doJSON(ctx, http.MethodPut, "/web/updateAddress", token, address, nil)
}

func (c *Client) UserDetails(ctx context.Context, token string) (*models.UserDetails, error) {
	var details models.UserDetails
	if err := c.doJSON(ctx, http.MethodGet, "/web/userDetails", token, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// CurrentUser is the signed-in user shown on the profile screen.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.UserDetails, error) {
	var user models.UserDetails
	if err := c.doJSON(ctx, http.MethodGet, "/web/username", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Users(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/web/roles-assign", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, token string, user models.User) error {
	return c.doJSON(ctx, http.MethodPost, "/web/roles-update", token, user, nil)
}
