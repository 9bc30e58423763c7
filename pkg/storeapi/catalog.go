package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"golang-storefront/internal/models"
)

func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/web/product", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, token string, id models.ProductID) (*models.Product, error) {
	var product models.Product
	path := "/web/product/" + url.PathEscape(id.String())
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchProducts asks the backend to scrape and save products matching query.
func (c *Client) FetchProducts(ctx context.Context, token, query string) error {
	params := url.Values{}
	params.Set("searchQuery", query)
	params.Set("productTitle", query)
	_, _, err := c.do(ctx, http.MethodPost, "/web/fetch-products?"+params.Encode(), requestOptions{token: token})
	return err
}

// ImageUpload is an optional replacement product image.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// UpdateProduct sends a multipart form with a JSON "product" part and an
// optional "imageFile" part.
func (c *Client) UpdateProduct(ctx context.Context, token string, product models.ProductUpdate, image *ImageUpload) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="product"; filename="blob"`)
	header.Set("Content-Type", "application/json")
	part, err := form.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(productJSON); err != nil {
		return err
	}

	if image != nil {
		imageHeader := make(textproto.MIMEHeader)
		imageHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename=%q`, image.Filename))
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		imageHeader.Set("Content-Type", contentType)
		imagePart, err := form.CreatePart(imageHeader)
		if err != nil {
			return err
		}
		if _, err := io.Copy(imagePart, image.Data); err != nil {
			return fmt.Errorf("failed to copy image: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return err
	}

	_, _, err = c.do(ctx, http.MethodPut, "/web/update", requestOptions{
		token:       token,
		body:        &buf,
		contentType: form.FormDataContentType(),
	})
	return err
}
