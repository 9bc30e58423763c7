package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-storefront/internal/models"
)

// SubmitOrder posts the order once. The submission id doubles as the
// Idempotency-Key header so the backend can drop duplicates.
func (c *Client) SubmitOrder(ctx context.Context, token string, payload models.OrderPayload) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	opts := requestOptions{
		token:       token,
		body:        bytes.NewReader(jsonBody),
		contentType: "application/json",
	}
	if payload.SubmissionID != "" {
		opts.headers = map[string]string{"Idempotency-Key": payload.SubmissionID}
	}
	_, _, err = c.do(ctx, http.MethodPost, "/web/order", opts)
	return err
}
