package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/pkg/storeapi"
)

type OrderAPI interface {
	SubmitOrder(ctx context.Context, token string, payload models.OrderPayload) error
}

// OrderEventPublisher announces placed orders; it may be nil.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order models.OrderPlaced) error
}

// SubmissionError is a failed order POST. StatusCode is 0 when the backend
// was not reached.
type SubmissionError struct {
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("order submission failed: %v", e.Err)
	}
	return fmt.Sprintf("order submission rejected with status %d: %v", e.StatusCode, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// SubmissionMessage is the text shown to the shopper after a failed submission.
func SubmissionMessage(err error) string {
	var subErr *SubmissionError
	if errors.As(err, &subErr) && subErr.StatusCode != 0 {
		return "Failed to place order. Please try again."
	}
	return "Something went wrong. Please try again later."
}

type SubmitOrderRequest struct {
	ProfileID    string
	Token        string
	SubmissionID string
	Cart         models.Cart
	Address      models.Address
	Payment      models.PaymentMethod
}

func orEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// BuildOrderPayload composes the order body from cart, address and payment method.
func BuildOrderPayload(req SubmitOrderRequest) models.OrderPayload {
	items := make([]models.OrderItem, 0, len(req.Cart))
	for _, item := range req.Cart {
		items = append(items, models.OrderItem{
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Price:       json.Number(item.Price.String()),
		})
	}
	return models.OrderPayload{
		Username:     orEmpty(req.Address.Username, "N/A"),
		Email:        orEmpty(req.Address.Email, "N/A"),
		Number:       orEmpty(req.Address.Number, "N/A"),
		City:         req.Address.City,
		State:        req.Address.State,
		Landmark:     req.Address.Landmark,
		Pincode:      req.Address.Pincode,
		Total:        json.Number(req.Cart.Total().String()),
		Payment:      req.Payment.WireValue(),
		Items:        items,
		SubmissionID: req.SubmissionID,
	}
}

type OrderService struct {
	api       OrderAPI
	publisher OrderEventPublisher
	locks     *ProfileLocks
	now       func() time.Time
}

// NewOrderService needs the same locks as the CartService writing the carts.
func NewOrderService(api OrderAPI, publisher OrderEventPublisher, locks *ProfileLocks) *OrderService {
	return &OrderService{api: api, publisher: publisher, locks: locks, now: time.Now}
}

// Submit posts the order once. On success the ordered lines leave the
// persisted cart; on failure nothing local changes and the error is a
// *SubmissionError.
func (s *OrderService) Submit(ctx context.Context, req SubmitOrderRequest, store LocalCartStore) error {
	payload := BuildOrderPayload(req)
	if err := s.api.SubmitOrder(ctx, req.Token, payload); err != nil {
		return &SubmissionError{StatusCode: storeapi.StatusCode(err), Err: err}
	}

	// The order exists now; a failed clear must not turn it into a failure.
	if err := s.settleCart(ctx, req, store); err != nil {
		log.Printf("Order %s placed but cart clear failed for profile %s: %v", req.SubmissionID, req.ProfileID, err)
	}

	if s.publisher != nil {
		event := models.OrderPlaced{
			SubmissionID: req.SubmissionID,
			ProfileID:    req.ProfileID,
			Total:        req.Cart.Total(),
			Payment:      payload.Payment,
			ItemCount:    len(req.Cart),
			PlacedAt:     s.now(),
		}
		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			log.Printf("Failed to publish order event %s: %v", req.SubmissionID, err)
		}
	}

	log.Printf("Order %s placed for profile %s", req.SubmissionID, req.ProfileID)
	return nil
}

// settleCart removes what was ordered from the persisted cart. Lines added
// while the order was in flight stay in the cart.
func (s *OrderService) settleCart(ctx context.Context, req SubmitOrderRequest, store LocalCartStore) error {
	defer s.locks.Lock(req.ProfileID)()

	remaining := store.Load(ctx).Without(req.Cart)
	if len(remaining) == 0 {
		return store.Clear(ctx)
	}
	return store.Save(ctx, remaining)
}
