package services

import (
	"context"
	"sync"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"
)

type checkoutEntry struct {
	mu      sync.Mutex
	flow    *CheckoutFlow
	touched time.Time

	// finished is set when the flow reaches done. Reads of a finished flow
	// keep touching it, so the sweep ages it from here instead.
	finished time.Time
}

// CheckoutService keeps one checkout flow per profile in memory.
type CheckoutService struct {
	storage   repositories.LocalStorage
	addresses *AddressService
	orders    *OrderService

	mu    sync.Mutex
	flows map[string]*checkoutEntry
	now   func() time.Time
}

func NewCheckoutService(storage repositories.LocalStorage, addresses *AddressService, orders *OrderService) *CheckoutService {
	return &CheckoutService{
		storage:   storage,
		addresses: addresses,
		orders:    orders,
		flows:     make(map[string]*checkoutEntry),
		now:       time.Now,
	}
}

func (s *CheckoutService) entry(profileID string) *checkoutEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.flows[profileID]
	if !ok {
		e = &checkoutEntry{flow: NewCheckoutFlow()}
		s.flows[profileID] = e
	}
	e.touched = s.now()
	return e
}

func (s *CheckoutService) cart(ctx context.Context, profileID string) models.Cart {
	return NewLocalCartStore(s.storage, profileID).Load(ctx)
}

// State returns the current flow, starting a fresh one at the cart step if needed.
func (s *CheckoutService) State(ctx context.Context, profileID string) *CheckoutView {
	e := s.entry(profileID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flow.View()
}

// Proceed moves from cart review to the address step and looks the address up.
func (s *CheckoutService) Proceed(ctx context.Context, profileID, token string) (*CheckoutView, error) {
	e := s.entry(profileID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.flow.Proceed(s.cart(ctx, profileID)); err != nil {
		return e.flow.View(), err
	}
	if err := e.flow.ApplyAddress(s.addresses.Resolve(ctx, token)); err != nil {
		return e.flow.View(), err
	}
	return e.flow.View(), nil
}

// RefreshAddress repeats the lookup, e.g. after the shopper added an address.
func (s *CheckoutService) RefreshAddress(ctx context.Context, profileID, token string) (*CheckoutView, error) {
	e := s.entry(profileID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.flow.Step() != StepAddress {
		if e.flow.Step() == StepDone {
			return e.flow.View(), ErrFlowFinished
		}
		return e.flow.View(), ErrWrongStep
	}
	if err := e.flow.ApplyAddress(s.addresses.Resolve(ctx, token)); err != nil {
		return e.flow.View(), err
	}
	return e.flow.View(), nil
}

func (s *CheckoutService) ContinueToPayment(ctx context.Context, profileID string) (*CheckoutView, error) {
	e := s.entry(profileID)
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.flow.ContinueToPayment()
	return e.flow.View(), err
}

func (s *CheckoutService) SelectPayment(ctx context.Context, profileID string, method models.PaymentMethod) (*CheckoutView, error) {
	e := s.entry(profileID)
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.flow.SelectPayment(method)
	return e.flow.View(), err
}

// Submit places the order. The flow lock is released during the backend call
// so the state stays readable; a second submit meanwhile gets ErrSubmissionInFlight.
func (s *CheckoutService) Submit(ctx context.Context, profileID, token string) (*CheckoutView, error) {
	e := s.entry(profileID)
	store := NewLocalCartStore(s.storage, profileID)

	e.mu.Lock()
	cart := store.Load(ctx)
	submissionID, err := e.flow.BeginSubmit(cart)
	if err != nil {
		view := e.flow.View()
		e.mu.Unlock()
		return view, err
	}
	req := SubmitOrderRequest{
		ProfileID:    profileID,
		Token:        token,
		SubmissionID: submissionID,
		Cart:         cart,
		Address:      *e.flow.Address(),
		Payment:      e.flow.Payment(),
	}
	e.mu.Unlock()

	submitErr := s.orders.Submit(ctx, req, store)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.flow.CompleteSubmit(submitErr)
	if submitErr == nil {
		e.finished = s.now()
	}
	return e.flow.View(), submitErr
}

// Reset discards the flow (the shopper went home); the next visit starts at cart.
func (s *CheckoutService) Reset(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, profileID)
}

// SweepIdle drops flows untouched since cutoff and finished flows done before
// cutoff. A flow that is busy or has a submission in flight is kept.
func (s *CheckoutService) SweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for profileID, e := range s.flows {
		if !e.mu.TryLock() {
			continue
		}
		stale := e.touched.Before(cutoff) || (!e.finished.IsZero() && e.finished.Before(cutoff))
		if stale && !e.flow.submitting {
			delete(s.flows, profileID)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}
