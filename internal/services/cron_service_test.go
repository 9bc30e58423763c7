package services

import (
	"context"
	"testing"
	"time"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService_SweepsIdleFlows(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	checkout := NewCheckoutService(repositories.NewMemoryStorage(), NewAddressService(&fakeBackend{}), NewOrderService(&fakeBackend{}, nil, NewProfileLocks()))
	checkout.now = now
	otp := NewOTPService(&fakeRecoveryAPI{}, 30, time.Hour)
	otp.now = now
	defer otp.Close()

	checkout.State(ctx, "old")
	_, err := otp.SendOTP(ctx, "old", "asha@example.com")
	require.NoError(t, err)
	countdown := otp.flow("old").countdown

	clock = clock.Add(45 * time.Minute)
	checkout.State(ctx, "fresh")
	otp.State("fresh")

	cron := NewCronService(time.Minute, 30*time.Minute, checkout, otp)
	cron.now = now

	assert.Equal(t, 2, cron.SweepOnce())
	assert.Len(t, checkout.flows, 1)
	assert.Contains(t, checkout.flows, "fresh")
	assert.Len(t, otp.flows, 1)

	select {
	case <-countdown.Done():
	case <-time.After(time.Second):
		t.Fatal("countdown of evicted flow still running")
	}
}

func TestCheckoutService_SweepKeepsInFlightSubmission(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCheckoutService(repositories.NewMemoryStorage(), NewAddressService(&fakeBackend{}), NewOrderService(&fakeBackend{}, nil, NewProfileLocks()))
	svc.now = func() time.Time { return clock }

	e := svc.entry("p1")
	e.flow.step = StepPayment
	e.flow.payment = models.PaymentCard
	e.flow.submitting = true

	assert.Equal(t, 0, svc.SweepIdle(clock.Add(time.Hour)))
	assert.Contains(t, svc.flows, "p1")

	e.flow.submitting = false
	assert.Equal(t, 1, svc.SweepIdle(clock.Add(time.Hour)))
	assert.Equal(t, StepCart, svc.State(ctx, "p1").Step)
}

func TestCheckoutService_SweepFreesFinishedFlowStillBeingRead(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	storage := repositories.NewMemoryStorage()
	locks := NewProfileLocks()
	backend := &fakeBackend{addresses: []models.Address{{City: "Pune", Pincode: "411001"}}}
	cart := NewCartService(storage, locks, &fakeCatalog{products: testProducts()})
	svc := NewCheckoutService(storage, NewAddressService(backend), NewOrderService(backend, nil, locks))
	svc.now = func() time.Time { return clock }

	_, err := cart.AddProduct(ctx, "p1", "tok", "1")
	require.NoError(t, err)
	_, err = svc.Proceed(ctx, "p1", "tok")
	require.NoError(t, err)
	_, err = svc.ContinueToPayment(ctx, "p1")
	require.NoError(t, err)
	_, err = svc.SelectPayment(ctx, "p1", models.PaymentCard)
	require.NoError(t, err)
	view, err := svc.Submit(ctx, "p1", "tok")
	require.NoError(t, err)
	require.Equal(t, StepDone, view.Step)

	// The shopper never resets but keeps polling the finished flow.
	for i := 0; i < 3; i++ {
		clock = clock.Add(20 * time.Minute)
		assert.Equal(t, StepDone, svc.State(ctx, "p1").Step)
	}

	assert.Equal(t, 1, svc.SweepIdle(clock.Add(-30*time.Minute)))
	assert.Equal(t, StepCart, svc.State(ctx, "p1").Step)
}

func TestCronService_StartRejectsNonPositiveInterval(t *testing.T) {
	cron := NewCronService(0, time.Minute)
	assert.Error(t, cron.Start())

	cron = NewCronService(-time.Second, time.Minute)
	assert.Error(t, cron.Start())
}
