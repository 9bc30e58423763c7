package services

import (
	"golang-storefront/internal/models"

	"github.com/google/uuid"
)

type CheckoutStep string

const (
	StepCart    CheckoutStep = "cart"
	StepAddress CheckoutStep = "address"
	StepPayment CheckoutStep = "payment"
	StepDone    CheckoutStep = "done"
)

// CheckoutFlow is one pass through cart -> address -> payment -> done.
// It holds no I/O; CheckoutService drives it and is responsible for locking.
type CheckoutFlow struct {
	step         CheckoutStep
	address      AddressResolution
	payment      models.PaymentMethod
	submissionID string
	submitting   bool
	message      string
	newID        func() string
}

func NewCheckoutFlow() *CheckoutFlow {
	return &CheckoutFlow{step: StepCart, newID: uuid.NewString}
}

func (f *CheckoutFlow) Step() CheckoutStep {
	return f.step
}

// Proceed leaves the cart review. An empty cart keeps the flow at cart.
func (f *CheckoutFlow) Proceed(cart models.Cart) error {
	if f.step == StepDone {
		return ErrFlowFinished
	}
	if f.step != StepCart {
		return ErrWrongStep
	}
	if len(cart) == 0 {
		return ErrEmptyCart
	}
	f.step = StepAddress
	f.message = ""
	return nil
}

// ApplyAddress records the result of an address lookup made at the address step.
func (f *CheckoutFlow) ApplyAddress(res AddressResolution) error {
	if f.step == StepDone {
		return ErrFlowFinished
	}
	if f.step != StepAddress {
		return ErrWrongStep
	}
	f.address = res
	return nil
}

// ContinueToPayment requires a resolved address.
func (f *CheckoutFlow) ContinueToPayment() error {
	if f.step == StepDone {
		return ErrFlowFinished
	}
	if f.step != StepAddress {
		return ErrWrongStep
	}
	if !f.address.Resolved() {
		return ErrNoAddress
	}
	f.step = StepPayment
	return nil
}

// SelectPayment replaces any previous selection.
func (f *CheckoutFlow) SelectPayment(method models.PaymentMethod) error {
	if f.step == StepDone {
		return ErrFlowFinished
	}
	if f.step != StepPayment {
		return ErrWrongStep
	}
	if method == models.PaymentNone {
		return ErrNoPaymentMethod
	}
	f.payment = method
	return nil
}

// BeginSubmit checks the guards and marks a submission in flight. The
// submission id is created on the first attempt and reused by manual retries.
func (f *CheckoutFlow) BeginSubmit(cart models.Cart) (submissionID string, err error) {
	switch {
	case f.step == StepDone:
		return "", ErrFlowFinished
	case f.step != StepPayment:
		return "", ErrWrongStep
	case f.submitting:
		return "", ErrSubmissionInFlight
	case f.payment == models.PaymentNone:
		return "", ErrNoPaymentMethod
	case !f.address.Resolved():
		return "", ErrNoAddress
	case len(cart) == 0:
		return "", ErrEmptyCart
	}
	if f.submissionID == "" {
		f.submissionID = f.newID()
	}
	f.submitting = true
	f.message = ""
	return f.submissionID, nil
}

// CompleteSubmit records the outcome. Success finishes the flow; failure keeps
// it at payment with a message for the shopper.
func (f *CheckoutFlow) CompleteSubmit(err error) {
	f.submitting = false
	if err == nil {
		f.step = StepDone
		f.submissionID = ""
		f.message = ""
		return
	}
	f.message = SubmissionMessage(err)
}

func (f *CheckoutFlow) Address() *models.Address {
	return f.address.Address
}

func (f *CheckoutFlow) Payment() models.PaymentMethod {
	return f.payment
}

// CheckoutView is the flow as returned to the storefront.
type CheckoutView struct {
	Step           CheckoutStep         `json:"step"`
	AddressStatus  AddressStatus        `json:"address_status,omitempty"`
	Address        *models.Address      `json:"address,omitempty"`
	Payment        models.PaymentMethod `json:"payment"`
	PaymentOptions []string             `json:"payment_options,omitempty"`
	Submitting     bool                 `json:"submitting"`
	Message        string               `json:"message,omitempty"`
	// AddressErr is why the last lookup failed, for callers that react to
	// backend errors such as a rejected token.
	AddressErr     error                `json:"-"`
}

func (f *CheckoutFlow) View() *CheckoutView {
	view := &CheckoutView{
		Step:          f.step,
		AddressStatus: f.address.Status,
		Address:       f.address.Address,
		Payment:       f.payment,
		Submitting:    f.submitting,
		Message:       f.message,
		AddressErr:    f.address.Err,
	}
	if f.step == StepPayment {
		for _, m := range models.PaymentMethods() {
			view.PaymentOptions = append(view.PaymentOptions, m.Label())
		}
	}
	return view
}
