package services

import "errors"

// Guard errors. Handlers map them to user-visible messages and status codes.
var (
	ErrNotLoggedIn        = errors.New("login required")
	ErrInvalidCredentials = errors.New("enter valid credentials")
	ErrMissingFields      = errors.New("please fill all fields")
	ErrRegistrationFailed = errors.New("registration unsuccessful")
	ErrForbidden          = errors.New("insufficient permissions")

	ErrEmptyCart          = errors.New("your cart is empty")
	ErrNotInCart          = errors.New("product is not in the cart")
	ErrNoAddress          = errors.New("no address found")
	ErrNoPaymentMethod    = errors.New("select a payment method")
	ErrWrongStep          = errors.New("action not available at this checkout step")
	ErrFlowFinished       = errors.New("order already placed")
	ErrSubmissionInFlight = errors.New("order processing, please wait")

	ErrEmailRequired      = errors.New("please enter your email")
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrResendTooSoon      = errors.New("OTP resend is not available yet")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetFailed        = errors.New("failed to reset password")
	ErrRecoveryStep       = errors.New("action not available at this password recovery step")

	ErrSearchQueryRequired = errors.New("search query is required")
	ErrUnknownRole         = errors.New("unknown role")
	ErrUserNotFound        = errors.New("user not found")
)
