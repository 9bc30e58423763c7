package handlers

import (
	"errors"
	"log"
	"net/http"

	"golang-storefront/internal/repositories"
	"golang-storefront/internal/services"
	"golang-storefront/pkg/storeapi"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type errorMapping struct {
	status int
	title  string
}

var errorStatuses = map[error]errorMapping{
	services.ErrNotLoggedIn:        {http.StatusUnauthorized, "Unauthorized"},
	services.ErrInvalidCredentials: {http.StatusUnauthorized, "Login failed"},
	services.ErrMissingFields:      {http.StatusBadRequest, "Invalid request"},
	services.ErrRegistrationFailed: {http.StatusBadRequest, "Registration failed"},
	services.ErrForbidden:          {http.StatusForbidden, "Forbidden"},

	services.ErrEmptyCart:          {http.StatusUnprocessableEntity, "Checkout blocked"},
	services.ErrNoAddress:          {http.StatusUnprocessableEntity, "Checkout blocked"},
	services.ErrNoPaymentMethod:    {http.StatusUnprocessableEntity, "Checkout blocked"},
	services.ErrNotInCart:          {http.StatusNotFound, "Not found"},
	services.ErrWrongStep:          {http.StatusConflict, "Checkout step conflict"},
	services.ErrFlowFinished:       {http.StatusConflict, "Checkout step conflict"},
	services.ErrSubmissionInFlight: {http.StatusConflict, "Checkout step conflict"},

	services.ErrEmailRequired:      {http.StatusBadRequest, "Invalid request"},
	services.ErrEmailNotRegistered: {http.StatusNotFound, "Not found"},
	services.ErrInvalidOTP:         {http.StatusBadRequest, "Verification failed"},
	services.ErrResendTooSoon:      {http.StatusTooManyRequests, "Too many requests"},
	services.ErrPasswordMismatch:   {http.StatusBadRequest, "Invalid request"},
	services.ErrResetFailed:        {http.StatusBadGateway, "Password reset failed"},
	services.ErrRecoveryStep:       {http.StatusConflict, "Password recovery step conflict"},

	services.ErrSearchQueryRequired: {http.StatusBadRequest, "Invalid request"},
	services.ErrUnknownRole:         {http.StatusBadRequest, "Invalid request"},
	services.ErrUserNotFound:        {http.StatusNotFound, "Not found"},

	repositories.ErrInvalidProfileID: {http.StatusBadRequest, "Invalid profile"},
}

func errorStatus(err error) errorMapping {
	for target, mapping := range errorStatuses {
		if errors.Is(err, target) {
			return mapping
		}
	}

	var subErr *services.SubmissionError
	if errors.As(err, &subErr) {
		return errorMapping{http.StatusBadGateway, "Order submission failed"}
	}

	if errors.Is(err, storeapi.ErrUnavailable) {
		return errorMapping{http.StatusBadGateway, "Storefront backend unavailable"}
	}
	var statusErr *storeapi.StatusError
	if !errors.As(err, &statusErr) {
		return errorMapping{http.StatusInternalServerError, "Internal server error"}
	}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized:
		return errorMapping{http.StatusUnauthorized, "Session expired"}
	case http.StatusForbidden:
		return errorMapping{http.StatusForbidden, "Forbidden"}
	case http.StatusNotFound:
		return errorMapping{http.StatusNotFound, "Not found"}
	}
	return errorMapping{http.StatusBadGateway, "Storefront backend error"}
}

// respondError records err for the backend error middleware and writes the
// mapped status with an ErrorResponse body.
func respondError(c *gin.Context, err error) {
	respondErrorWith(c, err, nil)
}

// respondErrorWith adds state (e.g. the checkout flow) next to the error.
func respondErrorWith(c *gin.Context, err error, state interface{}) {
	_ = c.Error(err)
	mapping := errorStatus(err)
	if mapping.status >= http.StatusInternalServerError {
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}

	message := err.Error()
	var subErr *services.SubmissionError
	if errors.As(err, &subErr) {
		message = services.SubmissionMessage(err)
	}

	if state == nil {
		c.JSON(mapping.status, ErrorResponse{Error: mapping.title, Message: message})
		return
	}
	c.JSON(mapping.status, gin.H{"error": mapping.title, "message": message, "state": state})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request body",
		Message: err.Error(),
	})
}
