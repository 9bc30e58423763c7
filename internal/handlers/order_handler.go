package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/models"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// OrderHandler drives the checkout flow up to order placement.
type OrderHandler struct {
	checkoutService CheckoutServiceInterface
}

func NewOrderHandler(checkoutService CheckoutServiceInterface) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers the routes for checkout
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	checkout := router.Group("/checkout", authMiddleware.AuthRequired())
	{
		checkout.GET("", h.GetCheckout)
		checkout.DELETE("", h.ResetCheckout)
		checkout.POST("/proceed", h.Proceed)
		checkout.POST("/address/refresh", h.RefreshAddress)
		checkout.POST("/payment-step", h.ContinueToPayment)
		checkout.PUT("/payment", h.SelectPayment)
		checkout.POST("/submit", h.Submit)
	}
}

// recordAddressError hands the lookup made by this request to the backend
// error middleware; the response itself still reports fetch_failed.
func recordAddressError(c *gin.Context, view *services.CheckoutView) {
	if view != nil && view.AddressErr != nil {
		_ = c.Error(view.AddressErr)
	}
}

type SelectPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

func (h *OrderHandler) GetCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkoutService.State(c.Request.Context(), middleware.GetProfileID(c)))
}

// ResetCheckout abandons the flow; the next visit starts at the cart step.
func (h *OrderHandler) ResetCheckout(c *gin.Context) {
	h.checkoutService.Reset(middleware.GetProfileID(c))
	c.Status(http.StatusNoContent)
}

// Proceed godoc
// @Summary Leave the cart review
// @Description Moves to the address step and looks up the shipping address. Blocked for an empty cart.
// @Tags checkout
// @Produce json
// @Success 200 {object} services.CheckoutView
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout/proceed [post]
func (h *OrderHandler) Proceed(c *gin.Context) {
	view, err := h.checkoutService.Proceed(c.Request.Context(), middleware.GetProfileID(c), middleware.GetToken(c))
	if err != nil {
		respondErrorWith(c, err, view)
		return
	}
	recordAddressError(c, view)
	c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) RefreshAddress(c *gin.Context) {
	view, err := h.checkoutService.RefreshAddress(c.Request.Context(), middleware.GetProfileID(c), middleware.GetToken(c))
	if err != nil {
		respondErrorWith(c, err, view)
		return
	}
	recordAddressError(c, view)
	c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) ContinueToPayment(c *gin.Context) {
	view, err := h.checkoutService.ContinueToPayment(c.Request.Context(), middleware.GetProfileID(c))
	if err != nil {
		respondErrorWith(c, err, view)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) SelectPayment(c *gin.Context) {
	var req SelectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.checkoutService.SelectPayment(c.Request.Context(), middleware.GetProfileID(c), method)
	if err != nil {
		respondErrorWith(c, err, view)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit godoc
// @Summary Place the order
// @Description Posts the order once. On failure the cart is kept, the flow stays at payment and may be retried manually.
// @Tags checkout
// @Produce json
// @Success 200 {object} services.CheckoutView
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /checkout/submit [post]
func (h *OrderHandler) Submit(c *gin.Context) {
	view, err := h.checkoutService.Submit(c.Request.Context(), middleware.GetProfileID(c), middleware.GetToken(c))
	if err != nil {
		respondErrorWith(c, err, view)
		return
	}
	c.JSON(http.StatusOK, view)
}
