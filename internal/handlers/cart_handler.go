package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/models"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService CartServiceInterface
}

func NewCartHandler(cartService CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the routes for cart management
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	// All cart routes require authentication
	cart := router.Group("/cart", authMiddleware.AuthRequired())
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddToCart)
		cart.PUT("/items/:id", h.UpdateCartItem)
		cart.DELETE("/items/:id", h.RemoveFromCart)
	}
}

type AddToCartRequest struct {
	ID models.ProductID `json:"id" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart godoc
// @Summary Get the profile's cart
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartView
// @Failure 401 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.GetCart(c.Request.Context(), middleware.GetProfileID(c)))
}

// AddToCart godoc
// @Summary Add one unit of a product
// @Description Adds a new line with quantity 1, or increments the existing line
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddToCartRequest true "Product id"
// @Success 200 {object} services.CartView
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := h.cartService.AddProduct(c.Request.Context(), middleware.GetProfileID(c), middleware.GetToken(c), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// UpdateCartItem sets a line's quantity; values below 1 leave the cart unchanged.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := h.cartService.SetQuantity(c.Request.Context(), middleware.GetProfileID(c), models.ProductID(c.Param("id")), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	cart, err := h.cartService.Remove(c.Request.Context(), middleware.GetProfileID(c), models.ProductID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}
