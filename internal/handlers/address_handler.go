package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/models"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addressService AddressServiceInterface
	profileService ProfileServiceInterface
}

func NewAddressHandler(addressService AddressServiceInterface, profileService ProfileServiceInterface) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		profileService: profileService,
	}
}

// RegisterRoutes registers the routes for addresses and the profile screen
func (h *AddressHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	address := router.Group("/address", authMiddleware.AuthRequired())
	{
		address.GET("", h.GetAddress)
		address.GET("/prefill", h.Prefill)
		address.POST("", h.AddAddress)
		address.PUT("", h.UpdateAddress)
	}

	router.GET("/profile", authMiddleware.AuthRequired(), h.GetProfile)
}

// GetAddress returns the resolution status next to the first address, so a
// failed lookup can be told apart from "none on file".
func (h *AddressHandler) GetAddress(c *gin.Context) {
	res := h.addressService.Resolve(c.Request.Context(), middleware.GetToken(c))
	if res.Err != nil {
		_ = c.Error(res.Err)
	}
	c.JSON(http.StatusOK, res)
}

func (h *AddressHandler) Prefill(c *gin.Context) {
	address, err := h.addressService.Prefill(c.Request.Context(), middleware.GetToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// AddAddress godoc
// @Summary Add a shipping address
// @Tags address
// @Accept json
// @Produce json
// @Param address body models.Address true "Address"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /address [post]
func (h *AddressHandler) AddAddress(c *gin.Context) {
	var req models.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.addressService.Add(c.Request.Context(), middleware.GetToken(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "Address added successfully"})
}

func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	var req models.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.addressService.Update(c.Request.Context(), middleware.GetToken(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Address updated successfully"})
}

func (h *AddressHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), middleware.GetToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
