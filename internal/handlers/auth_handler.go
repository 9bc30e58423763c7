package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService     AuthServiceInterface
	recoveryService RecoveryServiceInterface
}

func NewAuthHandler(authService AuthServiceInterface, recoveryService RecoveryServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		recoveryService: recoveryService,
	}
}

// RegisterRoutes registers the routes for sessions and password recovery
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", authMiddleware.AuthRequired(), h.GetSession)

		password := auth.Group("/password")
		{
			password.GET("", h.RecoveryState)
			password.DELETE("", h.AbandonRecovery)
			password.POST("/otp", h.SendOTP)
			password.POST("/otp/resend", h.ResendOTP)
			password.POST("/verify", h.VerifyOTP)
			password.POST("/reset", h.ResetPassword)
		}
	}
}

// @Summary Login user
// @Description Authenticate against the storefront backend and store the token for this profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login request"
// @Success 200 {object} services.Session
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), middleware.GetProfileID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration request"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.Register(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Registration successful"})
}

// Logout forgets the token and role; the cart is kept.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetProfileID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetSession(c))
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" binding:"required"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) RecoveryState(c *gin.Context) {
	c.JSON(http.StatusOK, h.recoveryService.State(middleware.GetProfileID(c)))
}

func (h *AuthHandler) AbandonRecovery(c *gin.Context) {
	h.recoveryService.Abandon(middleware.GetProfileID(c))
	c.Status(http.StatusNoContent)
}

// @Summary Send password reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Registered email"
// @Success 200 {object} services.RecoveryState
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/auth/password/otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.recoveryService.SendOTP(c.Request.Context(), middleware.GetProfileID(c), req.Email)
	if err != nil {
		respondErrorWith(c, err, state)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	state, err := h.recoveryService.ResendOTP(c.Request.Context(), middleware.GetProfileID(c))
	if err != nil {
		respondErrorWith(c, err, state)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.recoveryService.VerifyOTP(c.Request.Context(), middleware.GetProfileID(c), req.OTP)
	if err != nil {
		respondErrorWith(c, err, state)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.recoveryService.ResetPassword(c.Request.Context(), middleware.GetProfileID(c), req.Password, req.ConfirmPassword)
	if err != nil {
		respondErrorWith(c, err, state)
		return
	}
	c.JSON(http.StatusOK, state)
}
