package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every handler.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware)
}

// RouterOptions carries everything SetupRouter mounts.
type RouterOptions struct {
	AllowOrigins   []string
	SecureCookie   bool
	AuthMiddleware *middleware.AuthMiddleware
	BackendErrors  middleware.BackendErrorHandler
	Handlers       []RouteRegistrar
}

// SetupRouter builds the gin engine with the global middleware chain, the
// health check and every handler under /api/v1.
func SetupRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(opts.AllowOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "golang-storefront",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.ProfileMiddleware(opts.SecureCookie))
	if opts.BackendErrors != nil {
		api.Use(middleware.BackendErrorMiddleware(opts.BackendErrors))
	}

	for _, h := range opts.Handlers {
		h.RegisterRoutes(api, opts.AuthMiddleware)
	}

	return router
}
