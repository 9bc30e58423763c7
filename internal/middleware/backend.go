package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// BackendErrorHandler reacts to errors returned by the storefront backend.
type BackendErrorHandler interface {
	HandleBackendError(ctx context.Context, profileID string, err error)
}

// BackendErrorMiddleware passes every error a handler recorded with c.Error
// to h once the handler returned, so a rejected token is forgotten.
func BackendErrorMiddleware(h BackendErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		profileID := GetProfileID(c)
		if profileID == "" {
			return
		}
		for _, e := range c.Errors {
			h.HandleBackendError(c.Request.Context(), profileID, e.Err)
		}
	}
}
