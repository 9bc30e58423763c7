package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"golang-storefront/internal/models"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionReader resolves the stored session of a profile.
type SessionReader interface {
	Current(ctx context.Context, profileID string) (*services.Session, error)
}

type AuthMiddleware struct {
	sessions SessionReader
}

func NewAuthMiddleware(sessions SessionReader) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// AuthRequired middleware requires a stored, unexpired token for the profile
func (a *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := GetProfileID(c)
		if profileID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile required"})
			c.Abort()
			return
		}

		session, err := a.sessions.Current(c.Request.Context(), profileID)
		if err != nil {
			if !errors.Is(err, services.ErrNotLoggedIn) {
				log.Printf("Session lookup failed for profile %s: %v", profileID, err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}

		// Set session information in context
		c.Set("session", session)
		c.Set("token", session.Token)
		c.Set("role", models.NormalizeRole(session.Role))
		c.Next()
	}
}

// RoleRequired middleware checks if user has required role
func (a *AuthMiddleware) RoleRequired(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role information missing"})
			c.Abort()
			return
		}

		if session.HasRole(requiredRoles...) {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// AdminRequired middleware allows admins and super admins
func (a *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return a.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin)
}

// SuperAdminRequired middleware ensures user is a super admin
func (a *AuthMiddleware) SuperAdminRequired() gin.HandlerFunc {
	return a.RoleRequired(models.RoleSuperAdmin)
}

// GetSession helper function to extract the session from context
func GetSession(c *gin.Context) *services.Session {
	if session, exists := c.Get("session"); exists {
		return session.(*services.Session)
	}
	return nil
}

// GetToken helper function to extract the bearer token from context
func GetToken(c *gin.Context) string {
	if token, exists := c.Get("token"); exists {
		return token.(string)
	}
	return ""
}

// GetUserRole helper function to extract user role from context
func GetUserRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		return role.(string)
	}
	return ""
}
