package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ProfileCookieName = "storefront_profile"
	ProfileHeader     = "X-Profile-ID"

	profileCookieMaxAge = 365 * 24 * 60 * 60
)

// ProfileMiddleware identifies the browser profile whose local state a request
// works on. Unknown or invalid ids get a fresh one, returned as a cookie and
// in the X-Profile-ID response header.
func ProfileMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := ""
		if cookie, err := c.Cookie(ProfileCookieName); err == nil && isProfileID(cookie) {
			profileID = cookie
		} else if header := c.GetHeader(ProfileHeader); isProfileID(header) {
			profileID = header
		}

		if profileID == "" {
			profileID = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ProfileCookieName, profileID, profileCookieMaxAge, "/", "", secureCookie, true)
		c.Header(ProfileHeader, profileID)

		c.Set("profile_id", profileID)
		c.Next()
	}
}

func isProfileID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

// GetProfileID helper function to extract the profile ID from context
func GetProfileID(c *gin.Context) string {
	if profileID, exists := c.Get("profile_id"); exists {
		return profileID.(string)
	}
	return ""
}
