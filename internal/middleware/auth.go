package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/identity"
	"github.com/everestpress/printshop-api/internal/models"
)

const ContextUser = "currentUser"

func extractBearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Auth resolves the caller from a bearer token. The user is re-read from the
// credential store on every request: a deleted or demoted account loses
// access immediately, even though the token itself stays cryptographically
// valid until expiry.
func Auth(tokens *identity.TokenIssuer, users identity.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
				Code: "missing_authorization_header", Message: "Authentication required.",
			})
			return
		}

		userID, err := tokens.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
				Code: "invalid_token", Message: "Invalid or expired token.",
			})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
				Code: "invalid_token", Message: "Invalid or expired token.",
			})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a bearer token is supplied, and lets
// the request through as a guest when it is not. A token that is present but
// invalid is still rejected; silence is for absence, not for garbage.
func OptionalAuth(tokens *identity.TokenIssuer, users identity.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearer(c)
		if !ok {
			c.Next()
			return
		}

		userID, err := tokens.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
				Code: "invalid_token", Message: "Invalid or expired token.",
			})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
				Code: "invalid_token", Message: "Invalid or expired token.",
			})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the caller resolved by Auth or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
