package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/everestpress/printshop-api/internal/httperr"
)

// RequireRole gates a route to callers whose role is in the allowed set.
// Must run after Auth.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
				Code: "missing_authorization_header", Message: "Authentication required.",
			})
			return
		}

		if _, ok := allowed[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, httperr.HTTPError{
				Code: "forbidden", Message: "You are not allowed to perform this action.",
			})
			return
		}

		c.Next()
	}
}
