package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/service"
)

const authUserKey = "authUser"

// RequireAuth validates the bearer token and injects the resolved identity
// into the request context for handlers to pick up via CurrentUser.
func RequireAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		user, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(authUserKey, *user)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Runs after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "This action is not available for your role"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (service.AuthUser, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return service.AuthUser{}, false
	}
	user, ok := v.(service.AuthUser)
	return user, ok
}
