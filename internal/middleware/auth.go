package middleware

import (
	"strings"

	"recipebook_backend/internal/logger"
	"recipebook_backend/internal/services"
	"recipebook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys set for downstream handlers
	ContextUserIDKey  = "userID"
	ContextIsStaffKey = "isStaff"
)

// TokenAuthMiddleware resolves the bearer token to a user. The token is
// opaque; every request hits the token table.
func TokenAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header missing or invalid")
			return
		}

		key := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := authService.Authenticate(key)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextIsStaffKey, user.IsStaff)

		// Make the user id visible to request-scoped logs
		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// StaffMiddleware gates the admin console. Runs after TokenAuthMiddleware.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isStaffVal, exists := c.Get(ContextIsStaffKey)
		if !exists {
			abortForbidden(c)
			return
		}

		isStaff, ok := isStaffVal.(bool)
		if !ok || !isStaff {
			abortForbidden(c)
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

func abortUnauthorized(c *gin.Context, message string) {
	appErr := apperrors.NewUnauthorizedError(message)
	c.AbortWithStatusJSON(appErr.HTTPCode, apperrors.ErrorResponse{Error: appErr})
}

func abortForbidden(c *gin.Context) {
	appErr := apperrors.NewForbiddenError("Staff access required")
	c.AbortWithStatusJSON(appErr.HTTPCode, apperrors.ErrorResponse{Error: appErr})
}
