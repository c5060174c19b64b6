package middleware

import (
	"net/http"
	"strings"

	"github.com/damirpristav/dogs-app-backend/internal/models"
	"github.com/damirpristav/dogs-app-backend/internal/service"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// Protect verifies the session token and puts the resolved user into the
// request context. The token comes from the Authorization header or from
// the "token" cookie set at login; both carry a "Bearer " prefix.
func Protect(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenStr = strings.TrimPrefix(cookie, "Bearer ")
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, "Not authorized to access this page!")
			c.Abort()
			return
		}

		user, err := auth.VerifySession(tokenStr)
		if err != nil {
			util.Error(c, service.HTTPStatus(err), service.Message(err))
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RestrictTo allows only the given roles past. Must run after Protect.
func RestrictTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			util.Error(c, http.StatusUnauthorized, "Not authorized to access this page!")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		util.Error(c, http.StatusForbidden, "User role "+user.Role+" is not authorized to access this route")
		c.Abort()
	}
}

// CurrentUser returns the identity resolved by Protect, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
