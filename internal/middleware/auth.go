package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/jwt"
	"github.com/inkpress/core/internal/pkg/response"
	"gorm.io/gorm"
)

const ContextKeyUser = "current_user"

// Auth returns a middleware that enforces bearer-token authentication and
// loads the token's user onto the request context.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "You are not logged in, Please Login to access this route")
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		var user models.UserModel
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			response.NotFound(c, "User belonging to this token does not exist")
			return
		}

		c.Set(ContextKeyUser, &user)
		c.Next()
	}
}

// RequireRoles is the single authorization predicate: the authenticated user
// must hold one of the given roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "You are not logged in, Please Login to access this route")
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		response.Unauthorized(c, "User role "+string(user.Role)+" is not authorized to access this route")
	}
}

// CurrentUser extracts the authenticated user from context, or nil.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(ContextKeyUser)
	user, _ := v.(*models.UserModel)
	return user
}

func extractToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return auth
}
