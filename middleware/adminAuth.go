// File: kts/middleware/adminAuth.go
package middleware

import (
	"net/http"
	"strings"

	adminsvc "kts/services/admin"
	"kts/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "adminActor"

// JWTAuthAdminMiddleware validates the bearer token, verifies it matches the
// hash stored on the admin record, and puts the Actor (admin + permissions)
// into the request context for the permission gate.
func JWTAuthAdminMiddleware(adminSvc adminsvc.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		adminID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		actor, err := adminSvc.GetActor(adminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
			return
		}
		if actor.Admin.TokenHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom retrieves the authenticated Actor set by JWTAuthAdminMiddleware.
func ActorFrom(c *gin.Context) *adminsvc.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*adminsvc.Actor)
	return actor
}

// RequirePermission enforces the permission gate server-side before the
// handler runs. Super-admins pass every check.
func RequirePermission(flag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if !adminsvc.CanPerform(actor, flag) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.Next()
	}
}
