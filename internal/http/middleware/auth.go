package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/auth"
)

const (
	CtxStaffID     = "staff_id"
	CtxTenantID    = "tenant_id"
	CtxPermissions = "permissions"
	CtxBearerToken = "bearer_token"
)

// BearerAuth validates the Authorization header and stashes the staff
// identity, tenant scope, and raw token (the dialer bridge embeds it in
// handoff URLs) on the request context.
func BearerAuth(mgr *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Invalid token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := mgr.Parse(raw)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(CtxStaffID, claims.StaffID)
		c.Set(CtxTenantID, claims.TenantID)
		c.Set(CtxPermissions, claims.Permissions)
		c.Set(CtxBearerToken, raw)
		c.Next()
	}
}

// RequirePermission gates a route group on a tenant-scoped permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms, exists := c.Get(CtxPermissions)
		if !exists {
			abortForbidden(c)
			return
		}
		list, ok := perms.([]string)
		if !ok || !hasPermission(list, permission) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

func hasPermission(permissions []string, required string) bool {
	for _, p := range permissions {
		if p == required {
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"code": "UNAUTHORIZED", "message": message},
	})
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error": gin.H{"code": "FORBIDDEN", "message": "Insufficient permissions"},
	})
}
