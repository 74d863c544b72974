package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// CasbinMW enforces route-level role policies. Policies use the
// parameterized route path and method with "role_<name>" subjects;
// a request passes when any of the account's roles is allowed.
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates a new CasbinMW instance
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the Casbin authorization middleware
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		rolesVal, ok := c.Get("roles")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "roles not found in context"})
			c.Abort()
			return
		}
		roles, _ := rolesVal.([]string)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		for _, role := range roles {
			allowed, err := mw.enforcer.Enforce("role_"+role, path, method)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "authorization check failed"})
				c.Abort()
				return
			}
			if allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "access denied"})
		c.Abort()
	})
}
