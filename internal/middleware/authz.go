package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"todolist/internal/authz"
	"todolist/internal/i18n"
)

// AdminGuard lets Root users through. It expects JWTGuard earlier in the
// chain.
func AdminGuard(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr := catalog.FromContext(c.Request.Context())
		user, ok := CurrentUser(c)
		if !ok {
			unauthorized(c, tr.T("http-error.401.default"))
			return
		}
		if !authz.IsAdmin(user.Role) {
			unauthorized(c, fmt.Sprintf("%s (%s)", tr.T("http-error.401.no_access"), user.Role))
			return
		}
		c.Next()
	}
}

// Chain keeps guards in declaration order.
func Chain(guards ...gin.HandlerFunc) []gin.HandlerFunc {
	return guards
}
