package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/domilony/leadgen/internal/domain/admin"
)

// CurrentAdmin returns the admin resolved by Required. The second return is
// false on routes that never passed through the middleware.
func CurrentAdmin(c *gin.Context) (admin.AdminUser, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return admin.AdminUser{}, false
	}
	adm, ok := v.(admin.AdminUser)
	return adm, ok
}
