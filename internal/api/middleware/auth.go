package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/domilony/leadgen/internal/repository"
	"github.com/domilony/leadgen/pkg/response"
)

// adminKey is the context key under which the resolved admin record is stored.
const adminKey = "admin"

// Auth gates the admin surface behind a verified session token.
type Auth struct {
	tokens *TokenManager
	repos  *repository.Repos
}

func NewAuth(tokens *TokenManager, repos *repository.Repos) *Auth {
	return &Auth{tokens: tokens, repos: repos}
}

// Required accepts the token from the Authorization header or the session
// cookie; both paths converge on the same verification. The embedded identity
// is resolved to a live record and is_active is re-checked, so a deactivated
// admin with an otherwise-valid token is still rejected.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortUnauthorized(c, "Authorization header format must be Bearer {token}")
				return
			}
			tokenStr = parts[1]
		} else if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenStr = cookie
		} else {
			abortUnauthorized(c, "Authorization required (header or cookie)")
			return
		}

		claims, err := a.tokens.Parse(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		adm, err := a.repos.Admin.GetByID(claims.AdminID)
		if err != nil || !adm.IsActive {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(adminKey, adm)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: msg})
}
