package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/domilony/leadgen/internal/api/middleware"
	"github.com/domilony/leadgen/internal/application"
	"github.com/domilony/leadgen/internal/domain/admin"
)

type AuthHandler struct {
	auth   *application.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// LoginPage shows the login form. An already-valid session skips straight to
// the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		if _, err := h.auth.Tokens.Parse(cookie); err == nil {
			c.Redirect(http.StatusSeeOther, "/admin/dashboard")
			return
		}
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login checks credentials, sets the session cookie and redirects to the
// dashboard. Failures re-render the form without hinting at which field was
// wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var input admin.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid username or password"})
		return
	}

	adm, token, err := h.auth.Login(input.Username, input.Password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid username or password"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.auth.Tokens.TTL().Seconds()), "/", "", false, true)

	h.logger.Info("admin logged in", zap.String("username", adm.Username))
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// Logout clears the session cookie and returns to the login form.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}
