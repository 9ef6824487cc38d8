package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/domilony/leadgen/internal/api/handlers"
	"github.com/domilony/leadgen/internal/api/middleware"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, auth *middleware.Auth) {
	RegisterValidations()

	r.GET("/", h.Public.Landing)
	r.GET("/health", h.Public.Health)
	r.POST("/api/submit-application", h.Public.Submit)

	adminGroup := r.Group("/admin")
	{
		adminGroup.GET("/login", h.Auth.LoginPage)
		adminGroup.POST("/login", h.Auth.Login)
		adminGroup.GET("/logout", h.Auth.Logout)

		protected := adminGroup.Group("/")
		protected.Use(auth.Required())
		{
			protected.GET("/dashboard", h.Ticket.Dashboard)
			protected.GET("/tickets", h.Ticket.List)
			protected.GET("/tickets/:id", h.Ticket.Detail)
			protected.POST("/tickets/:id/status", h.Ticket.UpdateStatus)
			protected.DELETE("/tickets/:id", h.Ticket.Delete)
		}
	}
}
