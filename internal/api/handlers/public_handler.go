package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/domilony/leadgen/internal/application"
	"github.com/domilony/leadgen/internal/domain/ticket"
	"github.com/domilony/leadgen/pkg/response"
)

type PublicHandler struct {
	tickets *application.TicketService
	logger  *zap.Logger
}

func NewPublicHandler(tickets *application.TicketService, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{tickets: tickets, logger: logger}
}

// Landing renders the public landing page.
func (h *PublicHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// Submit accepts a ticket submission. Validation failures return the
// field-level message; anything else is a generic 500 with the cause logged.
func (h *PublicHandler) Submit(c *gin.Context) {
	var input ticket.CreateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.SubmitResponse{
			Success: false,
			Message: validationMessage(err),
		})
		return
	}

	meta := application.SubmissionMeta{
		RemoteAddr: c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}

	t, err := h.tickets.Create(input, meta)
	if err != nil {
		h.logger.Error("ticket create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.SubmitResponse{
			Success: false,
			Message: "Something went wrong on our side. Please try again later.",
		})
		return
	}

	h.logger.Info("ticket submitted",
		zap.Uint("ticket_id", t.ID),
		zap.String("email", t.Email),
	)

	c.JSON(http.StatusCreated, response.SubmitResponse{
		Success:  true,
		Message:  "Application submitted. We will get back to you shortly.",
		TicketID: t.ID,
	})
}

// Health is the liveness probe.
func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{
		Status:  "ok",
		Message: "server is running",
	})
}

// validationMessage turns the first binding failure into a field-level
// message safe to show the submitter.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "malformed request body"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "email":
		return field + " must be a valid email address"
	case "phone":
		return field + " may only contain digits, spaces, dashes and parentheses"
	}
	return field + " is invalid"
}
