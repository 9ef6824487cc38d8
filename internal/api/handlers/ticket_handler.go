package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/domilony/leadgen/internal/api/middleware"
	"github.com/domilony/leadgen/internal/application"
	"github.com/domilony/leadgen/internal/domain/ticket"
	"github.com/domilony/leadgen/pkg/response"
	"github.com/domilony/leadgen/pkg/utils"
)

// TicketHandler serves the authenticated triage surface.
type TicketHandler struct {
	tickets *application.TicketService
	logger  *zap.Logger
}

func NewTicketHandler(tickets *application.TicketService, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{tickets: tickets, logger: logger}
}

// Dashboard aggregates per-status counts, the total and the five most recent
// tickets. Nothing derived is persisted.
func (h *TicketHandler) Dashboard(c *gin.Context) {
	adm, _ := middleware.CurrentAdmin(c)

	stats, err := h.tickets.Stats()
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Admin":       adm,
		"ByStatus":    stats.ByStatus,
		"AllStatuses": ticket.AllStatuses(),
		"Total":       stats.Total,
		"Recent":      stats.Recent,
	})
}

// List shows tickets filtered by status and free-text search. Unrecognized
// status strings mean "no filter" rather than an error.
func (h *TicketHandler) List(c *gin.Context) {
	adm, _ := middleware.CurrentAdmin(c)

	q := ticket.ListQuery{
		Skip:   utils.ParseQueryIntParam(c, "skip", 0),
		Limit:  100,
		Search: c.Query("search"),
	}

	statusParam := c.Query("status")
	if statusParam != "" {
		if status, err := ticket.ParseStatus(statusParam); err == nil {
			q.Status = &status
		}
	}

	tickets, err := h.tickets.List(q)
	if err != nil {
		h.logger.Error("ticket list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
		return
	}

	c.HTML(http.StatusOK, "tickets.html", gin.H{
		"Admin":         adm,
		"Tickets":       tickets,
		"AllStatuses":   ticket.AllStatuses(),
		"CurrentStatus": statusParam,
		"SearchQuery":   q.Search,
	})
}

// Detail shows a single ticket.
func (h *TicketHandler) Detail(c *gin.Context) {
	adm, _ := middleware.CurrentAdmin(c)

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid ticket id"})
		return
	}

	t, err := h.tickets.Get(id)
	if err != nil {
		if errors.Is(err, application.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "ticket not found"})
			return
		}
		h.logger.Error("ticket get failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
		return
	}

	c.HTML(http.StatusOK, "ticket_detail.html", gin.H{
		"Admin":       adm,
		"Ticket":      t,
		"AllStatuses": ticket.AllStatuses(),
	})
}

// UpdateStatus moves a ticket to the submitted status and returns to the
// detail page.
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	adm, _ := middleware.CurrentAdmin(c)

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid ticket id"})
		return
	}

	status, err := ticket.ParseStatus(c.PostForm("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid status"})
		return
	}

	if _, err := h.tickets.UpdateStatus(id, status); err != nil {
		if errors.Is(err, application.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "ticket not found"})
			return
		}
		h.logger.Error("status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
		return
	}

	h.logger.Info("ticket status updated",
		zap.Uint("ticket_id", id),
		zap.String("status", string(status)),
		zap.String("admin", adm.Username),
	)

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/tickets/%d", id))
}

// Delete removes a ticket. Deleting an already-deleted id is a 404, not an
// error in the service sense.
func (h *TicketHandler) Delete(c *gin.Context) {
	adm, _ := middleware.CurrentAdmin(c)

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid ticket id"})
		return
	}

	existed, err := h.tickets.Delete(id)
	if err != nil {
		h.logger.Error("ticket delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "ticket not found"})
		return
	}

	h.logger.Info("ticket deleted",
		zap.Uint("ticket_id", id),
		zap.String("admin", adm.Username),
	)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ticket deleted"})
}
