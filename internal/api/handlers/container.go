package handlers

import (
	"go.uber.org/zap"

	"github.com/domilony/leadgen/internal/application"
)

type Handlers struct {
	Public *PublicHandler
	Auth   *AuthHandler
	Ticket *TicketHandler
}

func New(svc *application.Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		Public: NewPublicHandler(svc.Ticket, logger),
		Auth:   NewAuthHandler(svc.Auth, logger),
		Ticket: NewTicketHandler(svc.Ticket, logger),
	}
}
