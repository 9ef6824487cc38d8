package application

import (
	"github.com/domilony/leadgen/internal/api/middleware"
	"github.com/domilony/leadgen/internal/repository"
)

type Services struct {
	Ticket *TicketService
	Auth   *AuthService
}

func New(repos *repository.Repos, tokens *middleware.TokenManager) *Services {
	return &Services{
		Ticket: NewTicketService(repos),
		Auth:   NewAuthService(repos, tokens),
	}
}
