package application

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/domilony/leadgen/internal/domain/ticket"
	"github.com/domilony/leadgen/internal/repository"
)

var ErrTicketNotFound = errors.New("ticket not found")

// SubmissionMeta records where a public submission came from. It is stored
// alongside the ticket as a JSON column and never shown to the submitter.
type SubmissionMeta struct {
	RemoteAddr string `json:"remote_addr,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
}

type TicketService struct {
	Repos *repository.Repos
}

func NewTicketService(repos *repository.Repos) *TicketService {
	return &TicketService{Repos: repos}
}

// Create persists a validated submission with status new. Input validation
// happens at the binding boundary; by the time this runs the fields are good.
func (s *TicketService) Create(input ticket.CreateTicketInput, meta SubmissionMeta) (ticket.Ticket, error) {
	t := ticket.Ticket{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Message:     input.Message,
		ProjectType: input.ProjectType,
		Status:      ticket.StatusNew,
	}

	if raw, err := json.Marshal(meta); err == nil {
		t.Meta = raw
	}

	if err := s.Repos.Ticket.Create(&t); err != nil {
		return ticket.Ticket{}, err
	}
	return t, nil
}

func (s *TicketService) Get(id uint) (ticket.Ticket, error) {
	t, err := s.Repos.Ticket.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket.Ticket{}, ErrTicketNotFound
		}
		return ticket.Ticket{}, err
	}
	return t, nil
}

func (s *TicketService) List(q ticket.ListQuery) ([]ticket.Ticket, error) {
	return s.Repos.Ticket.List(q)
}

// UpdateStatus moves a ticket through the lifecycle and stamps updated_at.
// The status value is parsed and validated before this is called.
func (s *TicketService) UpdateStatus(id uint, status ticket.Status) (ticket.Ticket, error) {
	t, err := s.Repos.Ticket.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket.Ticket{}, ErrTicketNotFound
		}
		return ticket.Ticket{}, err
	}

	now := time.Now()
	t.Status = status
	t.UpdatedAt = &now

	if err := s.Repos.Ticket.Save(&t); err != nil {
		return ticket.Ticket{}, err
	}
	return t, nil
}

// Delete reports whether a ticket existed; repeat deletes return false.
func (s *TicketService) Delete(id uint) (bool, error) {
	return s.Repos.Ticket.Delete(id)
}

// Stats aggregates the dashboard view: per-status counts, the total and the
// five most recent tickets.
func (s *TicketService) Stats() (ticket.Stats, error) {
	stats := ticket.Stats{ByStatus: make(map[ticket.Status]int64)}

	for _, status := range ticket.AllStatuses() {
		n, err := s.Repos.Ticket.CountByStatus(status)
		if err != nil {
			return ticket.Stats{}, err
		}
		stats.ByStatus[status] = n
		stats.Total += n
	}

	recent, err := s.Repos.Ticket.List(ticket.ListQuery{Limit: 5})
	if err != nil {
		return ticket.Stats{}, err
	}
	stats.Recent = recent

	return stats, nil
}
