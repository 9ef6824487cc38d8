package repository

import (
	"strings"

	"github.com/domilony/leadgen/internal/domain/ticket"
	"gorm.io/gorm"
)

type TicketRepo interface {
	Create(t *ticket.Ticket) error
	GetByID(id uint) (ticket.Ticket, error)
	List(q ticket.ListQuery) ([]ticket.Ticket, error)
	Save(t *ticket.Ticket) error
	Delete(id uint) (bool, error)
	CountByStatus(s ticket.Status) (int64, error)
	Count() (int64, error)
	WithTx(tx *gorm.DB) TicketRepo
}

type DBTicketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) *DBTicketRepo {
	return &DBTicketRepo{db: db}
}

func (r *DBTicketRepo) Create(t *ticket.Ticket) error {
	return r.db.Create(t).Error
}

func (r *DBTicketRepo) GetByID(id uint) (ticket.Ticket, error) {
	var t ticket.Ticket
	if err := r.db.First(&t, id).Error; err != nil {
		return t, err
	}
	return t, nil
}

func (r *DBTicketRepo) List(q ticket.ListQuery) ([]ticket.Ticket, error) {
	if q.Limit <= 0 {
		q.Limit = 30
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	query := r.db.Model(&ticket.Ticket{})

	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.Search != "" {
		// LOWER(...) LIKE keeps the substring match case-insensitive on both
		// postgres and sqlite.
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var tickets []ticket.Ticket
	err := query.
		Order("created_at DESC").
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&tickets).Error
	return tickets, err
}

func (r *DBTicketRepo) Save(t *ticket.Ticket) error {
	return r.db.Save(t).Error
}

// Delete reports whether a row existed; deleting an absent id is not an error.
func (r *DBTicketRepo) Delete(id uint) (bool, error) {
	res := r.db.Delete(&ticket.Ticket{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DBTicketRepo) CountByStatus(s ticket.Status) (int64, error) {
	var n int64
	err := r.db.Model(&ticket.Ticket{}).Where("status = ?", s).Count(&n).Error
	return n, err
}

func (r *DBTicketRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&ticket.Ticket{}).Count(&n).Error
	return n, err
}

func (r *DBTicketRepo) WithTx(tx *gorm.DB) TicketRepo {
	return &DBTicketRepo{db: tx}
}
