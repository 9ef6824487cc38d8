package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Ticket TicketRepo
	Admin  AdminRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Ticket: NewTicketRepo(db),
		Admin:  NewAdminRepo(db),
		db:     db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Ticket: r.Ticket.WithTx(tx),
		Admin:  r.Admin.WithTx(tx),
		db:     tx,
	}
}

func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
