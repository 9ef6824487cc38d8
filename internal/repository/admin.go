package repository

import (
	"github.com/domilony/leadgen/internal/domain/admin"
	"gorm.io/gorm"
)

type AdminRepo interface {
	GetByUsername(username string) (admin.AdminUser, error)
	GetByID(id uint) (admin.AdminUser, error)
	Save(a *admin.AdminUser) error
	WithTx(tx *gorm.DB) AdminRepo
}

type DBAdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *DBAdminRepo {
	return &DBAdminRepo{db: db}
}

func (r *DBAdminRepo) GetByUsername(username string) (admin.AdminUser, error) {
	var a admin.AdminUser
	if err := r.db.Where("username = ?", username).First(&a).Error; err != nil {
		return a, err
	}
	return a, nil
}

func (r *DBAdminRepo) GetByID(id uint) (admin.AdminUser, error) {
	var a admin.AdminUser
	if err := r.db.First(&a, id).Error; err != nil {
		return a, err
	}
	return a, nil
}

func (r *DBAdminRepo) Save(a *admin.AdminUser) error {
	return r.db.Save(a).Error
}

func (r *DBAdminRepo) WithTx(tx *gorm.DB) AdminRepo {
	return &DBAdminRepo{db: tx}
}
