package admin

import "time"

// AdminUser is an internal account allowed to triage tickets. Accounts are
// created out-of-band (cmd/createadmin); there is no public signup surface.
type AdminUser struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:50;not null;unique" json:"username"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
