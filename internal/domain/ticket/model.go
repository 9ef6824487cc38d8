package ticket

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Status enumerates the ticket lifecycle.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
)

// AllStatuses lists every status in triage order, for filters and forms.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusCancelled, StatusCompleted}
}

// ParseStatus maps a raw string onto the enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown ticket status %q", s)
}

type Ticket struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"size:100;not null;index" json:"email"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Phone       string         `gorm:"size:50;not null" json:"phone"`
	Message     *string        `json:"message"`
	ProjectType *string        `json:"project_type"`
	Status      Status         `gorm:"size:20;not null;default:'new';index" json:"status"`
	Meta        datatypes.JSON `json:"-"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	// UpdatedAt stays NULL until the first mutation; the service sets it
	// explicitly on status changes instead of using autoUpdateTime.
	UpdatedAt *time.Time `json:"updated_at"`
}
