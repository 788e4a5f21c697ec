package models

import (
	"time"

	"github.com/homedeco/marketplace/pkg/types"
)

const WorkStatusAvailable = "available"

// DecoratorApplication is a request from an account to be vetted and
// granted the decorator role. At most one live (pending) application may
// exist per email.
type DecoratorApplication struct {
	ID          string            `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Email       string            `gorm:"column:email;type:varchar(255);not null;index:idx_application_email" json:"email"`
	ServiceType string            `gorm:"column:service_type;type:varchar(128);not null" json:"service_type"`
	ApplyStatus types.ApplyStatus `gorm:"column:apply_status;type:varchar(32);not null;default:'pending'" json:"apply_status"`
	// WorkStatus is set to "available" when the application is accepted.
	WorkStatus string    `gorm:"column:work_status;type:varchar(32)" json:"work_status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (DecoratorApplication) TableName() string {
	return "decorator_application"
}
