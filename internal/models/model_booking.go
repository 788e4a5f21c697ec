package models

import (
	"time"

	"github.com/homedeco/marketplace/pkg/types"

	"gorm.io/datatypes"
)

// AssignedDecorator carries the decorator contact fields merged into a
// booking when work is assigned.
type AssignedDecorator struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Booking struct {
	ID            string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	CustomerEmail string `gorm:"column:customer_email;type:varchar(255);not null;index:idx_booking_customer_email" json:"customer_email"`
	ServicesID    string `gorm:"column:services_id;type:varchar(64);not null" json:"services_id"`
	ServiceName   string `gorm:"column:service_name;type:varchar(255)" json:"service_name"`
	// TrackingID is assigned exactly once at creation and never reused.
	TrackingID        string              `gorm:"column:tracking_id;type:varchar(32);not null;uniqueIndex:unique_booking_tracking_id" json:"tracking_id"`
	Cost              float64             `gorm:"column:cost;type:numeric(12,2);not null" json:"cost"`
	Currency          string              `gorm:"column:currency;type:varchar(8);not null;default:'usd'" json:"currency"`
	Address           string              `gorm:"column:address;type:varchar(512)" json:"address,omitempty"`
	ServiceDate       string              `gorm:"column:service_date;type:varchar(32)" json:"service_date,omitempty"`
	PaymentStatus     types.PaymentStatus `gorm:"column:payment_status;type:varchar(32);not null;default:'pending'" json:"payment_status"`
	ServiceWorkStatus types.WorkStatus    `gorm:"column:service_work_status;type:varchar(32)" json:"service_work_status,omitempty"`
	// TransactionID is recorded when the gateway confirms payment.
	TransactionID *string                                  `gorm:"column:transaction_id;type:varchar(128)" json:"transaction_id,omitempty"`
	Decorator     datatypes.JSONType[*AssignedDecorator] `gorm:"column:decorator;type:jsonb" json:"decorator,omitempty"`
	CreatedAt     time.Time                                `json:"created_at"`
	UpdatedAt     time.Time                                `json:"updated_at"`
	PaidAt        *time.Time                               `gorm:"column:paid_at;default:null" json:"paid_at,omitempty"`
}

func (Booking) TableName() string {
	return "booking"
}

func (b *Booking) IsPaid() bool {
	return b != nil && b.PaymentStatus == types.PaymentStatusPaid
}
