package models

import (
	"time"
)

// Payment is the ledger record written when the gateway reports a session
// as paid. TransactionID is the gateway's charge identifier and the
// idempotency key: the unique index is the backstop against concurrent
// confirmations inserting twice.
type Payment struct {
	ID            string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	BookingID     string    `gorm:"column:booking_id;type:uuid;not null;index:idx_payment_booking_id" json:"booking_id"`
	TrackingID    string    `gorm:"column:tracking_id;type:varchar(32);not null" json:"tracking_id"`
	TransactionID string    `gorm:"column:transaction_id;type:varchar(128);not null;uniqueIndex:unique_payment_transaction_id" json:"transaction_id"`
	ServicesID    string    `gorm:"column:services_id;type:varchar(64);not null" json:"services_id"`
	Amount        float64   `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Currency      string    `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Email         string    `gorm:"column:email;type:varchar(255);not null;index:idx_payment_email" json:"email"`
	PaidAt        time.Time `gorm:"column:paid_at;not null" json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payment"
}
