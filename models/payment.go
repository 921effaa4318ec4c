package models

import "time"

// Payment is the minimal record persisted when the gateway notifies a payment
// event. Append-only; the unique index on PaymentID keeps redelivered webhook
// events from producing duplicate rows.
type Payment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PaymentID  string    `json:"payment_id" gorm:"uniqueIndex;not null"`
	Alias      string    `json:"alias" gorm:"index"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	PayerEmail string    `json:"payer_email"`
	RawEvent   string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
