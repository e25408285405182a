package model

import (
	"lodge/shared/model"
	"time"
)

const (
	TableName  = "cancellations"
	EntityName = "cancellation"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldCustomerID    = "customer_id"
	FieldRefundAmount  = "refund_amount"
	FieldReason        = "reason"
	FieldCancelledAt   = "cancelled_at"
)

// Cancellation is the record of a reservation being cancelled with a refund.
// A reservation can be cancelled at most once, enforced by a unique index on
// reservation_id.
type Cancellation struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	CustomerID    string    `db:"customer_id"`
	RefundAmount  float64   `db:"refund_amount"`
	Reason        string    `db:"reason"`
	CancelledAt   time.Time `db:"cancelled_at"`
	model.Metadata
}
