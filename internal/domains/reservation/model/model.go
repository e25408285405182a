package model

import (
	"lodge/shared/daterange"
	"lodge/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID           = "id"
	FieldCustomerID   = "customer_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldTotalPrice   = "total_price"
	FieldStatus       = "status"
	FieldBookingDate  = "booking_date"

	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

// transitions is the lifecycle a reservation may walk: check-in only from
// confirmed, check-out only from checked-in, cancellation from either open
// state. Checked-out and cancelled are terminal.
var transitions = map[string][]string{
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut, StatusCancelled},
}

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// IsClosed reports whether a reservation has reached a terminal status.
func IsClosed(status string) bool {
	return status == StatusCheckedOut || status == StatusCancelled
}

// ActiveStatuses lists the statuses that hold a room. Only cancellation
// releases the stay; a checked-out reservation still blocks its dates.
func ActiveStatuses() []string {
	return []string{StatusConfirmed, StatusCheckedIn, StatusCheckedOut}
}

type Reservation struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	RoomID       string    `db:"room_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	TotalPrice   float64   `db:"total_price"`
	Status       string    `db:"status"`
	BookingDate  time.Time `db:"booking_date"`
	model.Metadata
}

func (r Reservation) StayRange() daterange.Range {
	return daterange.Range{CheckIn: r.CheckInDate, CheckOut: r.CheckOutDate}
}
