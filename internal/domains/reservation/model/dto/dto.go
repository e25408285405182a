package dto

import (
	"lodge/internal/domains/reservation/model"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CustomerID   string `json:"customer_id"    validate:"required,uuid"`
	RoomID       string `json:"room_id"        validate:"required,uuid"`
	CheckInDate  string `json:"check_in_date"  validate:"required,stay_date"`
	CheckOutDate string `json:"check_out_date" validate:"required,stay_date"`
}

func (c *CreateReservationRequest) ToModel(user string, stay daterange.Range, totalPrice float64) model.Reservation {
	return model.Reservation{
		ID:           uuid.NewString(),
		CustomerID:   c.CustomerID,
		RoomID:       c.RoomID,
		CheckInDate:  stay.CheckIn,
		CheckOutDate: stay.CheckOut,
		TotalPrice:   totalPrice,
		Status:       model.StatusConfirmed,
		BookingDate:  timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReservationRequest struct {
	RoomID       string `db:"room_id" json:"room_id"        validate:"omitempty,uuid"`
	CheckInDate  string `json:"check_in_date"               validate:"omitempty,stay_date"`
	CheckOutDate string `json:"check_out_date"              validate:"omitempty,stay_date"`
	Status       string `db:"status"  json:"status"         validate:"omitempty,oneof=confirmed checked_in checked_out cancelled"`
}

// ChangesStay reports whether the update moves the reservation to another
// room or different dates, which forces re-pricing and a fresh conflict check.
func (u *UpdateReservationRequest) ChangesStay() bool {
	return u.RoomID != "" || u.CheckInDate != "" || u.CheckOutDate != ""
}

type ReservationResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customer_id"`
	RoomID       string  `json:"room_id"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	BookingDate  string  `json:"booking_date"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.RoomID = model.RoomID
	r.CheckInDate = model.CheckInDate.Format(constant.StayDateFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.StayDateFormat)
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.BookingDate = model.BookingDate.Format(constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Available    bool   `json:"available"`
}

// LifecycleEvent is the payload published to the reservation lifecycle topic.
type LifecycleEvent struct {
	Action        string    `json:"action"`
	ReservationID string    `json:"reservation_id"`
	CustomerID    string    `json:"customer_id"`
	RoomID        string    `json:"room_id"`
	Status        string    `json:"status"`
	TotalPrice    float64   `json:"total_price"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	LifecycleActionCreated   = "created"
	LifecycleActionUpdated   = "updated"
	LifecycleActionCancelled = "cancelled"
	LifecycleActionDeleted   = "deleted"
)

func NewLifecycleEvent(action string, res model.Reservation) LifecycleEvent {
	return LifecycleEvent{
		Action:        action,
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		RoomID:        res.RoomID,
		Status:        res.Status,
		TotalPrice:    res.TotalPrice,
		OccurredAt:    timezone.Now(),
	}
}
