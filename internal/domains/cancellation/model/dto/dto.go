package dto

import (
	"lodge/internal/domains/cancellation/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CancelReservationRequest struct {
	CustomerID   string  `json:"customer_id"   validate:"required,uuid"`
	RefundAmount float64 `json:"refund_amount" validate:"gte=0"`
	Reason       string  `json:"reason"        validate:"omitempty,max=255"`
}

func (c *CancelReservationRequest) ToModel(reservationID, user string) model.Cancellation {
	return model.Cancellation{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		CustomerID:    c.CustomerID,
		RefundAmount:  c.RefundAmount,
		Reason:        c.Reason,
		CancelledAt:   timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CancellationResponse struct {
	ID            string  `json:"id"`
	ReservationID string  `json:"reservation_id"`
	CustomerID    string  `json:"customer_id"`
	RefundAmount  float64 `json:"refund_amount"`
	Reason        string  `json:"reason"`
	CancelledAt   string  `json:"cancelled_at"`
	gDto.Metadata
}

func (r *CancellationResponse) FromModel(model model.Cancellation) {
	r.ID = model.ID
	r.ReservationID = model.ReservationID
	r.CustomerID = model.CustomerID
	r.RefundAmount = model.RefundAmount
	r.Reason = model.Reason
	r.CancelledAt = model.CancelledAt.Format(constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetCancellationsResponse struct {
	Cancellations []CancellationResponse `json:"cancellations"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetCancellationsResponse) FromModels(models []model.Cancellation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cancellations = make([]CancellationResponse, len(models))
	for i, mod := range models {
		r.Cancellations[i].FromModel(mod)
	}
}
