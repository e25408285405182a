package dto

import (
	"lodge/internal/domains/payment/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	ReservationID string  `json:"reservation_id" validate:"required,uuid"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	Method        string  `json:"method"         validate:"required,oneof=cash credit_card debit_card bank_transfer online"`
}

func (c *CreatePaymentRequest) ToModel(user string) model.Payment {
	return model.Payment{
		ID:            uuid.NewString(),
		ReservationID: c.ReservationID,
		Amount:        c.Amount,
		Method:        c.Method,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	ReservationID string  `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Balance       float64 `json:"balance"`
	FullyPaid     bool    `json:"fully_paid"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.ReservationID = model.ReservationID
	r.Amount = model.Amount
	r.Method = model.Method
	r.Balance = model.Balance
	r.FullyPaid = model.FullyPaid
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

type PaymentSummaryResponse struct {
	ReservationID string  `json:"reservation_id"`
	TotalPrice    float64 `json:"total_price"`
	TotalPaid     float64 `json:"total_paid"`
	Outstanding   float64 `json:"outstanding"`
	FullyPaid     bool    `json:"fully_paid"`
}

// RecordedEvent is the payload published whenever a payment lands in the ledger.
type RecordedEvent struct {
	PaymentID     string    `json:"payment_id"`
	ReservationID string    `json:"reservation_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Balance       float64   `json:"balance"`
	FullyPaid     bool      `json:"fully_paid"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewRecordedEvent(pay model.Payment) RecordedEvent {
	return RecordedEvent{
		PaymentID:     pay.ID,
		ReservationID: pay.ReservationID,
		Amount:        pay.Amount,
		Method:        pay.Method,
		Balance:       pay.Balance,
		FullyPaid:     pay.FullyPaid,
		OccurredAt:    timezone.Now(),
	}
}
