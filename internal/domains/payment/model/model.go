package model

import (
	"fmt"
	"lodge/internal/domains/reservation/pricing"
	"lodge/shared/failure"
	"lodge/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldAmount        = "amount"
	FieldMethod        = "method"
	FieldBalance       = "balance"
	FieldFullyPaid     = "fully_paid"

	MethodCash         = "cash"
	MethodCreditCard   = "credit_card"
	MethodDebitCard    = "debit_card"
	MethodBankTransfer = "bank_transfer"
	MethodOnline       = "online"

	// BalanceTolerance absorbs float rounding when comparing amounts against
	// the outstanding balance. Anything beyond half a cent is a real
	// overpayment and gets rejected.
	BalanceTolerance = 0.005
)

// Payment is one append-only ledger row. Balance is the amount still owed
// after this payment was applied.
// Settle applies a payment of amount against a reservation total given what
// was already paid. A payment pushing the ledger past the total by more than
// BalanceTolerance is rejected as an overpayment; otherwise it returns the
// remaining balance, rounded to 2 decimals and never negative, and whether
// the reservation is now fully paid.
func Settle(totalPrice, priorPaid, amount float64) (balance float64, fullyPaid bool, err error) {
	if priorPaid+amount > totalPrice+BalanceTolerance {
		outstanding := pricing.Round2(totalPrice - priorPaid)

		return 0, false, failure.UnprocessableEntity(fmt.Sprintf("payment of %.2f exceeds outstanding balance of %.2f", amount, outstanding)) //nolint:wrapcheck
	}

	balance = pricing.Round2(totalPrice - priorPaid - amount)
	if balance < 0 {
		balance = 0
	}

	return balance, balance == 0, nil
}

type Payment struct {
	ID            string  `db:"id"`
	ReservationID string  `db:"reservation_id"`
	Amount        float64 `db:"amount"`
	Method        string  `db:"method"`
	Balance       float64 `db:"balance"`
	FullyPaid     bool    `db:"fully_paid"`
	model.Metadata
}
