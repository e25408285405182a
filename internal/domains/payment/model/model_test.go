package model_test

import (
	"lodge/internal/domains/payment/model"
	"lodge/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name              string
		totalPrice        float64
		priorPaid         float64
		amount            float64
		expectedBalance   float64
		expectedFullyPaid bool
		expectedCode      int
	}{
		{
			name:              "partial payment leaves a balance",
			totalPrice:        300,
			priorPaid:         0,
			amount:            100,
			expectedBalance:   200,
			expectedFullyPaid: false,
		},
		{
			name:              "final payment settles the ledger",
			totalPrice:        300,
			priorPaid:         100,
			amount:            200,
			expectedBalance:   0,
			expectedFullyPaid: true,
		},
		{
			name:              "exact total in one payment",
			totalPrice:        300,
			priorPaid:         0,
			amount:            300,
			expectedBalance:   0,
			expectedFullyPaid: true,
		},
		{
			name:         "one cent over the total is rejected",
			totalPrice:   300,
			priorPaid:    0,
			amount:       300.01,
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "one cent over the remaining balance is rejected",
			totalPrice:   300,
			priorPaid:    200,
			amount:       100.01,
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:              "rounding drift within tolerance settles to zero",
			totalPrice:        300,
			priorPaid:         0,
			amount:            300.004,
			expectedBalance:   0,
			expectedFullyPaid: true,
		},
		{
			name:              "fractional amounts round to two decimals",
			totalPrice:        100.10,
			priorPaid:         33.37,
			amount:            33.37,
			expectedBalance:   33.36,
			expectedFullyPaid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, fullyPaid, err := model.Settle(tt.totalPrice, tt.priorPaid, tt.amount)

			if tt.expectedCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBalance, balance)
			assert.Equal(t, tt.expectedFullyPaid, fullyPaid)
		})
	}
}

func TestSettleBalanceMonotonicity(t *testing.T) {
	total := 500.0
	payments := []float64{120.50, 79.50, 200, 100}

	prior := 0.0
	previousBalance := total

	for _, amount := range payments {
		balance, fullyPaid, err := model.Settle(total, prior, amount)

		assert.NoError(t, err)
		assert.Less(t, balance, previousBalance)
		assert.Equal(t, balance == 0, fullyPaid)

		prior += amount
		previousBalance = balance
	}

	assert.Equal(t, 0.0, previousBalance)
}
