package pricing_test

import (
	"lodge/internal/domains/reservation/pricing"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name        string
		nightlyRate float64
		nights      int
		expected    float64
		wantErr     bool
	}{
		{
			name:        "three nights at 100",
			nightlyRate: 100.00,
			nights:      3,
			expected:    300.00,
		},
		{
			name:        "single night",
			nightlyRate: 89.50,
			nights:      1,
			expected:    89.50,
		},
		{
			name:        "fractional rate rounds to cents",
			nightlyRate: 33.335,
			nights:      3,
			expected:    100.01,
		},
		{
			name:        "zero rate is allowed",
			nightlyRate: 0,
			nights:      2,
			expected:    0,
		},
		{
			name:        "zero nights rejected",
			nightlyRate: 100.00,
			nights:      0,
			wantErr:     true,
		},
		{
			name:        "negative nights rejected",
			nightlyRate: 100.00,
			nights:      -1,
			wantErr:     true,
		},
		{
			name:        "negative rate rejected",
			nightlyRate: -10.00,
			nights:      2,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := pricing.ComputeTotal(tt.nightlyRate, tt.nights)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.expected, total, 0.0001)
		})
	}
}

func TestComputeTotalDeterministic(t *testing.T) {
	first, err := pricing.ComputeTotal(123.45, 7)
	assert.NoError(t, err)

	for range 10 {
		again, err := pricing.ComputeTotal(123.45, 7)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 10.01, pricing.Round2(10.005), 0.0001)
	assert.InDelta(t, -10.01, pricing.Round2(-10.005), 0.0001)
	assert.InDelta(t, 10.00, pricing.Round2(10.004), 0.0001)
}
