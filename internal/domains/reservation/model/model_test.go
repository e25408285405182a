package model_test

import (
	"lodge/internal/domains/reservation/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected bool
	}{
		{
			name:     "confirmed to checked_in",
			from:     model.StatusConfirmed,
			to:       model.StatusCheckedIn,
			expected: true,
		},
		{
			name:     "confirmed to cancelled",
			from:     model.StatusConfirmed,
			to:       model.StatusCancelled,
			expected: true,
		},
		{
			name:     "checked_in to checked_out",
			from:     model.StatusCheckedIn,
			to:       model.StatusCheckedOut,
			expected: true,
		},
		{
			name:     "checked_in to cancelled",
			from:     model.StatusCheckedIn,
			to:       model.StatusCancelled,
			expected: true,
		},
		{
			name:     "confirmed to checked_out skips check-in",
			from:     model.StatusConfirmed,
			to:       model.StatusCheckedOut,
			expected: false,
		},
		{
			name:     "checked_out is terminal",
			from:     model.StatusCheckedOut,
			to:       model.StatusCancelled,
			expected: false,
		},
		{
			name:     "cancelled is terminal",
			from:     model.StatusCancelled,
			to:       model.StatusConfirmed,
			expected: false,
		},
		{
			name:     "checked_in cannot revert to confirmed",
			from:     model.StatusCheckedIn,
			to:       model.StatusConfirmed,
			expected: false,
		},
		{
			name:     "unknown status has no transitions",
			from:     "pending",
			to:       model.StatusConfirmed,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsClosed(t *testing.T) {
	assert.False(t, model.IsClosed(model.StatusConfirmed))
	assert.False(t, model.IsClosed(model.StatusCheckedIn))
	assert.True(t, model.IsClosed(model.StatusCheckedOut))
	assert.True(t, model.IsClosed(model.StatusCancelled))
}

func TestActiveStatuses(t *testing.T) {
	statuses := model.ActiveStatuses()

	assert.ElementsMatch(t, []string{model.StatusConfirmed, model.StatusCheckedIn, model.StatusCheckedOut}, statuses)
	assert.NotContains(t, statuses, model.StatusCancelled)
}
