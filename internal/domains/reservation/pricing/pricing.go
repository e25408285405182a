package pricing

import (
	"lodge/shared/failure"
	"math"
)

const cents = 100

// Round2 rounds a monetary amount to 2 decimals, half away from zero.
func Round2(amount float64) float64 {
	return math.Round(amount*cents) / cents
}

// ComputeTotal prices a stay as nightly rate times nights. Deterministic for
// the same inputs; the result is what gets persisted on the reservation.
func ComputeTotal(nightlyRate float64, nights int) (float64, error) {
	if nights < 1 {
		return 0, failure.BadRequestFromString("stay must be at least one night") //nolint:wrapcheck
	}

	if nightlyRate < 0 {
		return 0, failure.BadRequestFromString("nightly rate cannot be negative") //nolint:wrapcheck
	}

	return Round2(nightlyRate * float64(nights)), nil
}
