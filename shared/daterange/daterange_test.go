package daterange_test

import (
	"lodge/shared/daterange"
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  bool
	}{
		{
			name:     "valid range",
			checkIn:  date("2024-06-01"),
			checkOut: date("2024-06-04"),
			wantErr:  false,
		},
		{
			name:     "check-out equal to check-in",
			checkIn:  date("2024-06-01"),
			checkOut: date("2024-06-01"),
			wantErr:  true,
		},
		{
			name:     "check-out before check-in",
			checkIn:  date("2024-06-04"),
			checkOut: date("2024-06-01"),
			wantErr:  true,
		},
		{
			name:     "zero check-in",
			checkIn:  time.Time{},
			checkOut: date("2024-06-04"),
			wantErr:  true,
		},
		{
			name:     "zero check-out",
			checkIn:  date("2024-06-01"),
			checkOut: time.Time{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := daterange.New(tt.checkIn, tt.checkOut)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected wantErr=%v, got err=%v", tt.wantErr, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{
			name:     "valid dates",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-04",
			wantErr:  false,
		},
		{
			name:     "invalid check-in format",
			checkIn:  "06/01/2024",
			checkOut: "2024-06-04",
			wantErr:  true,
		},
		{
			name:     "invalid check-out format",
			checkIn:  "2024-06-01",
			checkOut: "not-a-date",
			wantErr:  true,
		},
		{
			name:     "inverted dates",
			checkIn:  "2024-06-04",
			checkOut: "2024-06-01",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := daterange.Parse(tt.checkIn, tt.checkOut)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected wantErr=%v, got err=%v", tt.wantErr, err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        daterange.Range
		b        daterange.Range
		expected bool
	}{
		{
			name:     "identical ranges overlap",
			a:        daterange.Range{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-04")},
			b:        daterange.Range{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-04")},
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        daterange.Range{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-04")},
			b:        daterange.Range{CheckIn: date("2024-06-03"), CheckOut: date("2024-06-06")},
			expected: true,
		},
		{
			name:     "contained range overlaps",
			a:        daterange.Range{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-10")},
			b:        daterange.Range{CheckIn: date("2024-06-03"), CheckOut: date("2024-06-05")},
			expected: true,
		},
		{
			name:     "same-day turnover does not overlap",
			a:        daterange.Range{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-04")},
			b:        daterange.Range{CheckIn: date("2024-06-04"), CheckOut: date("2024-06-07")},
			expected: false,
		},
		{
			name:     "disjoint ranges do not overlap",
			a:        daterange.Range{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-04")},
			b:        daterange.Range{CheckIn: date("2024-06-10"), CheckOut: date("2024-06-12")},
			expected: false,
		},
		{
			name:     "overlap is symmetric",
			a:        daterange.Range{CheckIn: date("2024-06-03"), CheckOut: date("2024-06-06")},
			b:        daterange.Range{CheckIn: date("2024-06-01"), CheckOut: date("2024-06-04")},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		expected int
	}{
		{
			name:     "three nights",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-04",
			expected: 3,
		},
		{
			name:     "single night",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-02",
			expected: 1,
		},
		{
			name:     "month boundary",
			checkIn:  "2024-06-29",
			checkOut: "2024-07-02",
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := daterange.Range{CheckIn: date(tt.checkIn), CheckOut: date(tt.checkOut)}
			if got := r.Nights(); got != tt.expected {
				t.Errorf("expected %d nights, got %d", tt.expected, got)
			}
		})
	}
}

func TestNightsAcrossDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	dateIn := func(value string) time.Time {
		parsed, err := time.ParseInLocation("2006-01-02", value, loc)
		if err != nil {
			t.Fatalf("failed to parse date: %v", err)
		}

		return parsed
	}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		expected int
	}{
		{
			name:     "fall back adds an hour, not a night",
			checkIn:  "2025-11-01",
			checkOut: "2025-11-04",
			expected: 3,
		},
		{
			name:     "spring forward drops an hour, not a night",
			checkIn:  "2025-03-08",
			checkOut: "2025-03-10",
			expected: 2,
		},
		{
			name:     "single night over fall back",
			checkIn:  "2025-11-01",
			checkOut: "2025-11-02",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := daterange.Range{CheckIn: dateIn(tt.checkIn), CheckOut: dateIn(tt.checkOut)}
			if got := r.Nights(); got != tt.expected {
				t.Errorf("expected %d nights for %s..%s, got %d", tt.expected, tt.checkIn, tt.checkOut, got)
			}
		})
	}
}
