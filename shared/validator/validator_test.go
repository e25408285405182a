package validator_test

import (
	"lodge/shared/validator"
	"strings"
	"testing"
)

// Test structs for validation
type ValidTestStruct struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Rate     int    `validate:"gte=0,lte=10000" json:"rate"`
	Category string `validate:"oneof=single double suite" json:"category"`
}

type StayTestStruct struct {
	CheckIn string `validate:"required,stay_date" json:"check_in"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *ValidTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: &ValidTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Rate:     120,
				Category: "double",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &ValidTestStruct{
				Email:    "jane@example.com",
				Rate:     120,
				Category: "double",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &ValidTestStruct{
				Name:     "Jane Doe",
				Email:    "invalid-email",
				Rate:     120,
				Category: "double",
			},
			expectError: true,
		},
		{
			name: "rate out of range",
			data: &ValidTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Rate:     20000,
				Category: "double",
			},
			expectError: true,
		},
		{
			name: "invalid category",
			data: &ValidTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Rate:     120,
				Category: "penthouse",
			},
			expectError: true,
		},
		{
			name: "negative rate",
			data: &ValidTestStruct{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Rate:     -1,
				Category: "double",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateStayDate(t *testing.T) {
	tests := []struct {
		name        string
		data        *StayTestStruct
		expectError bool
	}{
		{
			name:        "valid stay date",
			data:        &StayTestStruct{CheckIn: "2026-07-01"},
			expectError: false,
		},
		{
			name:        "wrong layout",
			data:        &StayTestStruct{CheckIn: "01-07-2026"},
			expectError: true,
		},
		{
			name:        "date with time component",
			data:        &StayTestStruct{CheckIn: "2026-07-01T15:04:05Z"},
			expectError: true,
		},
		{
			name:        "not a date",
			data:        &StayTestStruct{CheckIn: "tomorrow"},
			expectError: true,
		},
		{
			name:        "missing date",
			data:        &StayTestStruct{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid number in range",
			field:       25,
			tag:         "gte=0,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
		{
			name:        "valid stay date",
			field:       "2026-07-01",
			tag:         "stay_date",
			expectError: false,
		},
		{
			name:        "invalid stay date",
			field:       "2026/07/01",
			tag:         "stay_date",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Jane Doe","email":"jane@example.com","rate":120,"category":"double"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			jsonBody:    `{"name":"Jane Doe","email":"invalid-email","rate":120,"category":"double"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Jane Doe","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data ValidTestStruct
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

// Test custom validation messages
func TestValidationMessages(t *testing.T) {
	data := &ValidTestStruct{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	// Check that error message contains field name and is descriptive
	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

// Test validation error handling
func TestValidationErrorHandling(t *testing.T) {
	// Test with multiple validation errors
	data := &ValidTestStruct{
		Name:     "",          // required violation
		Email:    "invalid",   // email violation
		Rate:     -1,          // gte violation
		Category: "penthouse", // oneof violation
	}

	err := validator.ValidateStruct(data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	// The error should be descriptive and contain information about the failure
	errorMsg := err.Error()
	if errorMsg == "" {
		t.Error("expected non-empty error message")
	}

	t.Logf("Error message: %s", errorMsg)
}

// Test that the validator package initializes correctly
func TestValidatorInitialization(t *testing.T) {
	// Test that we can validate basic structs without panic
	// This indirectly tests that the init() function worked correctly
	data := &ValidTestStruct{
		Name:     "Test",
		Email:    "test@example.com",
		Rate:     25,
		Category: "single",
	}

	err := validator.ValidateStruct(data)
	if err != nil {
		t.Errorf("expected no validation error for valid struct, got: %v", err)
	}
}
