package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEmployeeSignup() EmployeeSignup {
	return EmployeeSignup{
		Email:             "new@example.com",
		FirstName:         "Nima",
		LastName:          "Karimi",
		NationalID:        "0012345678",
		PhoneNumber:       "09120000000",
		Password:          "longenough",
		LeaveRequestsLeft: DefaultLeaveRequestsLeft,
	}
}

func TestValidateEmployeeSignup(t *testing.T) {
	require.NoError(t, Validate(validEmployeeSignup()))

	tests := []struct {
		name    string
		mutate  func(*EmployeeSignup)
		field   string
		message string
	}{
		{"missing first name", func(s *EmployeeSignup) { s.FirstName = "" }, "first_name", "First Name is required"},
		{"bad email", func(s *EmployeeSignup) { s.Email = "nope" }, "email", "Invalid email address"},
		{"short national id", func(s *EmployeeSignup) { s.NationalID = "123" }, "national_id", "National Id must be 10 digits"},
		{"letters in phone", func(s *EmployeeSignup) { s.PhoneNumber = "0912abc0000" }, "phone_number", "Phone Number must contain only digits"},
		{"short password", func(s *EmployeeSignup) { s.Password = "short" }, "password", "Password must be at least 8 characters"},
		{"negative leave", func(s *EmployeeSignup) { s.LeaveRequestsLeft = -1 }, "leave_requests_left", "Leave Requests Left must be a non-negative number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validEmployeeSignup()
			tt.mutate(&s)
			err := Validate(s)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.message, ve.For(tt.field))
		})
	}
}

func TestValidateSupervisorSignupPhoneOptional(t *testing.T) {
	s := SupervisorSignup{
		Email:      "boss@example.com",
		FirstName:  "Sara",
		LastName:   "Ahmadi",
		NationalID: "1234567890",
		Password:   "password1",
	}
	assert.NoError(t, Validate(s))

	s.PhoneNumber = "123"
	err := Validate(s)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestValidateLeaveRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     NewLeaveRequest
		wantErr string
	}{
		{"valid", NewLeaveRequest{StartDate: NewDate(2024, 5, 1), EndDate: NewDate(2024, 5, 2)}, ""},
		{"same day", NewLeaveRequest{StartDate: NewDate(2024, 5, 1), EndDate: NewDate(2024, 5, 1)}, MsgInvalidDateRange},
		{"end before start", NewLeaveRequest{StartDate: NewDate(2024, 5, 3), EndDate: NewDate(2024, 5, 1)}, MsgInvalidDateRange},
		{"missing start", NewLeaveRequest{EndDate: NewDate(2024, 5, 1)}, MsgDatesRequired},
		{"missing both", NewLeaveRequest{}, MsgDatesRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLeaveRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestIsValidationWrapped(t *testing.T) {
	err := fmt.Errorf("service.CreateLeaveRequest: %w", ValidateLeaveRequest(NewLeaveRequest{}))
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("plain")))
}
