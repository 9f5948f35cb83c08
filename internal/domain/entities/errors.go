package entities

import "errors"

// Validation errors. Handlers map them to corrective prompts.
var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidClock         = errors.New("invalid time of day")
	ErrInvalidCycleLength   = errors.New("cycle length out of range")
	ErrPeriodEndBeforeStart = errors.New("period end before start")
	ErrNameTooShort         = errors.New("partner name too short")
	ErrInvalidTimezone      = errors.New("unsupported timezone")
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSessionNotFound = errors.New("onboarding session not found")
)

// IsValidation reports whether err was caused by bad user input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidDate,
		ErrInvalidClock,
		ErrInvalidCycleLength,
		ErrPeriodEndBeforeStart,
		ErrNameTooShort,
		ErrInvalidTimezone,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
