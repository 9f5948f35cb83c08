package entities

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinCycleLength      = 21
	MaxCycleLength      = 35
	MinPartnerNameLen   = 2
	DefaultPeriodLength = 5
)

// Profile is the persisted per-chat partner and cycle configuration.
type Profile struct {
	ChatID           int64     `json:"chat_id"`
	PartnerName      string    `json:"partner_name"`
	PartnerDOB       *Date     `json:"partner_dob,omitempty"`
	PeriodStart      Date      `json:"period_start"`
	PeriodEnd        *Date     `json:"period_end,omitempty"`
	CycleLength      int       `json:"cycle_length"`
	NotifyTime       Clock     `json:"notify_time"`
	Timezone         string    `json:"timezone"`
	Paused           bool      `json:"paused"`
	LastNotifiedDate *Date     `json:"last_notified_date,omitempty"` // day of the last confirmed daily ping
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Validate checks the profile invariants.
func (p *Profile) Validate() error {
	if err := ValidatePartnerName(p.PartnerName); err != nil {
		return err
	}
	if err := ValidateCycleLength(p.CycleLength); err != nil {
		return err
	}
	if err := ValidatePeriod(p.PeriodStart, p.PeriodEnd); err != nil {
		return err
	}
	if p.NotifyTime.Hour < 0 || p.NotifyTime.Hour > 23 || p.NotifyTime.Minute < 0 || p.NotifyTime.Minute > 59 {
		return fmt.Errorf("%w: %s", ErrInvalidClock, p.NotifyTime)
	}
	return nil
}

// PeriodLength is the inclusive length of the last period, or the default when the end is unknown.
func (p *Profile) PeriodLength() int {
	if p.PeriodEnd == nil {
		return DefaultPeriodLength
	}
	return max(1, p.PeriodEnd.DaysSince(p.PeriodStart)+1)
}

// Touch marks the profile as edited. Edits re-arm today's ping.
func (p *Profile) Touch(now time.Time) {
	p.LastNotifiedDate = nil
	p.UpdatedAt = now
}

// NotifiedOn reports whether the daily ping was already sent for day.
func (p *Profile) NotifiedOn(day Date) bool {
	return p.LastNotifiedDate != nil && *p.LastNotifiedDate == day
}

func ValidatePartnerName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinPartnerNameLen {
		return ErrNameTooShort
	}
	return nil
}

func ValidateCycleLength(n int) error {
	if n < MinCycleLength || n > MaxCycleLength {
		return fmt.Errorf("%w: %d", ErrInvalidCycleLength, n)
	}
	return nil
}

func ValidatePeriod(start Date, end *Date) error {
	if start.IsZero() {
		return fmt.Errorf("%w: empty period start", ErrInvalidDate)
	}
	if end != nil && end.Before(start) {
		return ErrPeriodEndBeforeStart
	}
	return nil
}
