package entities

import (
	"strconv"
	"strings"
	"time"
)

// OnboardingStep is a state of the setup questionnaire.
type OnboardingStep int

const (
	StepNickname OnboardingStep = iota
	StepDOB
	StepPeriodStart
	StepPeriodEnd
	StepCycleLength
	StepNotifyTime
	StepComplete
)

// SkipToken lets optional steps be left empty.
const SkipToken = "skip"

func (s OnboardingStep) String() string {
	switch s {
	case StepNickname:
		return "nickname"
	case StepDOB:
		return "dob"
	case StepPeriodStart:
		return "period_start"
	case StepPeriodEnd:
		return "period_end"
	case StepCycleLength:
		return "cycle_length"
	case StepNotifyTime:
		return "notify_time"
	case StepComplete:
		return "complete"
	}
	return "unknown"
}

// OnboardingSession holds answers collected so far for one chat.
type OnboardingSession struct {
	ChatID      int64
	Step        OnboardingStep
	PartnerName string
	PartnerDOB  *Date
	PeriodStart Date
	PeriodEnd   *Date
	CycleLength int
	NotifyTime  Clock
	StartedAt   time.Time
}

func NewOnboardingSession(chatID int64, now time.Time) *OnboardingSession {
	return &OnboardingSession{
		ChatID:    chatID,
		Step:      StepNickname,
		StartedAt: now,
	}
}

// Apply validates the answer for the current step and advances on success.
// On error the session is left untouched.
func (s *OnboardingSession) Apply(raw string) error {
	text := strings.TrimSpace(raw)

	switch s.Step {
	case StepNickname:
		if err := ValidatePartnerName(text); err != nil {
			return err
		}
		s.PartnerName = text

	case StepDOB:
		dob, err := parseOptionalDate(text)
		if err != nil {
			return err
		}
		s.PartnerDOB = dob

	case StepPeriodStart:
		start, err := ParseDate(text)
		if err != nil {
			return err
		}
		s.PeriodStart = start

	case StepPeriodEnd:
		end, err := parseOptionalDate(text)
		if err != nil {
			return err
		}
		if err := ValidatePeriod(s.PeriodStart, end); err != nil {
			return err
		}
		s.PeriodEnd = end

	case StepCycleLength:
		n, err := strconv.Atoi(text)
		if err != nil {
			return ErrInvalidCycleLength
		}
		if err := ValidateCycleLength(n); err != nil {
			return err
		}
		s.CycleLength = n

	case StepNotifyTime:
		c, err := ParseClock(text)
		if err != nil {
			return err
		}
		s.NotifyTime = c

	default:
		return nil
	}

	s.Step++
	return nil
}

func (s *OnboardingSession) Done() bool {
	return s.Step >= StepComplete
}

// Profile assembles the final profile. It must only be called once Done.
func (s *OnboardingSession) Profile(timezone string, now time.Time) *Profile {
	return &Profile{
		ChatID:      s.ChatID,
		PartnerName: s.PartnerName,
		PartnerDOB:  s.PartnerDOB,
		PeriodStart: s.PeriodStart,
		PeriodEnd:   s.PeriodEnd,
		CycleLength: s.CycleLength,
		NotifyTime:  s.NotifyTime,
		Timezone:    timezone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func parseOptionalDate(text string) (*Date, error) {
	if strings.EqualFold(text, SkipToken) {
		return nil, nil
	}
	d, err := ParseDate(text)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
