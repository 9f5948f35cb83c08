package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingSessionHappyPath(t *testing.T) {
	now := time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)
	s := NewOnboardingSession(42, now)

	for _, in := range []string{"Anna", "skip", "2025-01-01", "2025-01-05", "28", "09:00"} {
		require.False(t, s.Done())
		require.NoError(t, s.Apply(in), "input %q", in)
	}
	require.True(t, s.Done())

	p := s.Profile("Europe/Stockholm", now)
	require.NoError(t, p.Validate())

	assert.Equal(t, int64(42), p.ChatID)
	assert.Equal(t, "Anna", p.PartnerName)
	assert.Nil(t, p.PartnerDOB)
	assert.Equal(t, NewDate(2025, time.January, 1), p.PeriodStart)
	require.NotNil(t, p.PeriodEnd)
	assert.Equal(t, NewDate(2025, time.January, 5), *p.PeriodEnd)
	assert.Equal(t, 28, p.CycleLength)
	assert.Equal(t, Clock{Hour: 9}, p.NotifyTime)
	assert.False(t, p.Paused)
	assert.Nil(t, p.LastNotifiedDate)
	assert.Equal(t, 5, p.PeriodLength())
}

func TestOnboardingSessionRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		prefix  []string
		input   string
		step    OnboardingStep
		wantErr error
	}{
		{name: "short nickname", input: "A", step: StepNickname, wantErr: ErrNameTooShort},
		{name: "blank nickname", input: "   ", step: StepNickname, wantErr: ErrNameTooShort},
		{name: "bad dob", prefix: []string{"Anna"}, input: "yesterday", step: StepDOB, wantErr: ErrInvalidDate},
		{name: "bad period start", prefix: []string{"Anna", "skip"}, input: "2025-13-40", step: StepPeriodStart, wantErr: ErrInvalidDate},
		{name: "end before start", prefix: []string{"Anna", "skip", "2025-01-10"}, input: "2025-01-05", step: StepPeriodEnd, wantErr: ErrPeriodEndBeforeStart},
		{name: "cycle not a number", prefix: []string{"Anna", "skip", "2025-01-01", "skip"}, input: "about 28", step: StepCycleLength, wantErr: ErrInvalidCycleLength},
		{name: "cycle too short", prefix: []string{"Anna", "skip", "2025-01-01", "skip"}, input: "20", step: StepCycleLength, wantErr: ErrInvalidCycleLength},
		{name: "cycle too long", prefix: []string{"Anna", "skip", "2025-01-01", "skip"}, input: "36", step: StepCycleLength, wantErr: ErrInvalidCycleLength},
		{name: "bad time", prefix: []string{"Anna", "skip", "2025-01-01", "skip", "28"}, input: "25:00", step: StepNotifyTime, wantErr: ErrInvalidClock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOnboardingSession(1, time.Now())
			for _, in := range tt.prefix {
				require.NoError(t, s.Apply(in))
			}
			before := *s

			err := s.Apply(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.step, s.Step)
			assert.Equal(t, before, *s)
		})
	}
}

func TestOnboardingSessionSkipIsCaseInsensitive(t *testing.T) {
	s := NewOnboardingSession(1, time.Now())
	require.NoError(t, s.Apply("Anna"))
	require.NoError(t, s.Apply("SKIP"))
	assert.Nil(t, s.PartnerDOB)
	assert.Equal(t, StepPeriodStart, s.Step)
}

func TestOnboardingSessionSameDayPeriod(t *testing.T) {
	s := NewOnboardingSession(1, time.Now())
	for _, in := range []string{"Anna", "1990-05-17", "2025-01-01", "2025-01-01"} {
		require.NoError(t, s.Apply(in))
	}
	require.NotNil(t, s.PartnerDOB)
	assert.Equal(t, NewDate(1990, time.May, 17), *s.PartnerDOB)
	assert.Equal(t, StepCycleLength, s.Step)
}

func TestProfileValidate(t *testing.T) {
	end := NewDate(2025, time.January, 4)
	valid := Profile{
		PartnerName: "Anna",
		PeriodStart: NewDate(2025, time.January, 1),
		PeriodEnd:   &end,
		CycleLength: 28,
		NotifyTime:  Clock{Hour: 9},
	}
	require.NoError(t, valid.Validate())
	assert.Equal(t, 4, valid.PeriodLength())

	p := valid
	p.CycleLength = 40
	assert.ErrorIs(t, p.Validate(), ErrInvalidCycleLength)

	p = valid
	early := NewDate(2024, time.December, 30)
	p.PeriodEnd = &early
	assert.ErrorIs(t, p.Validate(), ErrPeriodEndBeforeStart)

	p = valid
	p.NotifyTime = Clock{Hour: 24}
	assert.ErrorIs(t, p.Validate(), ErrInvalidClock)
}

func TestProfileTouchResetsMarker(t *testing.T) {
	day := NewDate(2025, time.January, 2)
	p := Profile{LastNotifiedDate: &day}
	require.True(t, p.NotifiedOn(day))

	now := time.Now()
	p.Touch(now)
	assert.False(t, p.NotifiedOn(day))
	assert.Equal(t, now, p.UpdatedAt)
}
