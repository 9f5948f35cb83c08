package entities

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout        = "2006-01-02"
	lenientDateLayout = "2006-1-2"
	clockLayout       = "15:04"

	secondsPerDay = 24 * 60 * 60
)

// Date is a calendar day without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing overflowing days the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate accepts YYYY-MM-DD; single-digit months and days are tolerated.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	t, err := time.Parse(lenientDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return DateOf(t), nil
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysSince returns the signed number of days from other to d.
// Both sides are UTC midnights, so whole seconds divide evenly into days.
func (d Date) DaysSince(other Date) int {
	return int((d.Time().Unix() - other.Time().Unix()) / secondsPerDay)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a local time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock accepts H:MM or HH:MM in 24-hour format.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)

	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ClockOf returns the wall-clock time of t truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CycleDay returns the 1-based day of the cycle containing today.
// Dates before start wrap backwards, so the result is always in [1, cycleLength].
func CycleDay(today, start Date, cycleLength int) int {
	if cycleLength <= 0 {
		return 1
	}

	delta := today.DaysSince(start)
	return ((delta%cycleLength)+cycleLength)%cycleLength + 1
}
