package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-01", want: NewDate(2025, time.January, 1)},
		{in: " 2024-02-29 ", want: NewDate(2024, time.February, 29)},
		{in: "2025-1-5", want: NewDate(2025, time.January, 5)},
		{in: "2025-13-40", wantErr: true},
		{in: "2025-02-30", wantErr: true},
		{in: "2023-02-29", wantErr: true},
		{in: "01-01-2025", wantErr: true},
		{in: "2025/01/01", wantErr: true},
		{in: "skip", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d := NewDate(2020, time.January, 1)
	for i := 0; i < 3*366; i++ {
		got, err := ParseDate(d.String())
		require.NoError(t, err)
		require.Equal(t, d, got)
		d = d.AddDays(1)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: Clock{Hour: 9}},
		{in: "9:00", want: Clock{Hour: 9}},
		{in: "23:59", want: Clock{Hour: 23, Minute: 59}},
		{in: "0:05", want: Clock{Minute: 5}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9:5", wantErr: true},
		{in: "0900", wantErr: true},
		{in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClockRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			c := Clock{Hour: h, Minute: m}
			got, err := ParseClock(c.String())
			require.NoError(t, err)
			require.Equal(t, c, got)
		}
	}
}

func TestCycleDay(t *testing.T) {
	start := NewDate(2025, time.January, 1)

	assert.Equal(t, 1, CycleDay(start, start, 28))
	assert.Equal(t, 15, CycleDay(NewDate(2025, time.January, 15), start, 28))
	assert.Equal(t, 28, CycleDay(NewDate(2025, time.January, 28), start, 28))
	assert.Equal(t, 1, CycleDay(NewDate(2025, time.January, 29), start, 28))

	// Before the start date the cycle wraps backwards.
	assert.Equal(t, 28, CycleDay(NewDate(2024, time.December, 31), start, 28))
	assert.Equal(t, 21, CycleDay(NewDate(2024, time.December, 24), start, 28))
}

func TestCycleDayPeriodic(t *testing.T) {
	start := NewDate(2025, time.March, 10)
	for l := MinCycleLength; l <= MaxCycleLength; l++ {
		for k := -5; k <= 5; k++ {
			require.Equal(t, 1, CycleDay(start.AddDays(k*l), start, l), "L=%d k=%d", l, k)
		}
		for delta := -100; delta <= 100; delta++ {
			day := CycleDay(start.AddDays(delta), start, l)
			require.GreaterOrEqual(t, day, 1)
			require.LessOrEqual(t, day, l)
		}
	}
}

func TestCycleDayLongSpans(t *testing.T) {
	start := NewDate(1700, time.January, 1)
	for _, k := range []int{4000, 5000, 10000} {
		d := start.AddDays(k * 28)
		require.Equal(t, k*28, d.DaysSince(start), "k=%d", k)
		require.Equal(t, 1, CycleDay(d, start, 28), "k=%d", k)
		require.Equal(t, 2, CycleDay(d.AddDays(1), start, 28), "k=%d", k)
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		D Date   `json:"d"`
		P *Date  `json:"p,omitempty"`
		C Clock  `json:"c"`
		N *Clock `json:"n,omitempty"`
	}

	p := NewDate(2025, time.January, 5)
	in := wrapper{D: NewDate(2025, time.January, 1), P: &p, C: Clock{Hour: 9}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-01-01","p":"2025-01-05","c":"09:00"}`, string(b))

	var out wrapper
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	require.Error(t, json.Unmarshal([]byte(`{"d":"2025-02-30"}`), &out))
}

func TestDateOfUsesLocation(t *testing.T) {
	ts := time.Date(2025, time.January, 1, 23, 30, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+03:00", 3*3600)

	assert.Equal(t, NewDate(2025, time.January, 1), DateOf(ts))
	assert.Equal(t, NewDate(2025, time.January, 2), DateOf(ts.In(loc)))
	assert.Equal(t, Clock{Hour: 2, Minute: 30}, ClockOf(ts.In(loc)))
}
