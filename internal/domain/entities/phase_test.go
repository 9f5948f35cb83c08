package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsPartitionCycle(t *testing.T) {
	for l := MinCycleLength; l <= MaxCycleLength; l++ {
		for p := 1; p <= 10; p++ {
			b := Bounds(l, p)

			ranges := []Range{b.Menstrual, b.Follicular, b.Ovulatory, b.Luteal}
			next := 1
			for i, r := range ranges {
				require.Equal(t, next, r.Start, "L=%d P=%d range %d starts late or overlaps", l, p, i)
				require.GreaterOrEqual(t, r.Len(), 1, "L=%d P=%d range %d empty", l, p, i)
				next = r.End + 1
			}
			require.Equal(t, l+1, next, "L=%d P=%d ranges do not end at cycle length", l, p)

			ovLen := b.Ovulatory.Len()
			require.True(t, ovLen >= 2 && ovLen <= 3, "L=%d P=%d ovulatory spans %d days", l, p, ovLen)

			for d := 1; d <= l; d++ {
				dp := b.Day(d)
				require.True(t, b.Range(dp.Phase).Contains(d))
				require.GreaterOrEqual(t, dp.Position, 1)
				require.LessOrEqual(t, dp.Position, dp.Length)
				require.NotEmpty(t, dp.Advice)
			}
		}
	}
}

func TestPhaseForDayDefaultCycle(t *testing.T) {
	b := Bounds(28, 5)

	assert.Equal(t, Range{Start: 1, End: 5}, b.Menstrual)
	assert.Equal(t, Range{Start: 6, End: 12}, b.Follicular)
	assert.Equal(t, Range{Start: 13, End: 15}, b.Ovulatory)
	assert.Equal(t, Range{Start: 16, End: 28}, b.Luteal)

	day1 := PhaseForDay(1, 28, 5)
	assert.Equal(t, PhaseMenstrual, day1.Phase)
	assert.Equal(t, 1, day1.Position)
	assert.Equal(t, 5, day1.Length)

	day15 := PhaseForDay(15, 28, 5)
	assert.Equal(t, PhaseOvulatory, day15.Phase)
	assert.Equal(t, 3, day15.Position)
	assert.Equal(t, 3, day15.Length)
}

func TestBoundsClampPeriodLength(t *testing.T) {
	assert.Equal(t, 3, Bounds(28, 1).Menstrual.Len())
	assert.Equal(t, 8, Bounds(28, 12).Menstrual.Len())

	// A long period on a short cycle still leaves a follicular day.
	b := Bounds(21, 8)
	assert.Equal(t, Range{Start: 9, End: 9}, b.Follicular)
	assert.Equal(t, Range{Start: 10, End: 11}, b.Ovulatory)
}

func TestStatsFor(t *testing.T) {
	b := Bounds(28, 5)

	for d := 1; d <= 28; d++ {
		s := b.StatsFor(d)
		for _, stat := range []Stat{StatEnergy, StatMood, StatSocial, StatCravings, StatIrritability, StatFocus, StatLibido, StatAnxiety} {
			lvl := s.Level(stat)
			require.True(t, lvl >= 1 && lvl <= 5, "day %d %s=%d", d, stat, lvl)
		}
	}

	assert.Equal(t, 1, b.StatsFor(1).Energy)
	assert.Equal(t, 2, b.StatsFor(5).Energy)
	assert.Equal(t, 5, b.StatsFor(14).Libido)
	assert.Equal(t, 4, b.StatsFor(16).Irritability)
	assert.Equal(t, 5, b.StatsFor(28).Irritability)
	assert.Equal(t, 2, b.StatsFor(28).Mood)
}

func TestNextPhaseStart(t *testing.T) {
	b := Bounds(28, 5)

	day, phase, ok := b.NextPhaseStart(3)
	require.True(t, ok)
	assert.Equal(t, 6, day)
	assert.Equal(t, PhaseFollicular, phase)

	day, phase, ok = b.NextPhaseStart(14)
	require.True(t, ok)
	assert.Equal(t, 16, day)
	assert.Equal(t, PhaseLuteal, phase)

	_, _, ok = b.NextPhaseStart(20)
	assert.False(t, ok)
}

func TestCopyFallbacks(t *testing.T) {
	c := NewCopy(map[string]string{
		"help_luteal":    "Custom luteal help",
		"help_ovulatory": "",
	})

	assert.Equal(t, "Custom luteal help", c.Help(PhaseLuteal))
	assert.Contains(t, c.Help(PhaseOvulatory), "Compliments")
	assert.Contains(t, c.Description(PhaseMenstrual), "Menstrual phase")

	var zero Copy
	assert.Contains(t, zero.Description(PhaseFollicular), "Follicular phase")
}
