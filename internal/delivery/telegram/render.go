package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

const forecastDays = 7

type statRow struct {
	stat  entities.Stat
	label string
	emoji string
}

var statRows = []statRow{
	{entities.StatEnergy, "Energy", "⚡"},
	{entities.StatMood, "Mood", "🎭"},
	{entities.StatSocial, "Social", "🗣️"},
	{entities.StatCravings, "Cravings", "🍫"},
	{entities.StatIrritability, "Irritability", "💢"},
	{entities.StatFocus, "Focus", "🧠"},
	{entities.StatLibido, "Libido", "💕"},
	{entities.StatAnxiety, "Anxiety", "🔥"},
}

// RenderToday renders the daily card. now must already be in the profile's zone.
func RenderToday(p *entities.Profile, now time.Time, c entities.Copy) string {
	today := entities.DateOf(now)
	bounds := entities.Bounds(p.CycleLength, p.PeriodLength())

	day := entities.CycleDay(today, p.PeriodStart, p.CycleLength)
	dp := bounds.Day(day)
	prev := bounds.StatsFor(entities.CycleDay(today.AddDays(-1), p.PeriodStart, p.CycleLength))

	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>TODAY: %s</b>\n", html(p.PartnerName))
	fmt.Fprintf(&sb, "Cycle day: <b>%d/%d</b>\n", day, p.CycleLength)
	fmt.Fprintf(&sb, "Phase: <b>%s</b> (%d/%d) %s\n", dp.Phase.Title(), dp.Position, dp.Length, dp.Phase.Emoji())
	fmt.Fprintf(&sb, "Daily ping: <b>%s</b> (%s)", p.NotifyTime, html(displayZone(p, now)))
	if p.Paused {
		sb.WriteString(" ⏸ paused")
	}
	sb.WriteString("\n\n")

	sb.WriteString("<b>STATS</b>\n")
	for _, row := range statRows {
		cur, was := dp.Stats.Level(row.stat), prev.Level(row.stat)
		fmt.Fprintf(&sb, "%s %s: %s %s\n", row.emoji, row.label, bar(cur), arrow(cur, was))
	}

	sb.WriteString("\n<b>🫶 How to help</b>\n")
	fmt.Fprintf(&sb, "• %s", html(c.Help(dp.Phase)))
	for _, tip := range dp.Advice {
		fmt.Fprintf(&sb, "\n• %s", html(tip))
	}

	if next, phase, ok := bounds.NextPhaseStart(day); ok {
		fmt.Fprintf(&sb, "\n\n⏭ Next change: %s - %s %s", today.AddDays(next-day), phase.Title(), phase.Emoji())
	}

	return sb.String()
}

// RenderForecast lists the next days and the days on which the phase switches.
func RenderForecast(p *entities.Profile, now time.Time, days int) string {
	if days <= 0 {
		days = forecastDays
	}

	today := entities.DateOf(now)
	bounds := entities.Bounds(p.CycleLength, p.PeriodLength())

	lines := []string{fmt.Sprintf("<b>Forecast: next %d days</b> (%s)\n", days, html(p.PartnerName))}
	var changes []string
	var last entities.Phase

	for i := 0; i < days; i++ {
		d := today.AddDays(i)
		cd := entities.CycleDay(d, p.PeriodStart, p.CycleLength)
		phase := bounds.PhaseOf(cd)

		if i > 0 && phase != last {
			changes = append(changes, fmt.Sprintf("• %s - switches to %s %s", d, phase.Title(), phase.Emoji()))
		}
		last = phase

		st := bounds.StatsFor(cd)
		lines = append(lines, fmt.Sprintf(
			"%s · Day %d/%d · %s %s ⚡%d 🎭%d 🗣️%d 🍫%d",
			d, cd, p.CycleLength, phase.Title(), phase.Emoji(),
			st.Energy, st.Mood, st.Social, st.Cravings,
		))
	}

	lines = append(lines, "\n<b>Important change points</b>")
	if len(changes) == 0 {
		lines = append(lines, "• No phase switch within this window.")
	} else {
		lines = append(lines, changes...)
	}

	return strings.Join(lines, "\n")
}

// RenderAbout describes the current phase.
func RenderAbout(p *entities.Profile, now time.Time, c entities.Copy) string {
	today := entities.DateOf(now)
	day := entities.CycleDay(today, p.PeriodStart, p.CycleLength)
	dp := entities.PhaseForDay(day, p.CycleLength, p.PeriodLength())

	return fmt.Sprintf(
		"<b>About phase: %s %s</b>\n\nDay %d of %d in this phase.\n\n%s",
		dp.Phase.Title(),
		dp.Phase.Emoji(),
		dp.Position,
		dp.Length,
		html(c.Description(dp.Phase)),
	)
}

func bar(level int) string {
	level = min(max(level, 1), 5)
	return strings.Repeat("▰", level) + strings.Repeat("▱", 5-level)
}

func arrow(cur, prev int) string {
	switch {
	case cur > prev:
		return "↗"
	case cur < prev:
		return "↘"
	}
	return "→"
}

func displayZone(p *entities.Profile, now time.Time) string {
	tz := p.Timezone
	if tz == "" {
		tz = now.Location().String()
	}
	return strings.ReplaceAll(tz, "_", " ")
}

func html(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}
