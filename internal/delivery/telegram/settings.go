package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

const settingsHistoryLen = 3

func (h *Handler) handleSettings(ctx context.Context, chatID int64, p *entities.Profile) error {
	text, err := h.settingsText(ctx, p)
	if err != nil {
		return err
	}

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = buildSettingsKeyboard(p.Paused)
	return h.send(msg)
}

// settingsText renders the settings screen with the latest logged periods.
func (h *Handler) settingsText(ctx context.Context, p *entities.Profile) (string, error) {
	history, err := h.profileService.PeriodHistory(ctx, p.ChatID, settingsHistoryLen)
	if err != nil {
		return "", err
	}
	return buildSettingsText(p, history), nil
}

func buildSettingsText(p *entities.Profile, history []entities.PeriodRecord) string {
	dob := "-"
	if p.PartnerDOB != nil {
		dob = p.PartnerDOB.String()
	}
	end := "-"
	if p.PeriodEnd != nil {
		end = p.PeriodEnd.String()
	}
	ping := "on"
	if p.Paused {
		ping = "paused"
	}
	tz := p.Timezone
	if tz == "" {
		tz = "default"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		"<b>⚙️ Settings</b>\n\n"+
			"👤 <b>Partner:</b> %s\n"+
			"🎂 <b>DOB:</b> %s\n"+
			"🩸 <b>Last period:</b> %s .. %s\n"+
			"🔁 <b>Cycle length:</b> %d days\n"+
			"⏰ <b>Daily ping:</b> %s (%s)\n"+
			"🌍 <b>Timezone:</b> %s\n",
		html(p.PartnerName),
		dob,
		p.PeriodStart, end,
		p.CycleLength,
		p.NotifyTime, ping,
		html(tz),
	)

	if len(history) > 0 {
		sb.WriteString("\n<b>🗓 Logged periods</b>\n")
		for _, rec := range history {
			if rec.End != nil {
				fmt.Fprintf(&sb, "• %s .. %s\n", rec.Start, rec.End)
			} else {
				fmt.Fprintf(&sb, "• %s\n", rec.Start)
			}
		}
	}

	sb.WriteString("\nChange with /set_time, /set_cycle, /update_period or /set_timezone.")
	return sb.String()
}

// replyEdited confirms a settings change and shows the refreshed card.
func (h *Handler) replyEdited(ctx context.Context, chatID int64, head string, p *entities.Profile, err error) error {
	switch {
	case errors.Is(err, entities.ErrProfileNotFound):
		return h.resumeOnboarding(ctx, chatID)
	case err != nil:
		return err
	}
	return h.send(newMenuMessage(chatID, head+"\n\n"+h.renderToday(ctx, p)))
}

func (h *Handler) handleSetTime(args string) profileHandlerFunc {
	return func(ctx context.Context, chatID int64, _ *entities.Profile) error {
		arg := strings.TrimSpace(args)
		if arg == "" {
			return h.send(newHTMLMessage(chatID, usageSetTime))
		}

		t, err := entities.ParseClock(arg)
		if err != nil {
			return h.send(newHTMLMessage(chatID, errTimeFormat))
		}

		p, err := h.profileService.SetNotifyTime(ctx, chatID, t, h.now())
		return h.replyEdited(ctx, chatID, msgUpdated, p, err)
	}
}

func (h *Handler) handleSetCycle(args string) profileHandlerFunc {
	return func(ctx context.Context, chatID int64, _ *entities.Profile) error {
		arg := strings.TrimSpace(args)
		if arg == "" {
			return h.send(newHTMLMessage(chatID, usageSetCycle))
		}

		n, err := strconv.Atoi(arg)
		if err != nil || entities.ValidateCycleLength(n) != nil {
			return h.send(newHTMLMessage(chatID, errCycleRange))
		}

		p, err := h.profileService.SetCycleLength(ctx, chatID, n, h.now())
		if errors.Is(err, entities.ErrInvalidCycleLength) {
			return h.send(newHTMLMessage(chatID, errCycleRange))
		}
		return h.replyEdited(ctx, chatID, msgUpdated, p, err)
	}
}

func (h *Handler) handleUpdatePeriod(args string) profileHandlerFunc {
	return func(ctx context.Context, chatID int64, _ *entities.Profile) error {
		fields := strings.Fields(args)
		if len(fields) == 0 || len(fields) > 2 {
			return h.send(newHTMLMessage(chatID, usageUpdatePeriod))
		}

		start, err := entities.ParseDate(fields[0])
		if err != nil {
			return h.send(newHTMLMessage(chatID, errDateFormat))
		}

		var end *entities.Date
		if len(fields) == 2 {
			d, err := entities.ParseDate(fields[1])
			if err != nil {
				return h.send(newHTMLMessage(chatID, errDateFormat))
			}
			end = &d
		}

		p, err := h.profileService.UpdatePeriod(ctx, chatID, start, end, h.now())
		if errors.Is(err, entities.ErrPeriodEndBeforeStart) {
			return h.send(newHTMLMessage(chatID, errEndBeforeStart))
		}
		return h.replyEdited(ctx, chatID, msgPeriodUpdated, p, err)
	}
}

func (h *Handler) handleSetTimezone(args string) profileHandlerFunc {
	return func(ctx context.Context, chatID int64, _ *entities.Profile) error {
		arg := strings.TrimSpace(args)
		if arg == "" {
			return h.send(newHTMLMessage(chatID, usageSetTimezone))
		}

		p, err := h.profileService.SetTimezone(ctx, chatID, arg, h.now())
		if errors.Is(err, entities.ErrInvalidTimezone) {
			return h.send(newHTMLMessage(chatID, errTimezone))
		}
		return h.replyEdited(ctx, chatID, msgUpdated, p, err)
	}
}

func (h *Handler) handlePause(paused bool) profileHandlerFunc {
	return func(ctx context.Context, chatID int64, _ *entities.Profile) error {
		if _, err := h.profileService.SetPaused(ctx, chatID, paused, h.now()); err != nil {
			if errors.Is(err, entities.ErrProfileNotFound) {
				return h.resumeOnboarding(ctx, chatID)
			}
			return err
		}

		text := msgResumed
		if paused {
			text = msgPaused
		}
		return h.send(newMenuMessage(chatID, text))
	}
}

func (h *Handler) handleResetPrompt(_ context.Context, chatID int64) error {
	msg := newHTMLMessage(chatID, msgResetConfirm)
	msg.ReplyMarkup = buildResetConfirmKeyboard()
	return h.send(msg)
}
