package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// handleMessage routes a message. Commands always win, then an open
// onboarding session, then onboarding for unknown chats, then menu labels.
func (h *Handler) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	if m.IsCommand() {
		h.handleCommand(ctx, chatID, m.Command(), m.CommandArguments())
		return
	}

	text := strings.TrimSpace(m.Text)

	if _, ok := h.onboardingService.Active(chatID); ok {
		_ = h.withErrorHandling(h.handleOnboardingAnswer(text))(ctx, chatID)
		return
	}

	switch text {
	case btnToday:
		_ = h.withErrorHandling(h.withProfile(h.handleToday))(ctx, chatID)
	case btnForecast:
		_ = h.withErrorHandling(h.withProfile(h.handleForecast))(ctx, chatID)
	case btnSettings:
		_ = h.withErrorHandling(h.withProfile(h.handleSettings))(ctx, chatID)
	case btnAbout:
		_ = h.withErrorHandling(h.withProfile(h.handleAbout))(ctx, chatID)
	default:
		_ = h.withErrorHandling(h.withProfile(h.handleFallback))(ctx, chatID)
	}
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, command, args string) {
	h.logger.Debug("command received",
		zap.Int64("chat_id", chatID),
		zap.String("command", command),
	)

	var fn HandlerFunc

	switch command {
	case "start":
		fn = h.handleStart
	case "re_onboard":
		fn = h.startOnboarding
	case "cancel":
		fn = h.handleCancel
	case "help":
		fn = h.handleHelp
	case "today":
		fn = h.withProfile(h.handleToday)
	case "forecast":
		fn = h.withProfile(h.handleForecast)
	case "about":
		fn = h.withProfile(h.handleAbout)
	case "settings":
		fn = h.withProfile(h.handleSettings)
	case "set_time":
		fn = h.withProfile(h.handleSetTime(args))
	case "set_cycle":
		fn = h.withProfile(h.handleSetCycle(args))
	case "update_period":
		fn = h.withProfile(h.handleUpdatePeriod(args))
	case "set_timezone":
		fn = h.withProfile(h.handleSetTimezone(args))
	case "pause":
		fn = h.withProfile(h.handlePause(true))
	case "resume":
		fn = h.withProfile(h.handlePause(false))
	case "reset":
		fn = h.handleResetPrompt
	default:
		fn = func(ctx context.Context, chatID int64) error {
			return h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

type profileHandlerFunc func(ctx context.Context, chatID int64, p *entities.Profile) error

// withProfile loads the chat's profile. Without one the chat is sent to
// onboarding, and an unfinished session is resumed rather than restarted.
func (h *Handler) withProfile(fn profileHandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p, err := h.profileService.Get(ctx, chatID)
		if err != nil {
			return err
		}
		if p == nil {
			return h.resumeOnboarding(ctx, chatID)
		}
		return fn(ctx, chatID, p)
	}
}

func (h *Handler) handleStart(ctx context.Context, chatID int64) error {
	p, err := h.profileService.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if p == nil {
		return h.startOnboarding(ctx, chatID)
	}

	// An existing profile is only replaced through /re_onboard.
	h.onboardingService.Cancel(chatID)

	return h.send(newMenuMessage(chatID, h.renderToday(ctx, p)))
}

func (h *Handler) handleHelp(_ context.Context, chatID int64) error {
	return h.send(newMenuMessage(chatID, msgHelp))
}

func (h *Handler) handleToday(ctx context.Context, chatID int64, p *entities.Profile) error {
	return h.send(newMenuMessage(chatID, h.renderToday(ctx, p)))
}

func (h *Handler) handleForecast(_ context.Context, chatID int64, p *entities.Profile) error {
	now := h.now().In(h.profileService.Location(p))
	return h.send(newMenuMessage(chatID, RenderForecast(p, now, forecastDays)))
}

func (h *Handler) handleAbout(ctx context.Context, chatID int64, p *entities.Profile) error {
	now := h.now().In(h.profileService.Location(p))
	return h.send(newMenuMessage(chatID, RenderAbout(p, now, h.copyService.Snapshot(ctx))))
}

func (h *Handler) handleFallback(_ context.Context, chatID int64, _ *entities.Profile) error {
	return h.send(newMenuMessage(chatID, msgFallback))
}

func (h *Handler) renderToday(ctx context.Context, p *entities.Profile) string {
	now := h.now().In(h.profileService.Location(p))
	return RenderToday(p, now, h.copyService.Snapshot(ctx))
}
