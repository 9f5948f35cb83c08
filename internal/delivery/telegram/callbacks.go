package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock" whatever happens below.
	defer h.answerCallback(cb, "")

	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	var fn HandlerFunc

	switch data.Action {
	case actionSettings:
		fn = h.handleSettingsCallback(msgID, data.param(0))
	case actionReset:
		fn = h.handleResetCallback(msgID, data.param(0))
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) handleSettingsCallback(msgID int, sub string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch sub {
		case settingsPause, settingsResume:
			p, err := h.profileService.SetPaused(ctx, chatID, sub == settingsPause, h.now())
			if errors.Is(err, entities.ErrProfileNotFound) {
				return h.resumeOnboarding(ctx, chatID)
			}
			if err != nil {
				return err
			}

			text, err := h.settingsText(ctx, p)
			if err != nil {
				return err
			}

			edit := newHTMLEdit(chatID, msgID, text)
			kb := buildSettingsKeyboard(p.Paused)
			edit.ReplyMarkup = &kb
			return h.send(edit)

		case settingsReOnboard:
			return h.startOnboarding(ctx, chatID)

		case settingsReset:
			edit := newHTMLEdit(chatID, msgID, msgResetConfirm)
			kb := buildResetConfirmKeyboard()
			edit.ReplyMarkup = &kb
			return h.send(edit)
		}

		h.logger.Warn("unknown settings callback", zap.String("sub", sub))
		return nil
	}
}

func (h *Handler) handleResetCallback(msgID int, sub string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch sub {
		case resetConfirm:
			if err := h.resetService.ResetUser(ctx, chatID); err != nil {
				return err
			}
			return h.send(newHTMLEdit(chatID, msgID, msgResetDone))

		case resetCancel:
			return h.send(newHTMLEdit(chatID, msgID, msgResetCancelled))
		}

		h.logger.Warn("unknown reset callback", zap.String("sub", sub))
		return nil
	}
}
