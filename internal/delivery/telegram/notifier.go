package telegram

import (
	"context"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// SendDaily delivers the daily ping: the Today card with the menu keyboard.
// The caller records the day only when this returns nil.
func (h *Handler) SendDaily(ctx context.Context, p *entities.Profile) error {
	return h.send(newMenuMessage(p.ChatID, h.renderToday(ctx, p)))
}
