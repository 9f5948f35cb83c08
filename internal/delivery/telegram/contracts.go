package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type ProfileService interface {
	Get(ctx context.Context, chatID int64) (*entities.Profile, error)
	Location(p *entities.Profile) *time.Location
	SetNotifyTime(ctx context.Context, chatID int64, t entities.Clock, now time.Time) (*entities.Profile, error)
	SetCycleLength(ctx context.Context, chatID int64, n int, now time.Time) (*entities.Profile, error)
	UpdatePeriod(ctx context.Context, chatID int64, start entities.Date, end *entities.Date, now time.Time) (*entities.Profile, error)
	SetTimezone(ctx context.Context, chatID int64, tz string, now time.Time) (*entities.Profile, error)
	SetPaused(ctx context.Context, chatID int64, paused bool, now time.Time) (*entities.Profile, error)
	PeriodHistory(ctx context.Context, chatID int64, limit int) ([]entities.PeriodRecord, error)
}

type OnboardingService interface {
	Start(chatID int64, now time.Time) *entities.OnboardingSession
	Active(chatID int64) (*entities.OnboardingSession, bool)
	Cancel(chatID int64) bool
	Answer(ctx context.Context, chatID int64, text string, now time.Time) (*entities.OnboardingSession, *entities.Profile, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, chatID int64) error
}

type CopyService interface {
	Snapshot(ctx context.Context) entities.Copy
}
