package service

import (
	"context"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// ProfileRepository is implemented by every profile backend.
type ProfileRepository interface {
	Get(ctx context.Context, chatID int64) (*entities.Profile, error)
	Put(ctx context.Context, profile *entities.Profile) error
	Delete(ctx context.Context, chatID int64) error
	List(ctx context.Context) ([]*entities.Profile, error)
	// Update applies fn to the stored profile as one atomic read-modify-write.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, chatID int64, fn func(p *entities.Profile) error) (*entities.Profile, error)
}

type PeriodRepository interface {
	LogPeriod(ctx context.Context, rec entities.PeriodRecord) error
	Periods(ctx context.Context, chatID int64) ([]entities.PeriodRecord, error)
}

type CopyRepository interface {
	Enabled(ctx context.Context, locale string) (map[string]string, error)
}

// SessionStorage keeps in-progress onboarding sessions.
type SessionStorage interface {
	Store(session *entities.OnboardingSession)
	Get(chatID int64) (*entities.OnboardingSession, bool)
	Delete(chatID int64)
}

// DailyNotifier delivers the daily card to a chat.
type DailyNotifier interface {
	SendDaily(ctx context.Context, profile *entities.Profile) error
}
