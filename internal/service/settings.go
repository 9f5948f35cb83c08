package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// ProfileService reads profiles and applies settings edits.
type ProfileService struct {
	profiles   ProfileRepository
	periods    PeriodRepository
	defaultLoc *time.Location
	logger     *zap.Logger
}

func NewProfileService(
	profiles ProfileRepository,
	periods PeriodRepository,
	defaultLoc *time.Location,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profiles:   profiles,
		periods:    periods,
		defaultLoc: defaultLoc,
		logger:     logger,
	}
}

// Get returns the chat's profile, or nil when the chat has not onboarded yet.
func (s *ProfileService) Get(ctx context.Context, chatID int64) (*entities.Profile, error) {
	p, err := s.profiles.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, entities.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Location resolves the profile timezone, falling back to the default zone.
func (s *ProfileService) Location(p *entities.Profile) *time.Location {
	return resolveLocation(p, s.defaultLoc, s.logger)
}

func (s *ProfileService) SetNotifyTime(ctx context.Context, chatID int64, t entities.Clock, now time.Time) (*entities.Profile, error) {
	return s.edit(ctx, chatID, now, func(p *entities.Profile) error {
		p.NotifyTime = t
		return nil
	})
}

func (s *ProfileService) SetCycleLength(ctx context.Context, chatID int64, n int, now time.Time) (*entities.Profile, error) {
	if err := entities.ValidateCycleLength(n); err != nil {
		return nil, err
	}

	return s.edit(ctx, chatID, now, func(p *entities.Profile) error {
		p.CycleLength = n
		return nil
	})
}

// UpdatePeriod replaces the last period and appends it to the history.
func (s *ProfileService) UpdatePeriod(
	ctx context.Context,
	chatID int64,
	start entities.Date,
	end *entities.Date,
	now time.Time,
) (*entities.Profile, error) {
	if err := entities.ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	p, err := s.edit(ctx, chatID, now, func(p *entities.Profile) error {
		p.PeriodStart = start
		p.PeriodEnd = end
		return nil
	})
	if err != nil {
		return nil, err
	}

	logPeriod(ctx, s.periods, s.logger, p, now)

	return p, nil
}

// PeriodHistory returns up to limit logged periods, newest first.
func (s *ProfileService) PeriodHistory(ctx context.Context, chatID int64, limit int) ([]entities.PeriodRecord, error) {
	if s.periods == nil {
		return nil, nil
	}

	recs, err := s.periods.Periods(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("period history: %w", err)
	}

	slices.Reverse(recs)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	return recs, nil
}

// SetTimezone stores the normalized zone name.
func (s *ProfileService) SetTimezone(ctx context.Context, chatID int64, tz string, now time.Time) (*entities.Profile, error) {
	name, err := entities.NormalizeTimezone(tz)
	if err != nil {
		return nil, err
	}

	return s.edit(ctx, chatID, now, func(p *entities.Profile) error {
		p.Timezone = name
		return nil
	})
}

// SetPaused toggles daily pings. The sent marker is kept, so resuming never repeats today's ping.
func (s *ProfileService) SetPaused(ctx context.Context, chatID int64, paused bool, now time.Time) (*entities.Profile, error) {
	p, err := s.profiles.Update(ctx, chatID, func(p *entities.Profile) error {
		p.Paused = paused
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set paused: %w", err)
	}

	s.logger.Info("daily ping toggled",
		zap.Int64("chat_id", chatID),
		zap.Bool("paused", paused),
	)

	return p, nil
}

func (s *ProfileService) edit(
	ctx context.Context,
	chatID int64,
	now time.Time,
	fn func(p *entities.Profile) error,
) (*entities.Profile, error) {
	p, err := s.profiles.Update(ctx, chatID, func(p *entities.Profile) error {
		if err := fn(p); err != nil {
			return err
		}
		p.Touch(now)
		return p.Validate()
	})
	if err != nil {
		if entities.IsValidation(err) || errors.Is(err, entities.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.Int64("chat_id", chatID))

	return p, nil
}

func resolveLocation(p *entities.Profile, fallback *time.Location, logger *zap.Logger) *time.Location {
	if p.Timezone == "" {
		return fallback
	}

	loc, err := entities.ParseTimezoneLocation(p.Timezone)
	if err != nil {
		logger.Warn("invalid profile timezone, using default",
			zap.Int64("chat_id", p.ChatID),
			zap.String("timezone", p.Timezone),
			zap.Error(err),
		)
		return fallback
	}

	return loc
}

// logPeriod appends to the history. History is informational, so failures are only logged.
func logPeriod(ctx context.Context, periods PeriodRepository, logger *zap.Logger, p *entities.Profile, now time.Time) {
	if periods == nil {
		return
	}

	rec := entities.PeriodRecord{
		ChatID:    p.ChatID,
		Start:     p.PeriodStart,
		End:       p.PeriodEnd,
		CreatedAt: now,
	}
	if err := periods.LogPeriod(ctx, rec); err != nil {
		logger.Warn("failed to log period",
			zap.Int64("chat_id", p.ChatID),
			zap.Error(err),
		)
	}
}
