package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// OnboardingService drives the setup questionnaire and persists its result.
type OnboardingService struct {
	sessions  SessionStorage
	profiles  ProfileRepository
	periods   PeriodRepository
	defaultTZ string
	logger    *zap.Logger
}

func NewOnboardingService(
	sessions SessionStorage,
	profiles ProfileRepository,
	periods PeriodRepository,
	defaultTZ string,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		sessions:  sessions,
		profiles:  profiles,
		periods:   periods,
		defaultTZ: defaultTZ,
		logger:    logger,
	}
}

// Start opens a fresh session, discarding any unfinished one.
func (s *OnboardingService) Start(chatID int64, now time.Time) *entities.OnboardingSession {
	session := entities.NewOnboardingSession(chatID, now)
	s.sessions.Store(session)

	s.logger.Debug("onboarding started", zap.Int64("chat_id", chatID))

	return session
}

// Active returns the chat's open session, if any.
func (s *OnboardingService) Active(chatID int64) (*entities.OnboardingSession, bool) {
	return s.sessions.Get(chatID)
}

// Cancel discards the session and reports whether one was open.
func (s *OnboardingService) Cancel(chatID int64) bool {
	if _, ok := s.sessions.Get(chatID); !ok {
		return false
	}
	s.sessions.Delete(chatID)
	return true
}

// Answer applies text to the current step.
//
// A validation error leaves the session where it was. When the last step is
// answered the profile is saved and returned, and the session is discarded.
func (s *OnboardingService) Answer(
	ctx context.Context,
	chatID int64,
	text string,
	now time.Time,
) (*entities.OnboardingSession, *entities.Profile, error) {
	session, ok := s.sessions.Get(chatID)
	if !ok {
		return nil, nil, entities.ErrSessionNotFound
	}

	if err := session.Apply(text); err != nil {
		return session, nil, err
	}

	if !session.Done() {
		s.sessions.Store(session)
		return session, nil, nil
	}

	profile, err := s.complete(ctx, session, now)
	if err != nil {
		return nil, nil, err
	}

	return session, profile, nil
}

func (s *OnboardingService) complete(
	ctx context.Context,
	session *entities.OnboardingSession,
	now time.Time,
) (*entities.Profile, error) {
	tz := s.defaultTZ
	createdAt := now

	prev, err := s.profiles.Get(ctx, session.ChatID)
	switch {
	case err == nil:
		if prev.Timezone != "" {
			tz = prev.Timezone
		}
		createdAt = prev.CreatedAt
	case !errors.Is(err, entities.ErrProfileNotFound):
		return nil, fmt.Errorf("get previous profile: %w", err)
	}

	profile := session.Profile(tz, now)
	profile.CreatedAt = createdAt

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if err := s.profiles.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	logPeriod(ctx, s.periods, s.logger, profile, now)
	s.sessions.Delete(session.ChatID)

	s.logger.Info("onboarding completed",
		zap.Int64("chat_id", session.ChatID),
		zap.Int("cycle_length", profile.CycleLength),
		zap.String("timezone", profile.Timezone),
		zap.Duration("took", now.Sub(session.StartedAt)),
	)

	return profile, nil
}
