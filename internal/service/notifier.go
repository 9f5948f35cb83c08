package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// NotifierService sends the daily card at each profile's local notify time.
type NotifierService struct {
	profiles   ProfileRepository
	notifier   DailyNotifier
	interval   time.Duration
	defaultLoc *time.Location
	logger     *zap.Logger
}

// NewNotifierService creates a new notifier service.
func NewNotifierService(
	profiles ProfileRepository,
	interval time.Duration,
	defaultLoc *time.Location,
	logger *zap.Logger,
) *NotifierService {
	return &NotifierService{
		profiles:   profiles,
		interval:   interval,
		defaultLoc: defaultLoc,
		logger:     logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *NotifierService) SetNotifier(notifier DailyNotifier) {
	s.notifier = notifier
}

// Start runs a tick every interval until ctx is cancelled.
// A tick that is still running when the next one is due causes that one to be skipped.
func (s *NotifierService) Start(ctx context.Context) error {
	if s.notifier == nil {
		return errors.New("notifier not initialized")
	}

	logger := cronLogger{s.logger.Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.Tick(ctx, time.Now())
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("notifier started", zap.Duration("interval", s.interval))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("notifier stopped")

	return nil
}

// Tick scans every profile once and returns how many cards were sent.
// Errors are isolated per profile.
func (s *NotifierService) Tick(ctx context.Context, now time.Time) int {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		s.logger.Error("failed to list profiles", zap.Error(err))
		return 0
	}

	sent := 0
	for _, p := range profiles {
		if ctx.Err() != nil {
			break
		}

		ok, err := s.checkProfile(ctx, p, now)
		if err != nil {
			s.logger.Error("failed to process daily ping",
				zap.Int64("chat_id", p.ChatID),
				zap.Error(err),
			)
			continue
		}
		if ok {
			sent++
		}
	}

	if sent > 0 {
		s.logger.Info("daily pings sent", zap.Int("sent", sent))
	}

	return sent
}

// checkProfile sends the card when the local clock matches the notify time and
// nothing was sent yet for the local day. The marker is written only after a
// successful send.
func (s *NotifierService) checkProfile(ctx context.Context, p *entities.Profile, now time.Time) (bool, error) {
	if p.Paused {
		return false, nil
	}

	local := now.In(resolveLocation(p, s.defaultLoc, s.logger))
	today := entities.DateOf(local)

	if entities.ClockOf(local) != p.NotifyTime || p.NotifiedOn(today) {
		return false, nil
	}

	if err := s.notifier.SendDaily(ctx, p); err != nil {
		return false, fmt.Errorf("send daily: %w", err)
	}

	_, err := s.profiles.Update(ctx, p.ChatID, func(cur *entities.Profile) error {
		// An edit since List() re-armed the ping and the card sent was
		// rendered from the old settings, so leave the marker clear.
		if !cur.UpdatedAt.Equal(p.UpdatedAt) {
			return nil
		}
		if !cur.NotifiedOn(today) {
			cur.LastNotifiedDate = &today
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrProfileNotFound) {
			// Reset while the card was in flight.
			return true, nil
		}
		return true, fmt.Errorf("mark notified: %w", err)
	}

	s.logger.Debug("daily ping sent",
		zap.Int64("chat_id", p.ChatID),
		zap.Stringer("date", today),
	)

	return true, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
