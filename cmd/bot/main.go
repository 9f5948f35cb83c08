package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/daycue-bot/internal/config"
	"github.com/aliskhannn/daycue-bot/internal/delivery/telegram"
	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
	"github.com/aliskhannn/daycue-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/daycue-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/daycue-bot/internal/infra/sqlite"
	"github.com/aliskhannn/daycue-bot/internal/logger"
	"github.com/aliskhannn/daycue-bot/internal/repository"
	"github.com/aliskhannn/daycue-bot/internal/service"
	"github.com/aliskhannn/daycue-bot/internal/storage"
)

// stores groups the persistence chosen by storage.driver.
type stores struct {
	profiles service.ProfileRepository
	periods  service.PeriodRepository
	copy     service.CopyRepository
	close    func()
}

func main() {
	os.Exit(start())
}

// start returns the process exit code. It runs every deferred cleanup
// (store close, logger sync) before main exits.
func start() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return 1
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("bot stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	defaultLoc, err := entities.ParseTimezoneLocation(cfg.Timezone.Default)
	if err != nil {
		return fmt.Errorf("default timezone: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("telegram auth: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.BotCommands()...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}

	log.Info("authorized",
		zap.String("account", bot.Self.UserName),
		zap.String("storage", cfg.Storage.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	sessions := storage.NewOnboardingStorage()

	profileService := service.NewProfileService(st.profiles, st.periods, defaultLoc, log)
	onboardingService := service.NewOnboardingService(sessions, st.profiles, st.periods, cfg.Timezone.Default, log)
	resetService := service.NewResetService(st.profiles, sessions, log)
	copyService := service.NewCopyService(st.copy, cfg.Copy.CacheTTL, log)
	notifierService := service.NewNotifierService(st.profiles, cfg.Notifier.Interval, defaultLoc, log)

	handler := telegram.NewHandler(
		bot,
		log,
		profileService,
		onboardingService,
		resetService,
		copyService,
	)
	notifierService.SetNotifier(handler)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(ctx) })
	g.Go(func() error { return notifierService.Start(ctx) })

	err = g.Wait()
	log.Info("shutdown complete")
	return err
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		repo := repository.NewProfileRepository()
		return &stores{profiles: repo, periods: repo, close: func() {}}, nil

	case config.DriverJSON:
		repo, err := repository.NewJSONProfileRepository(cfg.Storage.JSONPath)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return &stores{profiles: repo, periods: repo, close: func() {}}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLiteDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return &stores{profiles: store, periods: store, close: func() { _ = store.Close() }}, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}

		tr := postgres.NewTransactor(pool)
		return &stores{
			profiles: pgrepo.NewProfileRepository(pool, tr),
			periods:  pgrepo.NewPeriodRepository(pool),
			copy:     pgrepo.NewCopyRepository(pool),
			close:    pool.Close,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
}
