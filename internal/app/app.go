package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/classbot/internal/config"
	"github.com/Freeeeeet/classbot/internal/controller"
	"github.com/Freeeeeet/classbot/internal/controller/handlers"
	"github.com/Freeeeeet/classbot/internal/reminder"
	"github.com/Freeeeeet/classbot/internal/repository"
	"github.com/Freeeeeet/classbot/internal/service"
	"github.com/Freeeeeet/classbot/internal/timetable"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// App владеет всеми долгоживущими компонентами процесса.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	pool       *pgxpool.Pool
	store      repository.GroupStore
	dispatcher *reminder.Dispatcher
	scheduler  *Scheduler
	keepAlive  *KeepAlive
	controller *controller.BotController
}

// New загружает расписание, открывает хранилище и собирает бота.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	registry, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Timetable loaded",
		zap.Strings("groups", registry.Names()),
		zap.String("timezone", cfg.Location.String()),
	)

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		a.closeStore()
		return nil, fmt.Errorf("create bot: %w", err)
	}

	clock := timetable.ZoneClock{Loc: cfg.Location}
	a.dispatcher = reminder.NewDispatcher(controller.NewTelegramNotifier(b, cfg.NotifyRate), clock, logger)

	userService, err := service.NewUserService(a.store, registry, cfg.DefaultGroup, logger.Named("users"))
	if err != nil {
		a.closeStore()
		return nil, err
	}
	scheduleService := service.NewScheduleService(registry, clock)
	reminderService := service.NewReminderService(registry, clock, a.dispatcher, cfg.ReminderLead, logger.Named("reminders"))

	h := handlers.NewHandlers(userService, scheduleService, reminderService, cfg.DeveloperText, logger.Named("handlers"))
	a.controller = controller.NewBotController(b, h, logger)

	a.scheduler, err = NewScheduler(cfg.PurgeSchedule, cfg.Location, a.dispatcher, clock, logger)
	if err != nil {
		a.closeStore()
		return nil, err
	}

	a.keepAlive = NewKeepAlive(cfg.ListenAddr(), healthStats(a.dispatcher, userService, registry, logger), logger)

	return a, nil
}

// healthStats собирает данные для /healthz. Если хранилище недоступно,
// registered_users равен -1.
func healthStats(
	pending interface{ Pending() int },
	users interface {
		CountUsers(ctx context.Context) (int, error)
	},
	registry *timetable.Registry,
	logger *zap.Logger,
) func(ctx context.Context) HealthStats {
	return func(ctx context.Context) HealthStats {
		n, err := users.CountUsers(ctx)
		if err != nil {
			logger.Warn("Failed to count users", zap.Error(err))
			n = -1
		}
		return HealthStats{
			PendingReminders: pending.Pending(),
			RegisteredUsers:  n,
			Groups:           registry.Names(),
		}
	}
}

func loadRegistry(cfg *config.Config) (*timetable.Registry, error) {
	if cfg.TimetablePath == "" {
		reg, err := timetable.DefaultRegistry(cfg.Location)
		if err != nil {
			return nil, fmt.Errorf("load default timetable: %w", err)
		}
		return reg, nil
	}
	reg, err := timetable.LoadRegistryFile(cfg.TimetablePath, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("load timetable %s: %w", cfg.TimetablePath, err)
	}
	return reg, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, a.cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("ping database: %w", err)
		}

		mg, err := NewPostgresMigrator(pool, a.logger)
		if err != nil {
			pool.Close()
			return err
		}
		defer mg.Close()
		if err := mg.Run(ctx); err != nil {
			pool.Close()
			return err
		}

		a.pool = pool
		a.store = repository.NewPostgresGroupStore(pool)

	case config.DriverSQLite:
		db, err := repository.OpenSQLite(ctx, a.cfg.SQLitePath)
		if err != nil {
			return err
		}
		mg, err := NewMigrator(db, DialectSQLite, a.logger)
		if err == nil {
			err = mg.Run(ctx)
		}
		if err != nil {
			_ = db.Close()
			return err
		}
		a.store = repository.NewSQLiteGroupStore(db)

	default:
		a.logger.Warn("Using in-memory group store, bindings are lost on restart")
		a.store = repository.NewMemoryGroupStore()
	}

	a.logger.Info("Group store ready", zap.String("driver", a.cfg.StoreDriver))
	return nil
}

func (a *App) closeStore() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("Failed to close store", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// Run работает до отмены ctx, затем останавливает все компоненты.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	if err := a.controller.RegisterHandlers(ctx); err != nil {
		a.logger.Warn("Continuing without command menu", zap.Error(err))
	}

	httpErr := make(chan error, 1)
	go func() {
		if err := a.keepAlive.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
	}()

	a.scheduler.Start()

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		a.controller.Start(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	case err := <-httpErr:
		runErr = fmt.Errorf("keep-alive server: %w", err)
	}

	stop()
	a.shutdown(botDone)
	return runErr
}

func (a *App) shutdown(botDone <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	select {
	case <-botDone:
	case <-ctx.Done():
		a.logger.Warn("Bot polling did not stop in time")
	}

	a.scheduler.Stop(ctx)
	a.dispatcher.Stop()

	if err := a.keepAlive.Shutdown(ctx); err != nil {
		a.logger.Warn("Failed to stop keep-alive server", zap.Error(err))
	}

	a.closeStore()
	a.logger.Info("Shutdown complete")
}
