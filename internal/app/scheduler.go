package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/classbot/internal/timetable"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger забывает учёт напоминаний для слотов до cutoff.
type Purger interface {
	Purge(before time.Time) int
}

// Scheduler запускает служебные задачи по cron в рабочем часовом поясе.
type Scheduler struct {
	cron   *cron.Cron
	purger Purger
	clock  timetable.Clock
	loc    *time.Location
	logger *zap.Logger
}

// NewScheduler создаёт планировщик и регистрирует ночную очистку
func NewScheduler(spec string, loc *time.Location, purger Purger, clock timetable.Clock, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		purger: purger,
		clock:  clock,
		loc:    loc,
		logger: logger.Named("scheduler"),
	}

	if _, err := s.cron.AddFunc(spec, s.purgeStale); err != nil {
		return nil, fmt.Errorf("add purge job %q: %w", spec, err)
	}
	return s, nil
}

// Start запускает cron в фоне
func (s *Scheduler) Start() {
	s.logger.Info("Starting background scheduler")
	s.cron.Start()
}

// Stop ждёт завершения текущей задачи или истечения ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.logger.Info("Stopping background scheduler")
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
	}
}

// purgeStale удаляет ключи напоминаний прошлых дней.
func (s *Scheduler) purgeStale() {
	now := s.clock.Now().In(s.loc)
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	n := s.purger.Purge(cutoff)
	s.logger.Info("Purged stale reminders",
		zap.Int("removed", n),
		zap.Time("before", cutoff),
	)
}
