package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/classbot/internal/reminder"
	"github.com/Freeeeeet/classbot/internal/timetable"
	"go.uber.org/zap"
)

// ReminderScheduler взводит вычисленные напоминания.
type ReminderScheduler interface {
	Schedule(ctx context.Context, jobs []timetable.ReminderJob) (reminder.Result, error)
}

// SubscribeResult говорит, сколько напоминаний взведено, чтобы ноль можно было
// показать пользователю. Напоминания не переживают рестарт.
type SubscribeResult struct {
	Scheduled  int
	Duplicates int
	Lead       time.Duration
}

type ReminderService struct {
	registry  *timetable.Registry
	clock     timetable.Clock
	scheduler ReminderScheduler
	lead      time.Duration
	logger    *zap.Logger
}

func NewReminderService(registry *timetable.Registry, clock timetable.Clock, scheduler ReminderScheduler, lead time.Duration, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		registry:  registry,
		clock:     clock,
		scheduler: scheduler,
		lead:      lead,
		logger:    logger,
	}
}

// Subscribe планирует напоминания на оставшиеся сегодня пары.
func (s *ReminderService) Subscribe(ctx context.Context, to timetable.Recipient, group string) (SubscribeResult, error) {
	t, err := s.registry.Table(group)
	if err != nil {
		return SubscribeResult{}, fmt.Errorf("lookup table: %w", err)
	}

	jobs := timetable.RemindersForToday(t, s.clock.Now(), s.lead, to)
	res, err := s.scheduler.Schedule(ctx, jobs)
	if err != nil {
		return SubscribeResult{}, fmt.Errorf("schedule reminders: %w", err)
	}

	s.logger.Info("User subscribed to reminders",
		zap.Int64("user_id", to.UserID),
		zap.String("group", group),
		zap.Int("scheduled", res.Scheduled),
		zap.Int("duplicates", res.Duplicates),
	)

	return SubscribeResult{Scheduled: res.Scheduled, Duplicates: res.Duplicates, Lead: s.lead}, nil
}
