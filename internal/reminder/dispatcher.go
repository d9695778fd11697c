package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/classbot/internal/timetable"
	"go.uber.org/zap"
)

// DefaultDeliveryTimeout ограничивает одну доставку.
const DefaultDeliveryTimeout = 15 * time.Second

// Notifier доставляет готовый текст напоминания в чат.
type Notifier interface {
	Deliver(ctx context.Context, chatID int64, text string) error
}

// Timer описывает ту часть *time.Timer, что нужна диспетчеру.
type Timer interface {
	Stop() bool
}

// AfterFunc взводит одноразовый колбэк.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Result сообщает, что Schedule сделал с пачкой задач.
type Result struct {
	Scheduled  int
	Duplicates int
}

type pending struct {
	job   timetable.ReminderJob
	timer Timer
	fired bool
}

// Dispatcher взводит по таймеру на каждое напоминание и помнит ключи дедупликации
// до очистки. Ничего не сохраняется: ожидающие напоминания умирают вместе с процессом.
type Dispatcher struct {
	notifier Notifier
	clock    timetable.Clock
	after    AfterFunc
	timeout  time.Duration
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	jobs    map[string]*pending
	stopped bool
}

// Option настраивает Dispatcher.
type Option func(*Dispatcher)

// WithAfterFunc подменяет фабрику таймеров (в тестах).
func WithAfterFunc(f AfterFunc) Option {
	return func(d *Dispatcher) { d.after = f }
}

// WithDeliveryTimeout задаёт таймаут одной доставки.
func WithDeliveryTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = t }
}

// NewDispatcher создаёт диспетчер; время берётся из clock.
func NewDispatcher(notifier Notifier, clock timetable.Clock, logger *zap.Logger, opts ...Option) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		notifier: notifier,
		clock:    clock,
		after:    realAfterFunc,
		timeout:  DefaultDeliveryTimeout,
		logger:   logger.Named("reminder"),
		ctx:      ctx,
		cancel:   cancel,
		jobs:     make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Schedule взводит задачи. Задача с уже известным ключом (ожидающая или
// сработавшая) считается дубликатом и отбрасывается.
func (d *Dispatcher) Schedule(ctx context.Context, jobs []timetable.ReminderJob) (Result, error) {
	var res Result
	if err := ctx.Err(); err != nil {
		return res, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return res, ErrStopped
	}

	now := d.clock.Now()
	for _, job := range jobs {
		key := job.DedupKey()
		if _, ok := d.jobs[key]; ok {
			res.Duplicates++
			continue
		}

		delay := job.FireAt.Sub(now)
		if delay < 0 {
			delay = 0
		}
		p := &pending{job: job}
		p.timer = d.after(delay, func() { d.fire(key) })
		d.jobs[key] = p
		res.Scheduled++

		d.logger.Debug("Reminder scheduled",
			zap.String("job_id", job.ID.String()),
			zap.Int64("chat_id", job.Recipient.ChatID),
			zap.Time("fire_at", job.FireAt),
			zap.String("slot", job.SlotLabel),
		)
	}

	return res, nil
}

func (d *Dispatcher) fire(key string) {
	d.mu.Lock()
	p, ok := d.jobs[key]
	if !ok || p.fired || d.stopped {
		d.mu.Unlock()
		return
	}
	p.fired = true
	p.timer = nil
	job := p.job
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	// без повторов: неудачная доставка только логируется
	if err := d.notifier.Deliver(ctx, job.Recipient.ChatID, job.Text()); err != nil {
		d.logger.Warn("Failed to deliver reminder",
			zap.String("job_id", job.ID.String()),
			zap.Int64("chat_id", job.Recipient.ChatID),
			zap.String("slot", job.SlotLabel),
			zap.Error(err),
		)
		return
	}

	d.logger.Info("Reminder delivered",
		zap.String("job_id", job.ID.String()),
		zap.Int64("chat_id", job.Recipient.ChatID),
		zap.String("slot", job.SlotLabel),
	)
}

// Pending возвращает число взведённых, ещё не сработавших напоминаний.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, p := range d.jobs {
		if !p.fired {
			n++
		}
	}
	return n
}

// Purge забывает задачи, чей слот начался раньше cutoff, и останавливает
// их таймеры. Возвращает число удалённых ключей.
func (d *Dispatcher) Purge(before time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for key, p := range d.jobs {
		if !p.job.SlotStart.Before(before) {
			continue
		}
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(d.jobs, key)
		n++
	}
	return n
}

// Stop отменяет все таймеры и текущие доставки. После него Schedule возвращает ошибку.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true

	dropped := 0
	for _, p := range d.jobs {
		if p.timer != nil && p.timer.Stop() {
			dropped++
		}
	}
	d.mu.Unlock()

	d.cancel()
	d.logger.Info("Reminder dispatcher stopped", zap.Int("dropped", dropped))
}
