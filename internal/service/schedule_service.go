package service

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/classbot/internal/timetable"
)

// DayView содержит расписание группы на один день недели.
type DayView struct {
	Day    timetable.Day
	Closed bool
	Rows   []timetable.Row
}

type ScheduleService struct {
	registry *timetable.Registry
	clock    timetable.Clock
}

func NewScheduleService(registry *timetable.Registry, clock timetable.Clock) *ScheduleService {
	return &ScheduleService{registry: registry, clock: clock}
}

func (s *ScheduleService) Now() time.Time {
	return s.clock.Now()
}

// Groups возвращает поддерживаемые группы
func (s *ScheduleService) Groups() []string {
	return s.registry.Names()
}

// Table получает таблицу группы
func (s *ScheduleService) Table(group string) (*timetable.WeeklyTable, error) {
	t, err := s.registry.Table(group)
	if err != nil {
		return nil, fmt.Errorf("lookup table: %w", err)
	}
	return t, nil
}

// Current определяет, что у группы идёт сейчас
func (s *ScheduleService) Current(group string) (timetable.Moment, error) {
	t, err := s.Table(group)
	if err != nil {
		return timetable.Moment{}, err
	}
	return timetable.CurrentState(t, s.clock.Now()), nil
}

// Next возвращает false, если у группы нет занятий за всю неделю.
func (s *ScheduleService) Next(group string) (timetable.Occurrence, bool, error) {
	t, err := s.Table(group)
	if err != nil {
		return timetable.Occurrence{}, false, err
	}
	occ, ok := timetable.NextOccurrence(t, s.clock.Now())
	return occ, ok, nil
}

// Today получает расписание группы на сегодня
func (s *ScheduleService) Today(group string) (DayView, error) {
	t, err := s.Table(group)
	if err != nil {
		return DayView{}, err
	}
	now := s.clock.Now().In(t.Grid().Location())
	day := timetable.DayOf(now)
	if t.IsClosed(day) {
		return DayView{Day: day, Closed: true}, nil
	}
	return DayView{Day: day, Rows: timetable.DaySchedule(t, day)}, nil
}
