package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/classbot/internal/repository"
	"github.com/Freeeeeet/classbot/internal/timetable"
	"go.uber.org/zap"
)

type UserService struct {
	store        repository.GroupStore
	registry     *timetable.Registry
	defaultGroup string
	logger       *zap.Logger
}

// NewUserService проверяет, что группа по умолчанию существует.
func NewUserService(store repository.GroupStore, registry *timetable.Registry, defaultGroup string, logger *zap.Logger) (*UserService, error) {
	if !registry.Has(defaultGroup) {
		return nil, fmt.Errorf("default group: %w: %q", timetable.ErrUnknownGroup, defaultGroup)
	}
	return &UserService{
		store:        store,
		registry:     registry,
		defaultGroup: defaultGroup,
		logger:       logger,
	}, nil
}

// Register привязывает нового пользователя к группе по умолчанию. Существующая привязка сохраняется.
func (s *UserService) Register(ctx context.Context, userID int64) (string, error) {
	existing, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return existing.Group, nil
	}

	if err := s.store.Set(ctx, userID, s.defaultGroup); err != nil {
		return "", fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", userID),
		zap.String("group", s.defaultGroup),
	)
	return s.defaultGroup, nil
}

// GroupOf возвращает группу пользователя или группу по умолчанию.
func (s *UserService) GroupOf(ctx context.Context, userID int64) (string, error) {
	ug, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user group: %w", err)
	}
	if ug == nil {
		return s.defaultGroup, nil
	}
	return ug.Group, nil
}

// SetGroup меняет группу пользователя. Имя должно быть известной группой.
func (s *UserService) SetGroup(ctx context.Context, userID int64, group string) error {
	if !s.registry.Has(group) {
		return fmt.Errorf("%w: %q", timetable.ErrUnknownGroup, group)
	}
	if err := s.store.Set(ctx, userID, group); err != nil {
		return fmt.Errorf("set group: %w", err)
	}

	s.logger.Info("User group changed",
		zap.Int64("user_id", userID),
		zap.String("group", group),
	)
	return nil
}

// CountUsers подсчитывает пользователей с сохранённой привязкой.
func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
