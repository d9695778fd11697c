package handlers

import (
	"github.com/Freeeeeet/classbot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит зависимости обработчиков команд.
type Handlers struct {
	userService     *service.UserService
	scheduleService *service.ScheduleService
	reminderService *service.ReminderService
	developerText   string
	logger          *zap.Logger
}

func NewHandlers(
	userService *service.UserService,
	scheduleService *service.ScheduleService,
	reminderService *service.ReminderService,
	developerText string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		scheduleService: scheduleService,
		reminderService: reminderService,
		developerText:   developerText,
		logger:          logger,
	}
}
