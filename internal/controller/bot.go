package controller

import (
	"context"

	"github.com/Freeeeeet/classbot/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(botInstance *bot.Bot, h *handlers.Handlers, logger *zap.Logger) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: h,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует команды и роутер свободного текста, затем выставляет меню.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := []struct {
		name    string
		handler bot.HandlerFunc
	}{
		{"start", c.handlers.HandleStart},
		{"help", c.handlers.HandleHelp},
		{"today", c.handlers.HandleToday},
		{"next", c.handlers.HandleNext},
		{"subscribe", c.handlers.HandleSubscribe},
		{"setgroup", c.handlers.HandleSetGroup},
		{"groups", c.handlers.HandleGroups},
		{"week", c.handlers.HandleWeek},
	}
	for _, cmd := range commands {
		c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand(cmd.name), cmd.handler)
	}

	// кнопки клавиатуры и всё, что не команда
	c.bot.RegisterHandlerMatchFunc(handlers.IsFreeText, c.handlers.HandleText)

	return c.setCommands(ctx)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "Register and show the menu"},
		{Command: "today", Description: "Today's schedule"},
		{Command: "next", Description: "Next class from now"},
		{Command: "subscribe", Description: "Reminders before each class today"},
		{Command: "setgroup", Description: "Change your group"},
		{Command: "groups", Description: "Supported groups"},
		{Command: "week", Description: "This week as a picture"},
		{Command: "help", Description: "Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start получает обновления до отмены ctx.
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
