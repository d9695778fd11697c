package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// mainKeyboard это постоянная клавиатура после /start.
var mainKeyboard = &models.ReplyKeyboardMarkup{
	Keyboard: [][]models.KeyboardButton{
		{{Text: ButtonWhereIsClass}, {Text: ButtonWhoIsDeveloper}},
	},
	ResizeKeyboard: true,
}

// groupOf определяет группу отправителя. При ошибке сообщает пользователю и возвращает false.
func (h *Handlers) groupOf(ctx context.Context, b *bot.Bot, update *models.Update) (string, bool) {
	userID := update.Message.From.ID
	group, err := h.userService.GroupOf(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to get user group", zap.Int64("user_id", userID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, TextInternalError)
		return "", false
	}
	return group, true
}

// sendError отправляет сообщение об ошибке и логирует неудачу отправки.
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.send(ctx, b, &bot.SendMessageParams{ChatID: chatID, Text: text})
}

func (h *Handlers) send(ctx context.Context, b *bot.Bot, params *bot.SendMessageParams) {
	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Any("chat_id", params.ChatID),
			zap.Error(err),
		)
	}
}
