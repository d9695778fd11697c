package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

// MessageSender описывает ту часть *bot.Bot, что нужна нотификатору.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier доставляет напоминания через Bot API с ограничением
// частоты (token bucket), чтобы не упереться в flood limits Telegram.
type TelegramNotifier struct {
	sender  MessageSender
	limiter *rate.Limiter
}

func NewTelegramNotifier(sender MessageSender, perSecond int) *TelegramNotifier {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &TelegramNotifier{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

// Deliver ждёт токен лимитера и отправляет сообщение
func (n *TelegramNotifier) Deliver(ctx context.Context, chatID int64, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait rate limit: %w", err)
	}
	if _, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
