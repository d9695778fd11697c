package handlers

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/classbot/internal/controller/render"
	"github.com/Freeeeeet/classbot/internal/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart регистрирует пользователя в группе по умолчанию и показывает клавиатуру.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	group, err := h.userService.Register(ctx, update.Message.From.ID)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Int64("user_id", update.Message.From.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, TextInternalError)
		return
	}

	h.send(ctx, b, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        startReply(group),
		ReplyMarkup: mainKeyboard,
	})
}

// HandleHelp показывает справку
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, TextHelp)
}

// HandleWhereIsClass отвечает, что сейчас идёт у группы пользователя.
func (h *Handlers) HandleWhereIsClass(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	group, ok := h.groupOf(ctx, b, update)
	if !ok {
		return
	}

	moment, err := h.scheduleService.Current(group)
	if err != nil {
		h.replyLookupError(ctx, b, update, group, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, currentReply(moment))
}

// HandleToday показывает расписание на сегодня
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	group, ok := h.groupOf(ctx, b, update)
	if !ok {
		return
	}

	view, err := h.scheduleService.Today(group)
	if err != nil {
		h.replyLookupError(ctx, b, update, group, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, todayReply(group, view))
}

// HandleNext показывает ближайшую пару
func (h *Handlers) HandleNext(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	group, ok := h.groupOf(ctx, b, update)
	if !ok {
		return
	}

	occ, found, err := h.scheduleService.Next(group)
	if err != nil {
		h.replyLookupError(ctx, b, update, group, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, nextReply(occ, found))
}

// HandleSubscribe планирует напоминания перед оставшимися сегодня парами.
func (h *Handlers) HandleSubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	group, ok := h.groupOf(ctx, b, update)
	if !ok {
		return
	}

	to := timetable.Recipient{UserID: update.Message.From.ID, ChatID: update.Message.Chat.ID}
	res, err := h.reminderService.Subscribe(ctx, to, group)
	if err != nil {
		h.replyLookupError(ctx, b, update, group, err)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, subscribeReply(res))
}

// HandleSetGroup меняет группу пользователя
func (h *Handlers) HandleSetGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	group := commandArgs(update.Message.Text)
	if group == "" {
		h.sendMessage(ctx, b, chatID, setGroupUsage())
		return
	}

	err := h.userService.SetGroup(ctx, update.Message.From.ID, group)
	switch {
	case errors.Is(err, timetable.ErrUnknownGroup):
		h.sendMessage(ctx, b, chatID, unknownGroupReply(group, h.scheduleService.Groups()))
	case err != nil:
		h.logger.Error("Failed to set group", zap.Int64("user_id", update.Message.From.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, TextInternalError)
	default:
		h.sendMessage(ctx, b, chatID, "Updated your group to "+group+".")
	}
}

// HandleGroups показывает список групп
func (h *Handlers) HandleGroups(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	group, ok := h.groupOf(ctx, b, update)
	if !ok {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, groupsReply(h.scheduleService.Groups(), group))
}

// HandleWeek отправляет неделю группы картинкой.
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	group, ok := h.groupOf(ctx, b, update)
	if !ok {
		return
	}

	table, err := h.scheduleService.Table(group)
	if err != nil {
		h.replyLookupError(ctx, b, update, group, err)
		return
	}

	img, err := render.WeekImage(table, h.scheduleService.Now())
	if err != nil {
		h.logger.Error("Failed to render week image", zap.String("group", group), zap.Error(err))
		h.sendError(ctx, b, chatID, TextInternalError)
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "week.png",
			Data:     bytes.NewReader(img),
		},
		Caption: "Week schedule for " + group,
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleText обрабатывает кнопки клавиатуры и прочий текст.
func (h *Handlers) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	switch routeText(update.Message.Text) {
	case routeWhereIsClass:
		h.HandleWhereIsClass(ctx, b, update)
	case routeDeveloper:
		h.sendMessage(ctx, b, update.Message.Chat.ID, h.developerText)
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, TextUseButtons)
	}
}

// IsFreeText пропускает текстовые сообщения, не являющиеся командами.
func IsFreeText(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Text != "" &&
		!strings.HasPrefix(update.Message.Text, "/")
}

func (h *Handlers) replyLookupError(ctx context.Context, b *bot.Bot, update *models.Update, group string, err error) {
	chatID := update.Message.Chat.ID
	if errors.Is(err, timetable.ErrUnknownGroup) {
		h.sendMessage(ctx, b, chatID, unknownGroupReply(group, h.scheduleService.Groups())+"\nUse /setgroup to pick one.")
		return
	}
	h.logger.Error("Request failed",
		zap.Int64("chat_id", chatID),
		zap.String("group", group),
		zap.Error(err),
	)
	h.sendError(ctx, b, chatID, TextInternalError)
}

// MatchCommand совпадает с "/name", "/name args" и "/name@SomeBot args", но не с "/namefoo".
func MatchCommand(name string) func(update *models.Update) bool {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		cmd, ok := commandName(update.Message.Text)
		return ok && cmd == name
	}
}

// commandName возвращает слово команды без слеша и суффикса @bot.
func commandName(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}
	word := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(word, '@'); at >= 0 {
		word = word[:at]
	}
	if word == "" {
		return "", false
	}
	return strings.ToLower(word), true
}

// commandArgs возвращает всё после слова команды, например "/setgroup Group-7".
func commandArgs(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
