package common

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

// Navigator открывает экран по пути маршрута
type Navigator interface {
	Navigate(hc *HandlerContext, path string)
}

// HandlerContext содержит общие данные для обработки callback или текстового сообщения
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery // nil для текстовых сообщений
	Handler    *callbacktypes.Handler
	Message    *models.Message // сообщение бота, которое редактируется; nil: отправить новое
	Incoming   *models.Message // сообщение пользователя для текстовых диалогов
	Session    *session.Session
	TelegramID int64
	ChatID     int64

	nav      Navigator
	answered bool
}

// NewHandlerContext создаёт контекст для нажатия inline кнопки
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	nav Navigator,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	} else {
		chatID = callback.From.ID
	}

	hc := &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
		nav:        nav,
	}
	hc.LoadSession()
	return hc
}

// NewMessageContext создаёт контекст для текстового сообщения
func NewMessageContext(
	ctx context.Context,
	b *bot.Bot,
	msg *models.Message,
	h *callbacktypes.Handler,
	nav Navigator,
) *HandlerContext {
	hc := &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Handler:    h,
		Incoming:   msg,
		TelegramID: msg.From.ID,
		ChatID:     msg.Chat.ID,
		nav:        nav,
	}
	hc.LoadSession()
	return hc
}

// LoadSession подтягивает сессию из хранилища и кладёт токен в контекст запросов
func (hc *HandlerContext) LoadSession() *session.Session {
	hc.Session = hc.Handler.Sessions.Get(hc.TelegramID)
	if hc.Session != nil {
		hc.Ctx = backend.WithToken(hc.Ctx, hc.Session.AccessToken)
	}
	return hc.Session
}

// RequireSession проверяет что пользователь вошёл
func (hc *HandlerContext) RequireSession() error {
	if hc.Session == nil {
		return ErrNotLoggedIn
	}
	return nil
}

// Navigate открывает другой экран в этом же сообщении
func (hc *HandlerContext) Navigate(path string) {
	if hc.nav == nil {
		hc.Handler.Logger.Error("Navigator is not set", zap.String("path", path))
		return
	}
	hc.nav.Navigate(hc, path)
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	if hc.Callback == nil || hc.answered {
		return
	}
	hc.answered = true
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// Finish снимает "часики" с кнопки, если обработчик не ответил сам
func (hc *HandlerContext) Finish() {
	hc.Answer("")
}

// AnswerAlert показывает alert; в текстовом диалоге отправляет сообщение
func (hc *HandlerContext) AnswerAlert(text string) {
	if hc.Callback == nil {
		if err := hc.SendMessage(text, nil); err != nil {
			hc.logSendError(err)
		}
		return
	}
	if hc.answered {
		if err := hc.SendMessage(text, nil); err != nil {
			hc.logSendError(err)
		}
		return
	}
	hc.answered = true
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение экрана, а если его нет, отправляет новое
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return hc.SendMessage(text, keyboard)
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	// "message is not modified" не ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// Show выводит экран и логирует ошибку отправки
func (hc *HandlerContext) Show(text string, keyboard *models.InlineKeyboardMarkup) {
	if err := hc.EditMessage(text, keyboard); err != nil {
		hc.logSendError(err)
	}
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    hc.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.SendMessage(hc.Ctx, params)

	return err
}

// SendPhoto отправляет картинку отдельным сообщением
func (hc *HandlerContext) SendPhoto(filename string, data []byte, caption string) error {
	_, err := hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
		ChatID:    hc.ChatID,
		Photo:     &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// DeleteIncoming удаляет сообщение пользователя (например, с паролем)
func (hc *HandlerContext) DeleteIncoming() {
	if hc.Incoming == nil {
		return
	}
	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Incoming.ID,
	})
	if err != nil {
		hc.Handler.Logger.Warn("Failed to delete user message",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
	}
}

// ClearState очищает состояние пользователя целиком
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState устанавливает шаг диалога
func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}

// EndDialog завершает диалог, данные экранов остаются
func (hc *HandlerContext) EndDialog() {
	hc.Handler.StateManager.SetState(hc.TelegramID, "")
}

// SetData устанавливает данные в state
func (hc *HandlerContext) SetData(key string, value interface{}) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

// GetData получает данные из state
func (hc *HandlerContext) GetData(key string) (interface{}, bool) {
	return hc.Handler.StateManager.GetData(hc.TelegramID, key)
}

// DeleteData удаляет данные из state
func (hc *HandlerContext) DeleteData(key string) {
	hc.Handler.StateManager.DeleteData(hc.TelegramID, key)
}

// Data достаёт значение нужного типа из state
func Data[T any](hc *HandlerContext, key string) (T, bool) {
	var zero T
	raw, ok := hc.GetData(key)
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	return value, ok
}

func (hc *HandlerContext) logSendError(err error) {
	hc.Handler.Logger.Error("Failed to show screen",
		zap.Int64("chat_id", hc.ChatID),
		zap.Error(err))
}
