package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/guard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openScreen(ctx, b, update, "/")
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openScreen(ctx, b, update, "/help")
}

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openScreen(ctx, b, update, "/login")
}

// HandleRegister обрабатывает команду /register
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openScreen(ctx, b, update, "/register")
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openScreen(ctx, b, update, "/logout")
}

// HandleFind обрабатывает команду /find - поиск врача
func (h *Handlers) HandleFind(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.openScreen(ctx, b, update, "/find-doctor")
}

// HandleMe открывает стартовую страницу роли
func (h *Handlers) HandleMe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	hc := h.messageContext(ctx, b, update.Message)
	if hc.Session == nil {
		hc.Navigate(guard.LoginPath)
		return
	}
	hc.Navigate(guard.Landing(hc.Session))
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	hc := h.messageContext(ctx, b, update.Message)
	if h.handler.StateManager.GetState(hc.TelegramID) == state.StateNone {
		h.send(hc, "❌ Không có thao tác nào để hủy.")
		return
	}

	hc.EndDialog()
	h.logger.Info("Dialog cancelled", zap.Int64("telegram_id", hc.TelegramID))

	h.send(hc, "✅ Đã hủy thao tác.")
	hc.Navigate("/")
}

// openScreen открывает экран по пути новым сообщением
func (h *Handlers) openScreen(ctx context.Context, b *bot.Bot, update *models.Update, path string) {
	if update.Message == nil {
		return
	}

	hc := h.messageContext(ctx, b, update.Message)

	// Команда прерывает незавершённый диалог
	hc.EndDialog()
	hc.Navigate(path)
}

func (h *Handlers) messageContext(ctx context.Context, b *bot.Bot, msg *models.Message) *common.HandlerContext {
	return common.NewMessageContext(ctx, b, msg, h.handler, h.nav)
}

// send отправляет сообщение и логирует если не удалось
func (h *Handlers) send(hc *common.HandlerContext, text string) {
	if err := hc.SendMessage(text, nil); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err),
		)
	}
}
