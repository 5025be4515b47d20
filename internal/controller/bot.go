package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/guard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/handlers"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
	"github.com/Freeeeeet/clinic_bot/internal/session"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	router   *callbacks.Router
	deps     *callbacktypes.Handler
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	deps *callbacktypes.Handler,
	logger *zap.Logger,
) *BotController {
	// Роутер экранов с проверкой ролей
	router := callbacks.NewRouter(deps, guard.Default())

	// Команды и текстовые диалоги открывают экраны через тот же роутер
	cmdHandlers := handlers.NewHandlers(deps, router, logger)

	c := &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		router:   router,
		deps:     deps,
		logger:   logger,
	}

	// После выхода незавершённые диалоги и копии списков не нужны
	deps.Sessions.Subscribe(c.onSessionChange)

	return c
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypeExact, c.handlers.HandleRegister)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/find", bot.MatchTypeExact, c.handlers.HandleFind)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/me", bot.MatchTypeExact, c.handlers.HandleMe)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.router.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏠 Trang chủ"},
		{Command: "find", Description: "🔍 Tìm bác sĩ"},
		{Command: "me", Description: "👤 Trang của tôi"},
		{Command: "login", Description: "🔑 Đăng nhập"},
		{Command: "register", Description: "📝 Đăng ký"},
		{Command: "logout", Description: "🚪 Đăng xuất"},
		{Command: "cancel", Description: "❌ Hủy thao tác hiện tại"},
		{Command: "help", Description: "❓ Hướng dẫn"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

func (c *BotController) onSessionChange(telegramID int64, s *session.Session) {
	if s != nil {
		return
	}
	c.deps.StateManager.ClearState(telegramID)
	c.logger.Debug("State cleared after logout", zap.Int64("telegram_id", telegramID))
}

// NotifyPaymentResult сообщает чату результат оплаты записи
func (c *BotController) NotifyPaymentResult(ctx context.Context, ret *model.PaymentReturn, reason string) error {
	text, kb := BuildPaymentNotice(ret, reason)

	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      ret.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		return fmt.Errorf("send payment notice: %w", err)
	}

	// Статус записи изменился, копию списка перечитаем при следующем открытии
	c.deps.StateManager.DeleteData(ret.TelegramID, common.BoardKey(service.ViewerPatient))
	return nil
}

// BuildPaymentNotice сообщение о результате оплаты
func BuildPaymentNotice(ret *model.PaymentReturn, reason string) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	var text string
	if ret.Status == model.PaymentReturnSuccess {
		text = fmt.Sprintf("✅ <b>Thanh toán thành công</b>\n\nLịch hẹn #%d đã được thanh toán.", ret.AppointmentID)
	} else {
		text = fmt.Sprintf("❌ <b>Thanh toán không thành công</b>\n\nLịch hẹn #%d chưa được thanh toán. Bạn có thể thử lại.", ret.AppointmentID)
		if reason != "" {
			text += "\n\n" + formatting.Escape(reason)
		}
		kb.Row(keyboard.Button("💳 Thanh toán lại", fmt.Sprintf("/patient/appointments/%d/pay", ret.AppointmentID)))
	}

	kb.Row(keyboard.Button("📋 Lịch hẹn của tôi", "/patient/appointments/refresh"))
	return text, kb.Build()
}
