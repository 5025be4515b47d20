package common

import (
	"go.uber.org/zap"
)

// HandleError логирует ошибку операции и показывает её пользователю
func HandleError(hc *HandlerContext, err error, operation, fallback string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err, fallback))
}

// RequireSession вызывает handler только для вошедшего пользователя
func RequireSession(hc *HandlerContext, handler func(*HandlerContext)) {
	if err := hc.RequireSession(); err != nil {
		hc.AnswerAlert(ErrorMessage(err, ""))
		hc.Navigate("/login")
		return
	}
	handler(hc)
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string, fields ...zap.Field) {
	fields = append([]zap.Field{zap.Int64("telegram_id", hc.TelegramID)}, fields...)
	hc.Handler.Logger.Info(message, fields...)
	hc.Answer(answer)
}
