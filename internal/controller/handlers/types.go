package handlers

import (
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
)

// DialogFunc обрабатывает введённый текст на шаге диалога
type DialogFunc func(hc *common.HandlerContext, text string)

// Handlers содержит все зависимости для обработки команд и текстовых диалогов
type Handlers struct {
	handler *callbacktypes.Handler
	nav     common.Navigator
	dialogs map[state.UserState]DialogFunc
	logger  *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	handler *callbacktypes.Handler,
	nav common.Navigator,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		handler: handler,
		nav:     nav,
		dialogs: newDialogs(),
		logger:  logger,
	}
}
