package callbacktypes

import (
	"github.com/Freeeeeet/clinic_bot/internal/service"
	"github.com/Freeeeeet/clinic_bot/internal/session"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	DeleteData(telegramID int64, key string)
	GetAllData(telegramID int64) map[string]interface{}
}

// Handler содержит общие зависимости для всех обработчиков экранов
type Handler struct {
	Sessions     *session.Store
	Auth         *service.AuthService
	Appointments *service.AppointmentService
	Booking      *service.BookingService
	Schedules    *service.ScheduleService
	Directory    *service.DirectoryService
	Users        *service.UserService
	Payments     *service.PaymentService
	StateManager StateManager
	Logger       *zap.Logger
}
