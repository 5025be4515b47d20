package state

import (
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"
)

// Adapter отдаёт Manager обработчикам callback через интерфейс callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

var _ callbacktypes.StateManager = (*Adapter)(nil)

// NewAdapter создает адаптер для Manager
func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

// GetState получает текущее состояние пользователя
func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return a.sm.GetState(telegramID)
}

// SetState устанавливает состояние пользователя
func (a *Adapter) SetState(telegramID int64, state callbacktypes.UserState) {
	a.sm.SetState(telegramID, state)
}

// GetData получает временные данные пользователя
func (a *Adapter) GetData(telegramID int64, key string) (interface{}, bool) {
	return a.sm.GetData(telegramID, key)
}

// SetData устанавливает временные данные пользователя
func (a *Adapter) SetData(telegramID int64, key string, value interface{}) {
	a.sm.SetData(telegramID, key, value)
}

// DeleteData удаляет один ключ данных
func (a *Adapter) DeleteData(telegramID int64, key string) {
	a.sm.DeleteData(telegramID, key)
}

// ClearState очищает состояние и данные пользователя
func (a *Adapter) ClearState(telegramID int64) {
	a.sm.ClearState(telegramID)
}

// GetAllData получает все временные данные пользователя
func (a *Adapter) GetAllData(telegramID int64) map[string]interface{} {
	return a.sm.GetAllData(telegramID)
}
