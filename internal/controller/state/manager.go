package state

import (
	"sync"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает шаг диалога. StateNone завершает диалог,
// данные экранов (фильтры, списки) при этом остаются.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		if state == StateNone {
			return
		}
		userData = &UserData{Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
	}
	sm.states[telegramID].Data[key] = value
}

// DeleteData удаляет один ключ
func (sm *Manager) DeleteData(telegramID int64, key string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		delete(userData.Data, key)
	}
}

// ClearState очищает состояние и все данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData получает все временные данные пользователя
func (sm *Manager) GetAllData(telegramID int64) map[string]interface{} {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		// Копия, чтобы не отдавать внутреннюю map
		dataCopy := make(map[string]interface{}, len(userData.Data))
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}

// Count число пользователей с активными данными
func (sm *Manager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.states)
}
