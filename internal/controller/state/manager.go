package state

import (
	"sync"

	"github.com/psicocare/psicocare_bot/internal/scheduling"
)

// Manager keeps per-chat dialog state in memory.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState moves the chat to state, keeping collected data.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).State = state
}

func (sm *Manager) GetData(telegramID int64, key string) (any, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString returns the value under key, or "" if it is missing or not a string.
func (sm *Manager) GetString(telegramID int64, key string) string {
	v, _ := sm.GetData(telegramID, key)
	s, _ := v.(string)
	return s
}

func (sm *Manager) GetInt(telegramID int64, key string) int {
	v, _ := sm.GetData(telegramID, key)
	n, _ := v.(int)
	return n
}

func (sm *Manager) SetData(telegramID int64, key string, value any) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

func (sm *Manager) DeleteData(telegramID int64, keys ...string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		for _, k := range keys {
			delete(userData.Data, k)
		}
	}
}

// ClearState drops the state and all data.
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData returns a copy of the chat data.
func (sm *Manager) GetAllData(telegramID int64) map[string]any {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		dataCopy := make(map[string]any, len(userData.Data))
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}

// Form returns the booking form collected so far.
func (sm *Manager) Form(telegramID int64) scheduling.Form {
	return scheduling.Form{
		CounterpartyID: sm.GetString(telegramID, KeyCounterpartyID),
		Date:           sm.GetString(telegramID, KeyDate),
		Time:           sm.GetString(telegramID, KeyTime),
	}
}

// SetForm replaces the booking form fields.
func (sm *Manager) SetForm(telegramID int64, f scheduling.Form) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	e := sm.entry(telegramID)
	e.Data[KeyCounterpartyID] = f.CounterpartyID
	e.Data[KeyDate] = f.Date
	e.Data[KeyTime] = f.Time
}

// ClearForm drops the booking form and the edit target, leaving other data.
func (sm *Manager) ClearForm(telegramID int64) {
	sm.DeleteData(telegramID,
		KeyCounterpartyID, KeyCounterpartyName, KeyDate, KeyTime, KeyEditAppointment, KeyCalendarOffset)
	if sm.GetState(telegramID) == StateBookingDate || sm.GetState(telegramID) == StateBookingTime {
		sm.SetState(telegramID, StateNone)
	}
}

// entry must be called with mu held.
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{Data: make(map[string]any)}
		sm.states[telegramID] = userData
	}
	return userData
}
