package service

import (
	"errors"
	"sync"

	"pool_automation/internal/models"
)

// ErrCommandInFlight is returned when a command arrives while another one is
// still pressing keys.
var ErrCommandInFlight = errors.New("another command is in progress")

// StateStore is the single guarded copy of the device state. The in-flight
// flag lives under the same lock so the poller and the command path observe
// it consistently.
type StateStore struct {
	mu       sync.RWMutex
	state    models.DeviceState
	inFlight bool
	gen      uint64 // bumped by every BeginCommand
}

// NewStateStore seeds the store with st, typically the last persisted snapshot.
func NewStateStore(st models.DeviceState) *StateStore {
	if st.KeyStates == nil {
		st.KeyStates = map[models.KeyID]models.LedState{}
	}
	if st.ID == 0 {
		st.ID = 1
	}
	return &StateStore{state: st}
}

// Snapshot returns a deep copy of the current state.
func (s *StateStore) Snapshot() models.DeviceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update runs fn with exclusive access to the state. inFlight reports whether
// a command is currently executing.
func (s *StateStore) Update(fn func(st *models.DeviceState, inFlight bool)) models.DeviceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state, s.inFlight)
	return s.state.Clone()
}

// BeginCommand marks a command as in flight.
func (s *StateStore) BeginCommand() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrCommandInFlight
	}
	s.inFlight = true
	s.gen++
	return nil
}

// Generation returns the number of commands started so far. A poll reads it
// before fetching and hands it to MergePoll.
func (s *StateStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// MergePoll is Update for a poll fetched at generation gen. keysCurrent is
// false when a command is running or one started since the fetch began.
func (s *StateStore) MergePoll(gen uint64, fn func(st *models.DeviceState, keysCurrent bool)) models.DeviceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state, !s.inFlight && s.gen == gen)
	return s.state.Clone()
}

// EndCommand clears the in-flight flag and the transition message.
func (s *StateStore) EndCommand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.state.Message = ""
}

// InFlight reports whether a command is executing.
func (s *StateStore) InFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight
}
