// Package store holds in-progress wizard state per session. It is the single
// source of truth: callers get defensive copies and mutate through Update,
// which runs read-modify-write under the store lock.
package store

import (
	"fmt"
	"sync"

	"vetform/internal/wizard/models"
	"vetform/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound (wrapped) when the session does not exist
// - Return nil for successful operations

// SessionStore keeps wizard state in memory keyed by session ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.WizardState
}

// New constructs an empty session store.
func New() *SessionStore {
	return &SessionStore{sessions: make(map[string]*models.WizardState)}
}

// GetOrCreate returns a copy of the session's state, creating the default
// first-step state when the session is new.
func (s *SessionStore) GetOrCreate(sessionID string) models.WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		created := models.NewWizardState()
		state = &created
		s.sessions[sessionID] = state
	}
	return state.Clone()
}

// Get returns a copy of the session's state.
func (s *SessionStore) Get(sessionID string) (models.WizardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return models.WizardState{}, fmt.Errorf("session %s: %w", sessionID, sentinel.ErrNotFound)
	}
	return state.Clone(), nil
}

// Update applies fn to a working copy of the session's state under the store
// lock, creating the default state first when the session is new. The copy is
// published only when fn returns nil, so a failed update never leaves partial
// mutations behind. A further copy of the result is returned.
func (s *SessionStore) Update(sessionID string, fn func(*models.WizardState) error) (models.WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		created := models.NewWizardState()
		state = &created
		s.sessions[sessionID] = state
	}
	working := state.Clone()
	if err := fn(&working); err != nil {
		return models.WizardState{}, err
	}
	s.sessions[sessionID] = &working
	return working.Clone(), nil
}

// Replace swaps the session's entire state, used when restoring a draft.
func (s *SessionStore) Replace(sessionID string, state models.WizardState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replacement := state.Clone()
	s.sessions[sessionID] = &replacement
}

// Delete removes the session. Deleting an absent session is a no-op.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
