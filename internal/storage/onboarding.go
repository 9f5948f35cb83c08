package storage

import (
	"sync"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// OnboardingStorage keeps in-progress onboarding sessions in memory, keyed by chat ID.
// Sessions are not persisted: a restart drops unfinished questionnaires.
type OnboardingStorage struct {
	mu       sync.RWMutex
	sessions map[int64]entities.OnboardingSession
}

// NewOnboardingStorage creates a new OnboardingStorage.
func NewOnboardingStorage() *OnboardingStorage {
	return &OnboardingStorage{
		sessions: make(map[int64]entities.OnboardingSession),
	}
}

// Store saves a copy of the session.
func (s *OnboardingStorage) Store(session *entities.OnboardingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ChatID] = *session
}

// Get returns a copy of the chat's session.
func (s *OnboardingStorage) Get(chatID int64) (*entities.OnboardingSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return nil, false
	}
	return &session, true
}

// Delete discards the chat's session.
func (s *OnboardingStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
}
