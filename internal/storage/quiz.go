package storage

import (
	"sync"

	"github.com/google/uuid"

	"github.com/aliskhannn/picktoss-bot/internal/quiz"
)

// ActivePlay is a live quiz session bound to a chat.
type ActivePlay struct {
	ID        uuid.UUID
	ChatID    int64
	QuizSetID string
	Session   *quiz.Session
}

// QuizStorage keeps at most one live quiz session per chat.
type QuizStorage struct {
	mu    sync.RWMutex
	plays map[int64]*ActivePlay
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		plays: make(map[int64]*ActivePlay),
	}
}

// Store registers the play for its chat and closes the session it replaces.
func (s *QuizStorage) Store(play *ActivePlay) {
	s.mu.Lock()
	prev := s.plays[play.ChatID]
	s.plays[play.ChatID] = play
	s.mu.Unlock()

	if prev != nil && prev.Session != play.Session {
		prev.Session.Close()
	}
}

// Get returns the live play of the chat.
func (s *QuizStorage) Get(chatID int64) (*ActivePlay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	play, ok := s.plays[chatID]
	return play, ok
}

// Delete closes and removes the play when it is still the chat's current one.
func (s *QuizStorage) Delete(chatID int64, playID uuid.UUID) bool {
	s.mu.Lock()
	play, ok := s.plays[chatID]
	if ok && play.ID == playID {
		delete(s.plays, chatID)
	}
	s.mu.Unlock()

	if !ok || play.ID != playID {
		return false
	}

	play.Session.Close()
	return true
}

// CloseAll closes and removes every live session.
func (s *QuizStorage) CloseAll() {
	s.mu.Lock()
	plays := s.plays
	s.plays = make(map[int64]*ActivePlay)
	s.mu.Unlock()

	for _, play := range plays {
		play.Session.Close()
	}
}

// Len returns the number of live sessions.
func (s *QuizStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plays)
}
