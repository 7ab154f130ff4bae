package storage

import (
	"sync"
	"time"
)

// AnnouncementMessage is the last daily quiz announcement sent to a chat.
type AnnouncementMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// AnnouncementStorage remembers the last announcement per chat so it can be replaced.
type AnnouncementStorage struct {
	mu       sync.RWMutex
	messages map[int64]AnnouncementMessage
}

func NewAnnouncementStorage() *AnnouncementStorage {
	return &AnnouncementStorage{
		messages: make(map[int64]AnnouncementMessage),
	}
}

func (s *AnnouncementStorage) Get(chatID int64) (AnnouncementMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[chatID]
	return msg, ok
}

func (s *AnnouncementStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

// UpsertAndGetPrev stores the new announcement and returns the one it replaces.
func (s *AnnouncementStorage) UpsertAndGetPrev(chatID int64, messageID int, sentAt time.Time) (prev AnnouncementMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = AnnouncementMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    sentAt,
	}

	return prev, hadPrev
}
