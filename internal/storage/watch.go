package storage

import (
	"context"
	"sync"
)

type watch struct {
	id     uint64
	cancel context.CancelFunc
}

// WatchStorage tracks one cancellable background poll per chat.
type WatchStorage struct {
	mu      sync.Mutex
	next    uint64
	watches map[int64]watch
}

func NewWatchStorage() *WatchStorage {
	return &WatchStorage{
		watches: make(map[int64]watch),
	}
}

// Replace registers cancel for the chat, cancels the poll it replaces and
// returns a release func that unregisters the new poll if it is still current.
func (s *WatchStorage) Replace(chatID int64, cancel context.CancelFunc) (release func()) {
	s.mu.Lock()
	s.next++
	id := s.next
	prev, hadPrev := s.watches[chatID]
	s.watches[chatID] = watch{id: id, cancel: cancel}
	s.mu.Unlock()

	if hadPrev {
		prev.cancel()
	}

	return func() {
		s.mu.Lock()
		if w, ok := s.watches[chatID]; ok && w.id == id {
			delete(s.watches, chatID)
		}
		s.mu.Unlock()
		cancel()
	}
}

// Cancel stops the chat's poll, if any.
func (s *WatchStorage) Cancel(chatID int64) {
	s.mu.Lock()
	w, ok := s.watches[chatID]
	delete(s.watches, chatID)
	s.mu.Unlock()

	if ok {
		w.cancel()
	}
}

// CancelAll stops every poll.
func (s *WatchStorage) CancelAll() {
	s.mu.Lock()
	watches := s.watches
	s.watches = make(map[int64]watch)
	s.mu.Unlock()

	for _, w := range watches {
		w.cancel()
	}
}
