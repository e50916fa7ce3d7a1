// Package profile holds the in-process user state: identity, subscriptions,
// listening history, and the saved recording list with its audio buffers.
package profile

import (
	"sync"

	"github.com/google/uuid"

	"github.com/podhaven/backend/internal/models"
)

// Store is the single-user profile store. All access is mutex-guarded; the
// returned values are copies so callers never alias internal state.
type Store struct {
	mu         sync.RWMutex
	user       models.User
	recordings []models.Recording // newest first
	audio      map[uuid.UUID][]byte
}

// NewStore creates a store with the default guest profile.
func NewStore() *Store {
	return &Store{
		user: models.User{
			Name:          "Guest User",
			Subscriptions: []string{},
			History:       []string{},
		},
		audio: make(map[uuid.UUID][]byte),
	}
}

// User returns a copy of the profile.
func (s *Store) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyUserLocked()
}

func (s *Store) copyUserLocked() models.User {
	u := s.user
	u.Subscriptions = append([]string{}, s.user.Subscriptions...)
	u.History = append([]string{}, s.user.History...)
	return u
}

// UpdateUser applies optional name/avatar changes and returns the profile.
func (s *Store) UpdateUser(name, avatarURL *string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != nil {
		s.user.Name = *name
	}
	if avatarURL != nil {
		s.user.AvatarURL = *avatarURL
	}
	return s.copyUserLocked()
}

// ToggleSubscription subscribes to the podcast if not subscribed, otherwise
// unsubscribes. Returns the resulting subscribed state.
func (s *Store) ToggleSubscription(podcastID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.user.Subscriptions {
		if id == podcastID {
			s.user.Subscriptions = append(s.user.Subscriptions[:i], s.user.Subscriptions[i+1:]...)
			return false
		}
	}
	s.user.Subscriptions = append(s.user.Subscriptions, podcastID)
	return true
}

// Subscribed reports whether the podcast is in the subscription set.
func (s *Store) Subscribed(podcastID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.user.Subscriptions {
		if id == podcastID {
			return true
		}
	}
	return false
}

// AddHistory appends an episode or recording ID to the listening history.
func (s *Store) AddHistory(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.History = append(s.user.History, itemID)
}

// AddRecording prepends a saved recording and stores its audio buffer.
func (s *Store) AddRecording(rec models.Recording, audio []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordings = append([]models.Recording{rec}, s.recordings...)
	s.audio[rec.ID] = audio
}

// Recordings returns the recording list, newest first.
func (s *Store) Recordings() []models.Recording {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Recording{}, s.recordings...)
}

// Recording returns a recording by ID.
func (s *Store) Recording(id uuid.UUID) (models.Recording, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.recordings {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.Recording{}, false
}

// Audio returns the stored audio buffer for a recording.
func (s *Store) Audio(id uuid.UUID) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	buf, ok := s.audio[id]
	return buf, ok
}

// DeleteRecording removes a recording and frees its audio buffer.
func (s *Store) DeleteRecording(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.recordings {
		if rec.ID == id {
			s.recordings = append(s.recordings[:i], s.recordings[i+1:]...)
			delete(s.audio, id)
			return true
		}
	}
	return false
}
