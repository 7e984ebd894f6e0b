package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ent0n29/mikueva/internal/persona"
)

// Store keeps one isolated in-process conversation map per persona.
//
// The lock only guards individual map operations. A chat exchange is several
// calls, so concurrent exchanges for the same user and persona may interleave.
type Store struct {
	mu            sync.RWMutex
	conversations map[persona.Mode]map[string][]Turn
}

func NewStore() *Store {
	conversations := make(map[persona.Mode]map[string][]Turn)
	for _, m := range persona.All() {
		conversations[m] = make(map[string][]Turn)
	}
	return &Store{conversations: conversations}
}

// GetOrCreate returns a copy of the conversation, establishing an empty one
// when the user has none yet.
func (s *Store) GetOrCreate(mode persona.Mode, userID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser := s.conversations[mode]
	arr, ok := byUser[userID]
	if !ok {
		arr = []Turn{}
		byUser[userID] = arr
	}
	return cloneTurns(arr)
}

// History returns a copy of the conversation without creating it.
func (s *Store) History(mode persona.Mode, userID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTurns(s.conversations[mode][userID])
}

func (s *Store) Append(mode persona.Mode, userID string, role Role, content string) Turn {
	turn := Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	byUser := s.conversations[mode]
	byUser[userID] = append(byUser[userID], turn)
	return turn
}

// Trim drops the oldest turns so at most RetentionWindow remain.
func (s *Store) Trim(mode persona.Mode, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser := s.conversations[mode]
	arr, ok := byUser[userID]
	if !ok || len(arr) <= RetentionWindow {
		return
	}
	kept := make([]Turn, RetentionWindow)
	copy(kept, arr[len(arr)-RetentionWindow:])
	byUser[userID] = kept
}

// Clear removes one persona's conversation for userID. Absent keys are ignored.
func (s *Store) Clear(mode persona.Mode, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations[mode], userID)
}

// ClearAll removes userID from every persona.
func (s *Store) ClearAll(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, byUser := range s.conversations {
		delete(byUser, userID)
	}
}

func (s *Store) Len(mode persona.Mode, userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations[mode][userID])
}

// Count returns the number of stored conversations across personas.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, byUser := range s.conversations {
		n += len(byUser)
	}
	return n
}

func cloneTurns(arr []Turn) []Turn {
	if arr == nil {
		return nil
	}
	out := make([]Turn, len(arr))
	copy(out, arr)
	return out
}
