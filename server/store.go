package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type challenge struct {
	answer  string
	expires time.Time
}

// ChallengeStore keeps issued challenge answers in memory. Entries are
// single-use: Consume removes the entry whether or not the answer ends up
// matching, so a challenge id cannot be brute-forced by replaying it.
type ChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]challenge
	ttl        time.Duration
}

// NewChallengeStore creates a store whose entries expire after ttl.
func NewChallengeStore(ttl time.Duration) *ChallengeStore {
	return &ChallengeStore{
		challenges: make(map[string]challenge),
		ttl:        ttl,
	}
}

// Put stores an answer under a fresh id and returns the id with its
// expiry time. Expired leftovers are swept on the way, keeping the map
// bounded by the issue rate within one TTL window.
func (s *ChallengeStore) Put(answer string) (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, ch := range s.challenges {
		if now.After(ch.expires) {
			delete(s.challenges, id)
		}
	}

	id := uuid.NewString()
	expires := now.Add(s.ttl)
	s.challenges[id] = challenge{answer: answer, expires: expires}
	return id, expires
}

// Consume removes and returns the answer for id. The second result is
// false when the id is unknown, already consumed, or expired.
func (s *ChallengeStore) Consume(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[id]
	if !ok {
		return "", false
	}
	delete(s.challenges, id)

	if time.Now().After(ch.expires) {
		return "", false
	}
	return ch.answer, true
}

// Len returns the number of live entries.
func (s *ChallengeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}
