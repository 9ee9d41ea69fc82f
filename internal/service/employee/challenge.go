package employee

import (
	"sync"
	"time"
)

// challengeStore holds outstanding enrollment challenges in memory.
// One challenge per employee; beginning a new enrollment replaces any
// earlier one. Challenges expire rather than accumulate.
type challengeStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]pendingChallenge
}

type pendingChallenge struct {
	challenge []byte
	expires   time.Time
}

func newChallengeStore(ttl time.Duration) *challengeStore {
	return &challengeStore{
		ttl:     ttl,
		pending: make(map[string]pendingChallenge),
	}
}

func (s *challengeStore) put(employeeID string, challenge []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[employeeID] = pendingChallenge{
		challenge: challenge,
		expires:   time.Now().Add(s.ttl),
	}
}

// take consumes the outstanding challenge for an employee. Expired
// challenges count as absent.
func (s *challengeStore) take(employeeID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[employeeID]
	if !ok {
		return nil, false
	}
	delete(s.pending, employeeID)
	if time.Now().After(p.expires) {
		return nil, false
	}
	return p.challenge, true
}

func (s *challengeStore) drop(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, employeeID)
}
