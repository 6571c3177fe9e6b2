package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/common"
)

const challengeBytes = 16

type challenge struct {
	value   string
	expires time.Time
}

// ChallengeStore keeps at most one outstanding login challenge per address.
// Callers Peek the challenge, verify the signature over it and only then
// Consume it, so a bad signature leaves the challenge usable.
type ChallengeStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]challenge
}

func NewChallengeStore(ttl time.Duration) *ChallengeStore {
	return &ChallengeStore{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]challenge),
	}
}

// Issue creates a fresh challenge for address, replacing any earlier one.
func (s *ChallengeStore) Issue(address string) (string, error) {
	v, err := common.MakeRandHexString(challengeBytes)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purge(now)
	s.pending[key(address)] = challenge{value: v, expires: now.Add(s.ttl)}

	return v, nil
}

// Peek returns the outstanding challenge for address without removing it.
// ok is false when there is none or it has expired.
func (s *ChallengeStore) Peek(address string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(address)
	c, ok := s.pending[k]
	if !ok {
		return "", false
	}
	if !s.now().Before(c.expires) {
		delete(s.pending, k)
		return "", false
	}
	return c.value, true
}

// Consume removes value if it is still the outstanding, unexpired challenge
// for address. Only one caller can consume a given challenge.
func (s *ChallengeStore) Consume(address, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(address)
	c, ok := s.pending[k]
	if !ok || c.value != value {
		return false
	}
	delete(s.pending, k)

	return s.now().Before(c.expires)
}

// Len reports the number of outstanding challenges.
func (s *ChallengeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// purge drops expired entries; callers hold mu.
func (s *ChallengeStore) purge(now time.Time) {
	for k, c := range s.pending {
		if !now.Before(c.expires) {
			delete(s.pending, k)
		}
	}
}

func key(address string) string {
	return strings.ToLower(address)
}
