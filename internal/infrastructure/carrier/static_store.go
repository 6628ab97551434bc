package carrier

import (
	"context"
	"sync"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// StaticStore is an in-memory carrier profile store for development and
// tests. Unknown subscribers get the default low-risk profile, same as the
// other gateway implementations.
type StaticStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewStaticStore creates an empty in-memory store
func NewStaticStore() *StaticStore {
	return &StaticStore{
		profiles: make(map[string]*Profile),
	}
}

// Put registers a profile for its MSISDN
func (s *StaticStore) Put(profile *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.MSISDN] = profile
}

// Lookup returns a copy of the registered profile, or the default profile
// when the subscriber is unknown.
func (s *StaticStore) Lookup(ctx context.Context, msisdn values.MSISDN) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	profile, ok := s.profiles[msisdn.String()]
	s.mu.RUnlock()

	if !ok {
		return DefaultProfile(msisdn), nil
	}
	return profile.Clone(), nil
}
