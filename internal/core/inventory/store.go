package inventory

import (
	"sort"
	"sync"

	"github.com/zeusync/interact/internal/core/interact"
)

var (
	_ interact.KeyChecker = (*Store)(nil)
	_ interact.KeyGranter = (*Store)(nil)
)

// Store is the in-memory possession store: a set of key names per agent.
type Store struct {
	mu   sync.RWMutex
	keys map[interact.AgentID]map[string]struct{}
}

func NewStore() *Store {
	return &Store{keys: make(map[interact.AgentID]map[string]struct{})}
}

func (s *Store) HasKey(agent interact.AgentID, keyName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[agent][keyName]
	return ok
}

// GrantKey is idempotent.
func (s *Store) GrantKey(agent interact.AgentID, keyName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.keys[agent]
	if set == nil {
		set = make(map[string]struct{})
		s.keys[agent] = set
	}
	set[keyName] = struct{}{}
}

// Keys returns a sorted snapshot of the agent's keys.
func (s *Store) Keys(agent interact.AgentID) []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.keys[agent]))
	for k := range s.keys[agent] {
		out = append(out, k)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}
