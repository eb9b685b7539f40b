package blueroute

import (
	"sort"
	"sync"
)

// store holds request-scoped values set by hooks and handlers.
type store struct {
	m  map[string]interface{}
	mu sync.Mutex
}

func newStore() *store {
	return &store{
		m: make(map[string]interface{}),
	}
}

func (s *store) Set(k string, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[k] = v
}

func (s *store) Get(k string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.m[k]
	return v, ok
}

func (s *store) Del(k string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, k)
}

// Keys returns the stored keys sorted.
func (s *store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.m)
}
