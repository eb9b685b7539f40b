// Package blueroute resolves request targets into lang, controller and
// args using configured url_schemes.
package blueroute

import "sync"

type O map[string]interface{}

// reqcount counts resolved requests per controller.
type reqcount struct {
	r map[string]uint64
	s sync.Mutex
}

func (r *reqcount) Add(k string) {
	r.s.Lock()
	defer r.s.Unlock()

	if r.r == nil {
		r.r = make(map[string]uint64)
	}
	r.r[k]++
}

func (r *reqcount) Get(k string) uint64 {
	r.s.Lock()
	defer r.s.Unlock()

	return r.r[k]
}

func (r *reqcount) Snapshot() map[string]uint64 {
	r.s.Lock()
	defer r.s.Unlock()

	out := make(map[string]uint64, len(r.r))
	for k, v := range r.r {
		out[k] = v
	}
	return out
}
