package roomxr

import "sync"

type release struct {
	name string
	fn   func()
}

// Scope collects teardown functions for everything acquired during a mount
// and runs them in reverse order, once.
type Scope struct {
	mu       sync.Mutex
	releases []release
	closed   bool
}

// Defer registers fn to run on Close. A nil fn is ignored. After Close, fn
// runs immediately so late acquisitions are not leaked.
func (s *Scope) Defer(name string, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.releases = append(s.releases, release{name: name, fn: fn})
	s.mu.Unlock()
}

// Close runs the registered releases last-in first-out and returns their
// names in the order they ran. Subsequent calls do nothing.
func (s *Scope) Close() []string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	names := make([]string, 0, len(releases))
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i].fn()
		names = append(names, releases[i].name)
	}
	return names
}

func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
