package core

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// liveResources counts GPU-backed allocations (geometries, materials and
// anything else registered through TrackResource) that have not been freed.
var liveResources atomic.Int64

// LiveResources reports the number of GPU-backed resources currently alive.
func LiveResources() int64 {
	return liveResources.Load()
}

// TrackResource records an allocation made outside this package (renderer
// contexts, overlays) and returns the matching free func. The free func is
// safe to call more than once.
func TrackResource() func() {
	liveResources.Add(1)
	var done atomic.Bool
	return func() {
		if done.CompareAndSwap(false, true) {
			liveResources.Add(-1)
		}
	}
}

// shared is a reference counted GPU resource. The creator owns the first
// reference; every mesh node using the resource holds one more.
type shared struct {
	ID   uuid.UUID
	refs atomic.Int32
	free func()
}

func (s *shared) init() {
	s.ID = uuid.New()
	s.refs.Store(1)
	s.free = TrackResource()
}

func (s *shared) retain() {
	s.refs.Add(1)
}

func (s *shared) release() {
	if s.refs.Add(-1) == 0 {
		s.free()
	}
}

// Disposed reports whether every reference has been released.
func (s *shared) Disposed() bool {
	return s.refs.Load() <= 0
}

// Refs returns the current reference count.
func (s *shared) Refs() int {
	return int(s.refs.Load())
}
