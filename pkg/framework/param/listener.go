package param

import (
	"sync"
	"sync/atomic"
)

// Listener is notified when a parameter changes from the UI.
// Host writes never reach it.
type Listener interface {
	ParamUIChanged(p *Param)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(p *Param)

// ParamUIChanged calls f(p).
func (f ListenerFunc) ParamUIChanged(p *Param) {
	f(p)
}

// ListenerHandle identifies one registration. The zero handle is never issued.
type ListenerHandle uint64

type listenerEntry struct {
	handle   ListenerHandle
	listener Listener
}

// listenerSet is copy-on-write: writers serialize on mu, notify reads a
// snapshot without locking.
type listenerSet struct {
	mu       sync.Mutex
	next     ListenerHandle
	snapshot atomic.Pointer[[]listenerEntry]
}

func (s *listenerSet) add(l Listener) ListenerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next

	var cur []listenerEntry
	if p := s.snapshot.Load(); p != nil {
		cur = *p
	}
	updated := make([]listenerEntry, len(cur), len(cur)+1)
	copy(updated, cur)
	updated = append(updated, listenerEntry{handle: h, listener: l})
	s.snapshot.Store(&updated)

	return h
}

func (s *listenerSet) remove(h ListenerHandle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.snapshot.Load()
	if p == nil {
		return false
	}
	cur := *p
	for i, e := range cur {
		if e.handle != h {
			continue
		}
		updated := make([]listenerEntry, 0, len(cur)-1)
		updated = append(updated, cur[:i]...)
		updated = append(updated, cur[i+1:]...)
		s.snapshot.Store(&updated)
		return true
	}
	return false
}

func (s *listenerSet) len() int {
	if p := s.snapshot.Load(); p != nil {
		return len(*p)
	}
	return 0
}

func (s *listenerSet) notify(param *Param) {
	p := s.snapshot.Load()
	if p == nil {
		return
	}
	for _, e := range *p {
		e.listener.ParamUIChanged(param)
	}
}
