package socket

import "sync"

// Registry tracks the live sessions per document. It is a routing table
// only: it never owns a session's lifetime, the underlying channel does.
// All methods are safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[*Session]bool
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[*Session]bool)}
}

func (r *Registry) Register(docID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[docID] == nil {
		r.rooms[docID] = make(map[*Session]bool)
	}
	r.rooms[docID][s] = true
}

// Unregister removes the session from the document's live set and reports
// whether it was present. Calling it again for the same session is a no-op.
func (r *Registry) Unregister(docID string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[docID]
	if !ok || !room[s] {
		return false
	}
	delete(room, s)
	if len(room) == 0 {
		delete(r.rooms, docID)
	}
	return true
}

// Targets returns a consistent snapshot of the document's sessions other
// than exclude. Callers iterate it without holding any registry lock.
func (r *Registry) Targets(docID string, exclude *Session) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	targets := make([]*Session, 0, len(r.rooms[docID]))
	for s := range r.rooms[docID] {
		if s != exclude {
			targets = append(targets, s)
		}
	}
	return targets
}

// Sessions returns a snapshot of every session bound to the document.
func (r *Registry) Sessions(docID string) []*Session {
	return r.Targets(docID, nil)
}

// Count returns the number of live sessions for the document.
func (r *Registry) Count(docID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[docID])
}
