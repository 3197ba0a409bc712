package wicore

import "sync"

// registry maps handle ids to results. Ids are drawn from one counter for
// every kind and are never reused, so a stale or foreign id can only miss.
type registry struct {
	mu      sync.RWMutex
	next    uint64
	entries map[uint64]any
}

var handles = &registry{entries: make(map[uint64]any)}

func (r *registry) put(v any) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.entries[r.next] = v
	return r.next
}

func (r *registry) get(id uint64) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[id]
	return v, ok
}

func (r *registry) remove(id uint64) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	return v, ok
}

// LiveHandles reports how many handles of any kind have not been released.
func LiveHandles() int {
	handles.mu.RLock()
	defer handles.mu.RUnlock()
	return len(handles.entries)
}
