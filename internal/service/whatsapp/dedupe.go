package whatsapp

import "sync"

// messageDeduper remembers recently processed webhook message IDs. Meta
// redelivers webhooks that are not acknowledged fast enough, and a replayed
// income entry or report request should not be answered twice.
type messageDeduper struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
	limit int
}

func newMessageDeduper(limit int) *messageDeduper {
	return &messageDeduper{
		seen:  make(map[string]struct{}),
		limit: limit,
	}
}

// Remember records the ID and reports whether it was already known. The
// oldest IDs are evicted once the retention limit is reached.
func (d *messageDeduper) Remember(id string) bool {
	if id == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	d.seen[id] = struct{}{}
	d.order = append(d.order, id)
	if len(d.order) > d.limit {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}
	return false
}

// Forget drops an ID so a redelivered copy is processed again. Unknown IDs
// are a no-op.
func (d *messageDeduper) Forget(id string) {
	if id == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; !exists {
		return
	}

	delete(d.seen, id)
	for i, known := range d.order {
		if known == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}
