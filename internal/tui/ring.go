package tui

// ring keeps the most recent entries of one footer label. Browsing starts
// past the newest entry; prev walks back, next walks forward to the draft.
type ring struct {
	items []string
	cap   int
	pos   int
}

func newRing(capacity int) *ring {
	return &ring{cap: capacity}
}

// push records value, skipping an immediate repeat, and resets browsing
func (r *ring) push(value string) {
	if value == "" {
		r.reset()
		return
	}
	if n := len(r.items); n == 0 || r.items[n-1] != value {
		r.items = append(r.items, value)
		if len(r.items) > r.cap {
			r.items = r.items[len(r.items)-r.cap:]
		}
	}
	r.reset()
}

func (r *ring) reset() { r.pos = len(r.items) }

// prev returns the entry before the cursor, wrapping to the newest
func (r *ring) prev() (string, bool) {
	if len(r.items) == 0 {
		return "", false
	}
	r.pos--
	if r.pos < 0 {
		r.pos = len(r.items) - 1
	}
	return r.items[r.pos], true
}

// next returns the entry after the cursor, wrapping to the oldest
func (r *ring) next() (string, bool) {
	if len(r.items) == 0 {
		return "", false
	}
	r.pos++
	if r.pos >= len(r.items) {
		r.pos = 0
	}
	return r.items[r.pos], true
}

func (r *ring) len() int { return len(r.items) }
