package tui

import "github.com/studiowebux/openapi-tui/internal/action"

// queue is the FIFO of actions awaiting dispatch within one event
type queue struct {
	items []action.Action
}

func (q *queue) push(a action.Action) {
	if a != nil {
		q.items = append(q.items, a)
	}
}

func (q *queue) pop() (action.Action, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}

func (q *queue) len() int { return len(q.items) }
