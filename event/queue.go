package event

import (
	"sync"
	"sync/atomic"
)

// QueueSize is the default number of events held between frames
const QueueSize = 512

// Queue buffers decoded events from the input goroutine until the frame
// loop consumes them.
//
// A mouse move pushed directly after another pending mouse move replaces
// it, so a burst of motion costs one event per frame. When the queue is
// full the oldest event is dropped and counted.
type Queue struct {
	mu      sync.Mutex
	limit   int
	pending []Event
	spare   []Event
	dropped *atomic.Int64
}

// NewQueue holds up to limit events, QueueSize if limit is not positive
// Drops are added to dropped when it is non-nil
func NewQueue(limit int, dropped *atomic.Int64) *Queue {
	if limit <= 0 {
		limit = QueueSize
	}
	return &Queue{
		limit:   limit,
		pending: make([]Event, 0, limit),
		spare:   make([]Event, 0, limit),
		dropped: dropped,
	}
}

func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.push(ev)
	q.mu.Unlock()
}

// PushAll pushes events in order under one lock
func (q *Queue) PushAll(evs []Event) {
	if len(evs) == 0 {
		return
	}
	q.mu.Lock()
	for _, ev := range evs {
		q.push(ev)
	}
	q.mu.Unlock()
}

func (q *Queue) push(ev Event) {
	if n := len(q.pending); n > 0 && ev.Kind == KindMouseMove && q.pending[n-1].Kind == KindMouseMove {
		q.pending[n-1] = ev
		return
	}
	if len(q.pending) == q.limit {
		copy(q.pending, q.pending[1:])
		q.pending = q.pending[:len(q.pending)-1]
		if q.dropped != nil {
			q.dropped.Add(1)
		}
	}
	q.pending = append(q.pending, ev)
}

// Consume returns pending events in FIFO order, or nil if there are none
// The slice is reused and stays valid only until the next Consume
func (q *Queue) Consume() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending, q.spare = q.spare[:0], out
	return out
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
