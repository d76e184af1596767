package tray

import "sync"

// eventQueue is an unbounded FIFO shared by producers (pump, scheduler) and
// the single consumer.
type eventQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Event
	closed bool
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends ev. It reports false once the queue is closed.
func (q *eventQueue) Push(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, ev)
	q.cond.Signal()
	return true
}

// Pop blocks until an event is available. After Close it keeps returning
// queued events and then reports false.
func (q *eventQueue) Pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return 0, false
	}
	ev := q.items[0]
	q.items[0] = 0
	q.items = q.items[1:]
	return ev, true
}

// Close stops accepting events and wakes the consumer.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// Len returns the number of queued events.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
