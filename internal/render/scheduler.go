package render

import (
	"sync"
	"time"
)

// FrameID identifies a scheduled frame. Zero is never issued.
type FrameID uint64

type FrameFunc func(now time.Time)

// Scheduler runs a callback before the next repaint.
type Scheduler interface {
	Request(fn FrameFunc) FrameID
	Cancel(id FrameID)
}

// QueueScheduler holds requested frames until the host calls Flush, once
// per repaint. Terminal and window hosts pump it from their own loops.
type QueueScheduler struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]FrameFunc
	order   []FrameID
}

func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{pending: make(map[FrameID]FrameFunc)}
}

func (q *QueueScheduler) Request(fn FrameFunc) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

func (q *QueueScheduler) Cancel(id FrameID) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

// Flush runs every callback requested before the call, in request order.
// Callbacks requested while flushing wait for the next Flush.
func (q *QueueScheduler) Flush(now time.Time) int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	q.mu.Unlock()

	ran := 0
	for _, id := range order {
		q.mu.Lock()
		fn, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		ran++
	}
	return ran
}

func (q *QueueScheduler) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// TickerScheduler fires each requested frame one interval after the
// request, on a timer goroutine.
type TickerScheduler struct {
	interval time.Duration

	mu     sync.Mutex
	next   FrameID
	timers map[FrameID]*time.Timer
	closed bool
}

func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerScheduler{interval: interval, timers: make(map[FrameID]*time.Timer)}
}

func (t *TickerScheduler) Request(fn FrameFunc) FrameID {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0
	}
	t.next++
	id := t.next
	t.timers[id] = time.AfterFunc(t.interval, func() {
		t.mu.Lock()
		_, live := t.timers[id]
		delete(t.timers, id)
		t.mu.Unlock()
		if live {
			fn(time.Now())
		}
	})
	return id
}

func (t *TickerScheduler) Cancel(id FrameID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
}

// Stop cancels every pending frame and refuses new requests.
func (t *TickerScheduler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}

func (t *TickerScheduler) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}
