// Package schedule runs delayed, cancelable tasks owned by a session.
package schedule

import (
	"sync"
	"time"
)

// Timers tracks pending time.AfterFunc tasks so they can be dropped together.
type Timers struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]*time.Timer
}

func New() *Timers {
	return &Timers{pending: make(map[uint64]*time.Timer)}
}

// After runs fn on its own goroutine once d has elapsed. The returned func
// cancels the task; calling it after the task ran is harmless.
func (t *Timers) After(d time.Duration, fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.next
	t.next++
	t.pending[id] = time.AfterFunc(d, func() {
		t.mu.Lock()
		_, live := t.pending[id]
		delete(t.pending, id)
		t.mu.Unlock()
		if live {
			fn()
		}
	})
	return func() { t.cancel(id) }
}

func (t *Timers) cancel(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tm, ok := t.pending[id]; ok {
		tm.Stop()
		delete(t.pending, id)
	}
}

// CancelAll stops every pending task.
func (t *Timers) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, tm := range t.pending {
		tm.Stop()
		delete(t.pending, id)
	}
}

// Pending returns the number of tasks that have not run or been canceled.
func (t *Timers) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
