package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Tasks run synchronously
// from Advance, in due order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	next  uint64
	tasks map[uint64]manualTask
}

type manualTask struct {
	due time.Duration
	seq uint64
	fn  func()
}

func NewManual() *Manual {
	return &Manual{tasks: make(map[uint64]manualTask)}
}

func (m *Manual) After(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.tasks[id] = manualTask{due: m.now + d, seq: id, fn: fn}
	return func() {
		m.mu.Lock()
		delete(m.tasks, id)
		m.mu.Unlock()
	}
}

func (m *Manual) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = make(map[uint64]manualTask)
}

// Pending returns the number of tasks not yet run or canceled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward by d and runs every task that fell due.
// Tasks scheduled by a running task are eligible in the same call.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
	for {
		m.mu.Lock()
		var due []uint64
		for id, t := range m.tasks {
			if t.due <= m.now {
				due = append(due, id)
			}
		}
		if len(due) == 0 {
			m.mu.Unlock()
			return
		}
		sort.Slice(due, func(i, j int) bool {
			a, b := m.tasks[due[i]], m.tasks[due[j]]
			if a.due != b.due {
				return a.due < b.due
			}
			return a.seq < b.seq
		})
		t := m.tasks[due[0]]
		delete(m.tasks, due[0])
		m.mu.Unlock()
		t.fn()
	}
}
