// Package notify keeps the transient message shown to the player.
package notify

import (
	"sync"
	"time"

	"svw.info/powerletter/internal/ports"
)

// Player-facing messages.
const (
	MsgIncompletePath = "Path must connect two endpoints"
	MsgNoHintsLeft    = "No hints left"
	MsgNoPath         = "No path found"
	MsgSolved         = "All letters connected!"
)

// Banner holds at most one message and clears it when its duration runs out.
// A newer message replaces the old one and its pending clear.
type Banner struct {
	mu     sync.Mutex
	sched  ports.Scheduler
	msg    string
	gen    uint64
	cancel func()
}

func NewBanner(sched ports.Scheduler) *Banner {
	return &Banner{sched: sched}
}

func (b *Banner) Notify(message string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.msg = message
	b.gen++
	if d <= 0 {
		return
	}
	gen := b.gen
	b.cancel = b.sched.After(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen != gen {
			return
		}
		b.msg = ""
		b.cancel = nil
	})
}

// Current returns the message on display, or "".
func (b *Banner) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}
