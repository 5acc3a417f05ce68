package debounce

import (
	"sync"
	"time"
)

type throttler struct {
	owner  *Owner
	after  time.Duration
	f      func()
	timer  *time.Timer
	closed bool
	mu     sync.Mutex
}

// NewThrottle returns a runner that executes at most one callback per
// interval. Unlike a debounced function the countdown is not restarted by new
// calls: the first call starts it, later calls within the interval only
// replace the callback, and whatever was supplied last runs when the interval
// expires.
func NewThrottle(owner *Owner, after time.Duration) func(f func()) {
	if owner == nil {
		panic("owner can not be nil")
	} else if after < 0 {
		panic("after must not be negative")
	}

	t := &throttler{
		owner: owner,
		after: after,
	}

	owner.register(t)

	return t.add
}

func (t *throttler) add(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || !t.owner.Alive() {
		logger.Verbose("throttled call after owner close: dropped")
		return
	}

	t.f = f

	if t.timer == nil {
		t.timer = time.AfterFunc(t.after, t.fire)
	}
}

func (t *throttler) fire() {
	t.mu.Lock()

	if t.closed || !t.owner.Alive() {
		t.mu.Unlock()
		return
	}

	f := t.f
	t.f = nil
	t.timer = nil

	t.mu.Unlock()

	if f != nil {
		f()
	}
}

func (t *throttler) shutdown() {
	t.mu.Lock()
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.f = nil
	t.mu.Unlock()
}
