package debounce

import (
	"sync"
	"time"

	"github.com/Azizi-X/debounce/debug"
)

// DefaultDuration is a reasonable quiet period for UI-style event streams.
const DefaultDuration = 300 * time.Millisecond

var logger = debug.NewLogger()

// Logger returns the diagnostics logger used for dropped invocations.
func Logger() *debug.Logger {
	return logger
}

type bound[T any] struct {
	fn         func(T)
	owner      *Owner
	after      time.Duration
	timer      *time.Timer
	pending    T
	seq        uint64
	registered bool
	closed     bool
	mu         sync.Mutex
}

// New returns a debounced version of fn. Each call to the returned function
// captures its argument and restarts a single-shot timer hosted by owner;
// once after has elapsed with no further calls, fn runs with the argument of
// the last call. Earlier arguments are discarded without running fn. The
// returned function never runs fn synchronously, not even with after == 0.
//
// Every call to New creates an independent binding: two debounced functions
// bound to the same owner never share a timer. Closing the owner stops the
// timer; calls made after that are dropped.
func New[T any](fn func(T), owner *Owner, after time.Duration) func(T) {
	b := newBound(fn, owner, after)
	return b.call
}

// Func is the zero-argument form of New.
func Func(fn func(), owner *Owner, after time.Duration) func() {
	debounced := New(func(struct{}) {
		fn()
	}, owner, after)

	return func() {
		debounced(struct{}{})
	}
}

// NewDebouncer returns a debounced runner that takes the function to execute
// on each call instead of at construction. Only the most recently supplied
// function runs once the quiet period elapses.
func NewDebouncer(owner *Owner, after time.Duration) func(f func()) {
	return New(func(f func()) {
		f()
	}, owner, after)
}

func newBound[T any](fn func(T), owner *Owner, after time.Duration) *bound[T] {
	if fn == nil {
		panic("fn can not be nil")
	} else if owner == nil {
		panic("owner can not be nil")
	} else if after < 0 {
		panic("after must not be negative")
	}

	return &bound[T]{
		fn:    fn,
		owner: owner,
		after: after,
	}
}

func (b *bound[T]) call(v T) {
	b.mu.Lock()

	if b.closed || !b.owner.Alive() {
		b.mu.Unlock()
		logger.Verbose("dropped call: binding or owner closed")
		return
	}

	// Registration is lazy so that construction has no side effects on the
	// owner; the binding only becomes the owner's to tear down once it holds
	// a timer.
	if !b.registered {
		b.owner.register(b)
		b.registered = true
	}

	b.pending = v
	b.seq++
	seq := b.seq

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.after, func() {
		b.fire(seq)
	})

	b.mu.Unlock()
}

func (b *bound[T]) fire(seq uint64) {
	b.mu.Lock()

	// A stale timer that lost the race against a newer arming delivers
	// nothing; the newer timer owns the pending value.
	if b.closed || seq != b.seq || !b.owner.Alive() {
		b.mu.Unlock()
		return
	}

	v := b.pending
	var zero T
	b.pending = zero
	b.timer = nil

	b.mu.Unlock()

	b.fn(v)
}

func (b *bound[T]) shutdown() {
	b.mu.Lock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	var zero T
	b.pending = zero
	b.mu.Unlock()
}

func (b *bound[T]) retire() {
	b.shutdown()
	b.owner.unregister(b)
}
