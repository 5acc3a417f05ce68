package debounce

import (
	"sync"
	"time"
)

const keyedIdle = 1 * time.Minute

type keyedEntry struct {
	bound *bound[func()]
	last  time.Time
}

// Keyed debounces independently per string key: calls with the same key
// within the quiet period collapse, calls with different keys never interfere.
// Idle keys are evicted in the background so long-lived owners do not
// accumulate one timer per key forever.
type Keyed struct {
	owner *Owner
	after time.Duration
	keys  map[string]*keyedEntry
	mu    sync.Mutex
}

func NewKeyed(owner *Owner, after time.Duration) *Keyed {
	if owner == nil {
		panic("owner can not be nil")
	} else if after < 0 {
		panic("after must not be negative")
	}

	keyed := &Keyed{
		owner: owner,
		after: after,
		keys:  make(map[string]*keyedEntry),
	}

	go keyed.loop()

	return keyed
}

func (k *Keyed) loop() {
	for k.owner.Alive() {
		time.Sleep(1 * time.Second)
		k.mu.Lock()
		for key, entry := range k.keys {
			if time.Since(entry.last) > k.after+keyedIdle {
				entry.bound.retire()
				delete(k.keys, key)
			}
		}
		k.mu.Unlock()
	}
}

// Do schedules fn to run once key has been quiet for the configured duration.
// A later Do with the same key replaces fn before it runs.
func (k *Keyed) Do(key string, fn func()) {
	k.mu.Lock()

	entry, ok := k.keys[key]
	if !ok {
		entry = &keyedEntry{
			bound: newBound(func(f func()) {
				f()
			}, k.owner, k.after),
		}
		k.keys[key] = entry
	}

	entry.last = time.Now()
	k.mu.Unlock()

	entry.bound.call(fn)
}

// Forget drops key eagerly, cancelling any pending run for it.
func (k *Keyed) Forget(key string) {
	k.mu.Lock()
	if entry, ok := k.keys[key]; ok {
		entry.bound.retire()
		delete(k.keys, key)
	}
	k.mu.Unlock()
}

// Len reports how many keys currently hold a binding.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}
