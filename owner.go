package debounce

import (
	"context"
	"sync"
)

// Owner hosts the timers created by debounced functions bound to it. Closing
// the owner stops every pending timer; nothing fires afterwards. Closing the
// parent context closes the owner the same way.
type Owner struct {
	ctx      context.Context
	cancel   context.CancelFunc
	onClose  func()
	bindings map[binding]struct{}
	mu       sync.Mutex
	once     sync.Once
}

type binding interface {
	shutdown()
}

func NewOwner(parent context.Context) *Owner {
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)

	owner := &Owner{
		ctx:      ctx,
		cancel:   cancel,
		bindings: make(map[binding]struct{}),
	}

	go owner.watch()

	return owner
}

func (o *Owner) watch() {
	<-o.ctx.Done()
	o.Close()
}

func (o *Owner) Alive() bool {
	return o.ctx.Err() == nil
}

func (o *Owner) C() <-chan struct{} {
	return o.ctx.Done()
}

func (o *Owner) SetOnClose(fn func()) *Owner {
	o.mu.Lock()
	o.onClose = fn
	o.mu.Unlock()
	return o
}

func (o *Owner) Close() {
	o.once.Do(func() {
		o.cancel()

		o.mu.Lock()
		bindings := o.bindings
		o.bindings = nil
		onClose := o.onClose
		o.mu.Unlock()

		for b := range bindings {
			b.shutdown()
		}

		if onClose != nil {
			go onClose()
		}
	})
}

func (o *Owner) register(b binding) {
	o.mu.Lock()
	if o.bindings != nil {
		o.bindings[b] = struct{}{}
	}
	o.mu.Unlock()
}

func (o *Owner) unregister(b binding) {
	o.mu.Lock()
	delete(o.bindings, b)
	o.mu.Unlock()
}
