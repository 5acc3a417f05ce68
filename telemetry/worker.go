package telemetry

import "sync"

type worker[T any] struct {
	ch   chan T
	fn   func(T)
	once sync.Once
	wg   sync.WaitGroup
}

func newWorker[T any](workers, buf int, fn func(T)) *worker[T] {
	if fn == nil {
		panic("fn can not be nil")
	} else if workers <= 0 {
		panic("workers must be greater than 0")
	}

	w := &worker[T]{
		ch: make(chan T, buf),
		fn: fn,
	}

	w.wg.Add(workers)

	for range workers {
		go w.run()
	}

	return w
}

func (w *worker[T]) run() {
	defer w.wg.Done()

	for v := range w.ch {
		w.fn(v)
	}
}

func (w *worker[T]) Send(v T) {
	w.ch <- v
}

func (w *worker[T]) Close() {
	w.once.Do(func() {
		close(w.ch)
		w.wg.Wait()
	})
}
