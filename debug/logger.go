// Package debug is the library's diagnostics sink. The debounce package
// reports dropped invocations here; applications tap the stream with
// AddCallback instead of the library forcing a log destination on them.
package debug

import (
	"fmt"
	"sync"
)

const (
	Verbose = 1
	Warning = 2
)

type Logger struct {
	callbacks []func(message string, stack Stack, level int)
	maxDepth  int
	strip     bool
	Calls     int
	mu        sync.Mutex
}

func NewLogger() *Logger {
	return &Logger{
		maxDepth: maxDepth,
	}
}

func (l *Logger) SetStrip(strip bool) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.strip = strip
	return l
}

func (l *Logger) SetMaxDepth(depth int) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxDepth = depth
	return l
}

func (l *Logger) AddCallback(callback func(message string, stack Stack, level int)) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callbacks = append(l.callbacks, callback)
	return l
}

func (l *Logger) Verbose(msg string, formats ...any) {
	l.Log(Verbose, msg, formats...)
}

func (l *Logger) Warn(msg string, formats ...any) {
	l.Log(Warning, msg, formats...)
}

func (l *Logger) Log(level int, msg string, formats ...any) {
	if l == nil {
		return
	}

	msg = fmt.Sprintf(msg, formats...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.callbacks) == 0 {
		return
	}

	l.Calls++

	stack := makeStack(msg, 4, stackOptions{
		strip:    l.strip,
		maxDepth: l.maxDepth,
		calls:    l.Calls,
	})

	for _, callback := range l.callbacks {
		go callback(msg, stack, level)
	}
}
