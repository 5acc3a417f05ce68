package debug_test

import (
	"testing"
	"time"

	"github.com/Azizi-X/debounce/debug"
	"github.com/stretchr/testify/require"
)

func TestLoggerCallback(t *testing.T) {
	type entry struct {
		message string
		stack   debug.Stack
		level   int
	}

	entries := make(chan entry, 1)

	logger := debug.NewLogger().SetStrip(true)
	logger.AddCallback(func(message string, stack debug.Stack, level int) {
		entries <- entry{message, stack, level}
	})

	logger.Verbose("dropped %d calls", 3)

	select {
	case got := <-entries:
		require.Equal(t, "dropped 3 calls", got.message)
		require.Equal(t, debug.Verbose, got.level)
		require.NotEmpty(t, got.stack.Frames)
		require.NotEmpty(t, got.stack.Hash())
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

func TestNilLogger(t *testing.T) {
	var logger *debug.Logger
	require.NotPanics(t, func() {
		logger.Warn("ignored")
	})
}
