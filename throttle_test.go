package debounce_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Azizi-X/debounce"
	"github.com/stretchr/testify/require"
)

func TestThrottleRunsOncePerInterval(t *testing.T) {
	owner := debounce.NewOwner(context.Background())
	defer owner.Close()

	throttled := debounce.NewThrottle(owner, 50*time.Millisecond)

	var got atomic.Int32

	throttled(func() { got.Store(1) })
	throttled(func() { got.Store(2) })
	throttled(func() { got.Store(3) })

	time.Sleep(150 * time.Millisecond)
	require.EqualValues(t, 3, got.Load())
}

func TestThrottleDoesNotExtendInterval(t *testing.T) {
	owner := debounce.NewOwner(context.Background())
	defer owner.Close()

	throttled := debounce.NewThrottle(owner, 100*time.Millisecond)

	var runs atomic.Int32
	run := func() { runs.Add(1) }

	// Keep calling past the interval; unlike a debounced function this must
	// still fire, since calls do not restart the countdown.
	for range 15 {
		throttled(run)
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	require.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestThrottleTeardown(t *testing.T) {
	owner := debounce.NewOwner(context.Background())

	throttled := debounce.NewThrottle(owner, 50*time.Millisecond)

	var runs atomic.Int32

	throttled(func() { runs.Add(1) })
	owner.Close()

	time.Sleep(150 * time.Millisecond)
	require.EqualValues(t, 0, runs.Load())

	require.NotPanics(t, func() {
		throttled(func() { runs.Add(1) })
	})
}

func TestThrottlePanics(t *testing.T) {
	owner := debounce.NewOwner(context.Background())
	defer owner.Close()

	require.Panics(t, func() {
		debounce.NewThrottle(nil, time.Second)
	})

	require.Panics(t, func() {
		debounce.NewThrottle(owner, -time.Second)
	})
}
