package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_FiresOnceWithLatestValue(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	d := New(100*time.Millisecond, func(_ context.Context, v string) {
		mu.Lock()
		calls = append(calls, v)
		mu.Unlock()
	})
	defer d.Close()

	for _, v := range []string{"a", "an", "ana", "ana@"} {
		d.Trigger(v)
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ana@"}, calls)
}

func TestDebouncer_CloseCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := New(30*time.Millisecond, func(context.Context, int) { fired.Add(1) })

	d.Trigger(1)
	d.Close()
	d.Trigger(2)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncer_NewerInputCancelsInFlight(t *testing.T) {
	started := make(chan struct{}, 2)
	cancelled := make(chan struct{}, 1)
	d := New(10*time.Millisecond, func(ctx context.Context, v int) {
		started <- struct{}{}
		if v == 1 {
			<-ctx.Done()
			cancelled <- struct{}{}
		}
	})
	defer d.Close()

	d.Trigger(1)
	<-started
	d.Trigger(2)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight call was not cancelled")
	}
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("second call did not fire")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var fired atomic.Int32
	d := New(20*time.Millisecond, func(context.Context, int) { fired.Add(1) })
	defer d.Close()

	d.Trigger(1)
	d.Cancel()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	d.Trigger(2)
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
}
