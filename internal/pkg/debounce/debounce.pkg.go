package debounce

import (
	"context"
	"sync"
	"time"
)

// Func is invoked once input has been quiet for the debounce period. ctx is
// cancelled when a newer call supersedes it or the Debouncer is closed.
type Func[T any] func(ctx context.Context, value T)

// Debouncer coalesces rapid Trigger calls into at most one invocation per
// quiet period. Only the latest value is delivered.
type Debouncer[T any] struct {
	mu     sync.Mutex
	wait   time.Duration
	fn     Func[T]
	timer  *time.Timer
	cancel context.CancelFunc
	gen    uint64
	closed bool
	wg     sync.WaitGroup
}

func New[T any](wait time.Duration, fn Func[T]) *Debouncer[T] {
	return &Debouncer[T]{wait: wait, fn: fn}
}

// Trigger schedules fn(value) after the quiet period, cancelling the pending
// timer and any invocation still running.
func (d *Debouncer[T]) Trigger(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stopLocked()

	d.gen++
	gen := d.gen
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		if d.closed || d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.wg.Add(1)
		d.mu.Unlock()

		defer d.wg.Done()
		d.fn(ctx, value)
	})
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Cancel drops the pending call and cancels a running one.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.stopLocked()
}

// Close cancels everything pending and waits for a running invocation to
// return. No invocation starts after Close.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	d.closed = true
	d.stopLocked()
	d.mu.Unlock()
	d.wg.Wait()
}
