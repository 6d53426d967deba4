package converter

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a lookup is issued.
const DefaultDebounce = 500 * time.Millisecond

// Timer is a pending deferred call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc is the production scheduler.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules on the runtime timer heap.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs the most recently triggered function once the delay has
// passed without another trigger. A superseded timer never runs, even when
// it had already expired and was waiting to run.
type Debouncer struct {
	scheduler Scheduler
	delay     time.Duration

	mu      sync.Mutex
	timer   Timer
	fn      func()
	gen     uint64
	running int
	idle    *sync.Cond
}

func NewDebouncer(scheduler Scheduler, delay time.Duration) *Debouncer {
	if scheduler == nil {
		scheduler = SystemScheduler{}
	}
	d := &Debouncer{scheduler: scheduler, delay: delay}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Trigger cancels any pending call and arms a new one for f.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	gen := d.gen
	d.fn = f
	d.timer = d.scheduler.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Stop cancels the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Flush cancels the pending call and runs it immediately on the calling
// goroutine. Without a pending call it waits for a timer callback that is
// already running. It reports whether a call was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	f := d.fn
	d.stopLocked()
	if f == nil {
		for d.running > 0 {
			d.idle.Wait()
		}
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()

	f()
	return true
}

// Pending reports whether a call is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = nil
	d.fn = nil
	d.gen++
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.fn == nil {
		d.mu.Unlock()
		return
	}
	f := d.fn
	d.timer = nil
	d.fn = nil
	d.gen++
	d.running++
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running--
		if d.running == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}()
	f()
}
