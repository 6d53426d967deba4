package converter

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/provider"
)

// manualScheduler is a simulated clock. Timers only fire from Advance, on the
// goroutine that calls it.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward and runs every timer that became due.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Armed counts timers that have neither fired nor been stopped.
func (s *manualScheduler) Armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type convertCall struct {
	Amount, From, To string
}

// fakeConverter records calls and answers through respond. Without respond it
// converts at a fixed rate of 2.
type fakeConverter struct {
	mu      sync.Mutex
	calls   []convertCall
	respond func(amount, from, to string) (*provider.Conversion, error)
}

func (f *fakeConverter) Convert(_ context.Context, amount, from, to string) (*provider.Conversion, error) {
	f.mu.Lock()
	f.calls = append(f.calls, convertCall{Amount: amount, From: from, To: to})
	respond := f.respond
	f.mu.Unlock()

	if respond != nil {
		return respond(amount, from, to)
	}
	return &provider.Conversion{Amount: amount, From: from, To: to, Value: 2}, nil
}

func (f *fakeConverter) Name() string { return "fake" }

func (f *fakeConverter) Calls() []convertCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]convertCall(nil), f.calls...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestView(conv provider.RateConverter, opts Options) (*View, *manualScheduler) {
	sched := &manualScheduler{}
	opts.Scheduler = sched
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return New(conv, opts), sched
}

func valueOf(v float64) func(amount, from, to string) (*provider.Conversion, error) {
	return func(amount, from, to string) (*provider.Conversion, error) {
		return &provider.Conversion{Amount: amount, From: from, To: to, Value: v}, nil
	}
}
