package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/Coconhat/Currency-converter/pkg/eventbus"
	"github.com/Coconhat/Currency-converter/pkg/provider"
)

// ErrClosed is returned by operations on a closed view.
var ErrClosed = errors.New("converter view is closed")

// Options configures a View.
type Options struct {
	// Debounce is the quiet period before a lookup; DefaultDebounce when zero.
	Debounce time.Duration
	// DiscardStale ignores responses to requests older than the newest
	// issued one. When false a slow response may overwrite a newer result.
	DiscardStale bool
	// Scheduler arms the debounce timer; SystemScheduler when nil.
	Scheduler Scheduler
	// Bus receives conversion events when set.
	Bus    eventbus.Bus
	Logger *slog.Logger
}

// View holds one converter's state. All operations are safe for concurrent
// use; state transitions are serialised by a single mutex.
type View struct {
	converter    provider.RateConverter
	debouncer    *Debouncer
	bus          eventbus.Bus
	logger       *slog.Logger
	discardStale bool

	mu        sync.Mutex
	state     State
	issued    uint64
	inflight  int
	idle      *sync.Cond
	listeners []func(State)
	closed    bool

	notifyMu  sync.Mutex
	delivered uint64
}

// New creates a view in the default state. No lookup is issued until the
// amount is set.
func New(converter provider.RateConverter, opts Options) *View {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	v := &View{
		converter:    converter,
		debouncer:    NewDebouncer(opts.Scheduler, opts.Debounce),
		bus:          opts.Bus,
		logger:       opts.Logger,
		discardStale: opts.DiscardStale,
		state:        DefaultState(),
	}
	v.idle = sync.NewCond(&v.mu)
	return v
}

// State returns a snapshot of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Display renders the current state.
func (v *View) Display() Display {
	return Render(v.State())
}

// Subscribe registers fn to be called after every state transition with the
// new state. Calls are serialised and never go back to an older version.
func (v *View) Subscribe(fn func(State)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// SetAmount replaces the amount text as entered, valid or not. An empty
// amount suppresses the lookup.
func (v *View) SetAmount(text string) error {
	return v.update(func(s *State) { s.AmountText = text })
}

// SelectSource selects the currency converted from.
func (v *View) SelectSource(code string) error {
	if !currency.IsSupported(code) {
		return fmt.Errorf("%w: %q", currency.ErrUnsupportedCurrency, code)
	}
	return v.update(func(s *State) { s.Source = code })
}

// SelectTarget selects the currency converted to.
func (v *View) SelectTarget(code string) error {
	if !currency.IsSupported(code) {
		return fmt.Errorf("%w: %q", currency.ErrUnsupportedCurrency, code)
	}
	return v.update(func(s *State) { s.Target = code })
}

// Swap exchanges source and target in a single transition.
func (v *View) Swap() error {
	return v.update(func(s *State) { s.Source, s.Target = s.Target, s.Source })
}

// Flush issues the pending lookup now instead of waiting for the debounce,
// and returns once it completed. It reports whether a lookup was pending.
func (v *View) Flush() bool {
	return v.debouncer.Flush()
}

// Pending reports whether a debounced lookup is armed.
func (v *View) Pending() bool {
	return v.debouncer.Pending()
}

// Wait blocks until no lookup request is in flight.
func (v *View) Wait() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for v.inflight > 0 {
		v.idle.Wait()
	}
}

// Close cancels the pending lookup and drops all listeners. A request that
// was already issued still completes and updates the discarded state.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	v.listeners = nil
	v.mu.Unlock()

	v.debouncer.Stop()
}

// Closed reports whether Close was called.
func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *View) update(mutate func(*State)) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	before := v.state.lookupInput()
	mutate(&v.state)
	if v.state.lookupInput() == before {
		v.mu.Unlock()
		return nil
	}
	v.state.Version++
	snap := v.state
	v.mu.Unlock()

	v.notify(snap)
	v.debouncer.Trigger(v.lookup)
	return nil
}

// lookup runs when the debounce timer expires.
func (v *View) lookup() {
	v.mu.Lock()
	req := v.state
	if v.closed || req.AmountText == "" || req.Source == "" || req.Target == "" {
		v.mu.Unlock()
		return
	}
	v.issued++
	seq := v.issued
	v.inflight++
	v.state.IsLoading = true
	v.state.Version++
	snap := v.state
	v.mu.Unlock()

	requested := ConversionRequested{
		Seq:    seq,
		Amount: req.AmountText,
		From:   req.Source,
		To:     req.Target,
	}
	v.notify(snap)
	v.publish(requested)

	// The request is not tied to the view's lifetime: once issued it is
	// allowed to complete.
	conv, err := v.converter.Convert(context.Background(), req.AmountText, req.Source, req.Target)
	defer v.finish()

	v.mu.Lock()
	if v.discardStale && seq < v.issued {
		v.mu.Unlock()
		v.logger.Debug("Discarding stale conversion",
			"seq", seq, "latest", v.issued, "from", req.Source, "to", req.Target)
		v.publish(ConversionDiscarded{ConversionRequested: requested})
		return
	}
	if err == nil {
		v.state.ConvertedAmount = conv.Value
	}
	v.state.IsLoading = false
	v.state.Version++
	snap = v.state
	v.mu.Unlock()

	if err != nil {
		v.logger.Error("conversion failed",
			"amount", req.AmountText, "from", req.Source, "to", req.Target, "error", err)
		v.publish(ConversionFailed{ConversionRequested: requested, Err: err})
	} else {
		v.publish(ConversionSucceeded{ConversionRequested: requested, Value: conv.Value})
	}
	v.notify(snap)
}

// finish marks a lookup done once its events and notifications are out.
func (v *View) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inflight--
	if v.inflight == 0 {
		v.idle.Broadcast()
	}
}

func (v *View) notify(snap State) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()
	if snap.Version <= v.delivered {
		return
	}
	v.delivered = snap.Version

	v.mu.Lock()
	listeners := slices.Clone(v.listeners)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (v *View) publish(e eventbus.Event) {
	if v.bus == nil {
		return
	}
	if err := v.bus.Publish(context.Background(), e); err != nil {
		v.logger.Warn("Failed to publish conversion event", "event_type", e.Type(), "error", err)
	}
}
