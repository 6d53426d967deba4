package converter

import (
	"context"
	"sync/atomic"

	"github.com/Coconhat/Currency-converter/pkg/eventbus"
)

// Event types published by a View.
const (
	EventConversionRequested = "conversion.requested"
	EventConversionSucceeded = "conversion.succeeded"
	EventConversionFailed    = "conversion.failed"
	EventConversionDiscarded = "conversion.discarded"
)

// ConversionRequested is published when a lookup request is issued.
type ConversionRequested struct {
	Seq    uint64
	Amount string
	From   string
	To     string
}

func (ConversionRequested) Type() string { return EventConversionRequested }

// ConversionSucceeded is published when a lookup result was applied.
type ConversionSucceeded struct {
	ConversionRequested
	Value float64
}

func (ConversionSucceeded) Type() string { return EventConversionSucceeded }

// ConversionFailed is published when a lookup failed; the previous converted
// amount is kept.
type ConversionFailed struct {
	ConversionRequested
	Err error
}

func (ConversionFailed) Type() string { return EventConversionFailed }

// ConversionDiscarded is published when a response arrived after a newer
// request had been issued and was ignored.
type ConversionDiscarded struct {
	ConversionRequested
}

func (ConversionDiscarded) Type() string { return EventConversionDiscarded }

// Stats counts conversion events.
type Stats struct {
	requested atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	discarded atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Requested int64 `json:"requested"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Discarded int64 `json:"discarded"`
}

// Attach subscribes the counters to bus.
func (s *Stats) Attach(bus eventbus.Bus) {
	bus.Subscribe(EventConversionRequested, func(context.Context, eventbus.Event) { s.requested.Add(1) })
	bus.Subscribe(EventConversionSucceeded, func(context.Context, eventbus.Event) { s.succeeded.Add(1) })
	bus.Subscribe(EventConversionFailed, func(context.Context, eventbus.Event) { s.failed.Add(1) })
	bus.Subscribe(EventConversionDiscarded, func(context.Context, eventbus.Event) { s.discarded.Add(1) })
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Requested: s.requested.Load(),
		Succeeded: s.succeeded.Load(),
		Failed:    s.failed.Load(),
		Discarded: s.discarded.Load(),
	}
}
