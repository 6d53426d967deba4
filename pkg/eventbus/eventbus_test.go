package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{ kind string }

func (e testEvent) Type() string { return e.kind }

func TestSimpleBus_PublishOrder(t *testing.T) {
	bus := NewSimpleBus()
	var got []string
	bus.Subscribe("a", func(_ context.Context, e Event) { got = append(got, "first:"+e.Type()) })
	bus.Subscribe("a", func(_ context.Context, e Event) { got = append(got, "second:"+e.Type()) })
	bus.Subscribe("b", func(_ context.Context, e Event) { got = append(got, "b") })

	require.NoError(t, bus.Publish(context.Background(), testEvent{kind: "a"}))
	assert.Equal(t, []string{"first:a", "second:a"}, got)
}

func TestSimpleBus_NoSubscribers(t *testing.T) {
	bus := NewSimpleBus()
	assert.NoError(t, bus.Publish(context.Background(), testEvent{kind: "nobody"}))
}

func TestSimpleBus_SubscribeFromHandler(t *testing.T) {
	bus := NewSimpleBus()
	calls := 0
	bus.Subscribe("a", func(_ context.Context, _ Event) {
		calls++
		bus.Subscribe("a", func(context.Context, Event) { calls++ })
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent{kind: "a"}))
	assert.Equal(t, 1, calls)
	require.NoError(t, bus.Publish(context.Background(), testEvent{kind: "a"}))
	assert.Equal(t, 3, calls)
}
