package outbox_test

import (
	"context"
	"sync"
	"testing"
	"time"

	domoutbox "github.com/dokonbot/dokonbot/internal/domain/outbox"
	"github.com/dokonbot/dokonbot/internal/infrastructure/outbox"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())
	got := make(chan domoutbox.Event, 4)
	bus.Subscribe("thing.happened", func(_ context.Context, e domoutbox.Event) error {
		got <- e
		return nil
	})

	ctx := context.Background()
	bus.Start(ctx)
	defer bus.Stop(ctx)

	require.NoError(t, bus.Publish(ctx, testEvent{name: "thing.happened"}))

	select {
	case e := <-got:
		require.Equal(t, "thing.happened", e.EventName())
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestBusIgnoresUnsubscribedEvents(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())
	var mu sync.Mutex
	var calls int
	bus.Subscribe("wanted", func(context.Context, domoutbox.Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})

	ctx := context.Background()
	bus.Start(ctx)
	defer bus.Stop(ctx)

	require.NoError(t, bus.Publish(ctx, testEvent{name: "unwanted"}))
	require.NoError(t, bus.Publish(ctx, testEvent{name: "wanted"}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBusSurvivesPanickingHandler(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())
	got := make(chan struct{}, 1)
	bus.Subscribe("boom", func(context.Context, domoutbox.Event) error {
		panic("handler exploded")
	})
	bus.Subscribe("boom", func(context.Context, domoutbox.Event) error {
		got <- struct{}{}
		return nil
	})

	ctx := context.Background()
	bus.Start(ctx)
	defer bus.Stop(ctx)

	require.NoError(t, bus.Publish(ctx, testEvent{name: "boom"}))

	select {
	case <-got:
		// The second handler still ran after the first panicked.
	case <-time.After(2 * time.Second):
		t.Fatal("panic in one handler starved the others")
	}
}

func TestBusPublishNilIsNoop(t *testing.T) {
	bus := outbox.NewBus(zap.NewNop())
	require.NoError(t, bus.Publish(context.Background(), nil))
}
