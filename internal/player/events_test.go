package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-bridge/internal/protocol"
)

func eventAt(ms int64) protocol.PlaybackEvent {
	return protocol.PlaybackEvent{
		ProcessingState: protocol.StateReady,
		UpdateTime:      time.UnixMilli(ms),
	}
}

func TestBroadcasterDeliversInOrder(t *testing.T) {
	b := NewBroadcaster(8)
	defer b.Close()

	ch := b.Subscribe(context.Background())

	b.Publish(eventAt(1))
	b.Publish(eventAt(2))
	b.Publish(eventAt(3))

	assert.Equal(t, int64(1), (<-ch).UpdateTime.UnixMilli())
	assert.Equal(t, int64(2), (<-ch).UpdateTime.UnixMilli())
	assert.Equal(t, int64(3), (<-ch).UpdateTime.UnixMilli())
}

func TestBroadcasterStartsAtSubscriptionTime(t *testing.T) {
	b := NewBroadcaster(8)
	defer b.Close()

	b.Publish(eventAt(1))

	ch := b.Subscribe(context.Background())
	b.Publish(eventAt(2))

	got := <-ch
	assert.Equal(t, int64(2), got.UpdateTime.UnixMilli())
}

func TestBroadcasterDropsOldestWhenSlow(t *testing.T) {
	b := NewBroadcaster(2)
	defer b.Close()

	ch := b.Subscribe(context.Background())

	b.Publish(eventAt(1))
	b.Publish(eventAt(2))
	b.Publish(eventAt(3)) // queue full: 1 is dropped

	assert.Equal(t, int64(2), (<-ch).UpdateTime.UnixMilli())
	assert.Equal(t, int64(3), (<-ch).UpdateTime.UnixMilli())

	select {
	case ev := <-ch:
		t.Fatalf("unexpected extra event at %d", ev.UpdateTime.UnixMilli())
	default:
	}
}

func TestBroadcasterCloseTerminatesSubscribers(t *testing.T) {
	b := NewBroadcaster(2)
	ch := b.Subscribe(context.Background())

	b.Close()

	_, open := <-ch
	assert.False(t, open)

	// closed broadcaster hands out terminated channels
	ch2 := b.Subscribe(context.Background())
	_, open = <-ch2
	assert.False(t, open)

	// and publishing is a no-op
	b.Publish(eventAt(1))
}

func TestBroadcasterContextCancelUnsubscribes(t *testing.T) {
	b := NewBroadcaster(2)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	// channel closes once the cancellation is observed
	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-ch:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel never closed")
		}
	}
}

func TestBroadcasterIndependentSubscribers(t *testing.T) {
	b := NewBroadcaster(4)
	defer b.Close()

	fast := b.Subscribe(context.Background())
	slow := b.Subscribe(context.Background())

	b.Publish(eventAt(1))

	require.Equal(t, int64(1), (<-fast).UpdateTime.UnixMilli())
	require.Equal(t, int64(1), (<-slow).UpdateTime.UnixMilli())
}
