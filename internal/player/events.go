package player

import (
	"context"
	"sync"

	"audio-bridge/internal/protocol"
)

// DefaultEventBuffer is the per-subscriber snapshot queue capacity.
const DefaultEventBuffer = 64

// Broadcaster fans playback snapshots out to subscribers. Each subscriber
// gets a bounded queue; when a controller consumes slower than the engine
// emits, the oldest queued snapshot is dropped so delivery never blocks the
// session and the stream stays live until dispose.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan protocol.PlaybackEvent]struct{}
	buffer int
	closed bool
}

// NewBroadcaster creates a broadcaster with the given per-subscriber queue
// capacity. A non-positive capacity falls back to DefaultEventBuffer.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Broadcaster{
		subs:   make(map[chan protocol.PlaybackEvent]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber receiving snapshots from this moment
// onward. The returned channel closes when ctx is cancelled or the
// broadcaster closes.
func (b *Broadcaster) Subscribe(ctx context.Context) <-chan protocol.PlaybackEvent {
	ch := make(chan protocol.PlaybackEvent, b.buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

func (b *Broadcaster) unsubscribe(ch chan protocol.PlaybackEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish delivers a snapshot to every subscriber without blocking. A full
// subscriber queue loses its oldest snapshot first.
func (b *Broadcaster) Publish(ev protocol.PlaybackEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Queue full: drop the oldest snapshot to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Close terminates every subscriber channel. Publish and Subscribe become
// no-ops afterward.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
