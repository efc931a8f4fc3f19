package player

import (
	"context"
	"time"

	"audio-bridge/internal/protocol"
)

// UnsupportedPlayer is a base AudioPlayer whose every operation fails with
// ErrUnsupportedOperation. Partial backends embed it explicitly and override
// what they actually support, so a missing capability surfaces as a
// feature-detectable error instead of an implicit fallthrough.
type UnsupportedPlayer struct{}

var _ AudioPlayer = UnsupportedPlayer{}

func (UnsupportedPlayer) Load(context.Context, protocol.AudioSource) (*time.Duration, error) {
	return nil, protocol.ErrUnsupportedOperation
}

func (UnsupportedPlayer) Play() error { return protocol.ErrUnsupportedOperation }

func (UnsupportedPlayer) Pause() error { return protocol.ErrUnsupportedOperation }

func (UnsupportedPlayer) SetVolume(float64) error { return protocol.ErrUnsupportedOperation }

func (UnsupportedPlayer) SetSpeed(float64) error { return protocol.ErrUnsupportedOperation }

func (UnsupportedPlayer) SetLoopMode(protocol.LoopMode) error {
	return protocol.ErrUnsupportedOperation
}

func (UnsupportedPlayer) SetShuffleMode(protocol.ShuffleMode) error {
	return protocol.ErrUnsupportedOperation
}

func (UnsupportedPlayer) SetAutomaticallyWaitsToMinimizeStalling(bool) error {
	return protocol.ErrUnsupportedOperation
}

func (UnsupportedPlayer) Seek(time.Duration, *int) error { return protocol.ErrUnsupportedOperation }

func (UnsupportedPlayer) SetAndroidAudioAttributes(int, int, int) error {
	return protocol.ErrUnsupportedOperation
}

func (UnsupportedPlayer) ConcatenatingInsertAll(string, int, []protocol.AudioSource) error {
	return protocol.ErrUnsupportedOperation
}

func (UnsupportedPlayer) ConcatenatingRemoveRange(string, int, int) error {
	return protocol.ErrUnsupportedOperation
}

func (UnsupportedPlayer) ConcatenatingMove(string, int, int) error {
	return protocol.ErrUnsupportedOperation
}

// Events returns an already-terminated stream: an unsupported backend never
// emits snapshots.
func (UnsupportedPlayer) Events(context.Context) <-chan protocol.PlaybackEvent {
	ch := make(chan protocol.PlaybackEvent)
	close(ch)
	return ch
}

func (UnsupportedPlayer) Dispose() error { return nil }
