package player

import (
	"context"
	"time"

	"audio-bridge/internal/protocol"
)

// AudioPlayer is the per-session handle contract. Every controllable
// operation of the protocol is a method on it; implementations that lack a
// capability return protocol.ErrUnsupportedOperation from the corresponding
// method so callers can feature-detect.
type AudioPlayer interface {
	// Load replaces the session's source tree and resolves the media
	// duration, or nil if the engine cannot know it yet. It fails without
	// side effects if the tree is invalid or the engine rejects it.
	Load(ctx context.Context, source protocol.AudioSource) (*time.Duration, error)

	// Play resumes playback.
	Play() error

	// Pause halts playback, keeping the current position.
	Pause() error

	// SetVolume sets the linear gain, passed through uninterpreted.
	SetVolume(volume float64) error

	// SetSpeed sets the playback rate multiplier, passed through
	// uninterpreted.
	SetSpeed(speed float64) error

	// SetLoopMode sets repeat behavior over the flattened sequence.
	SetLoopMode(mode protocol.LoopMode) error

	// SetShuffleMode sets randomized ordering of the flattened sequence.
	SetShuffleMode(mode protocol.ShuffleMode) error

	// SetAutomaticallyWaitsToMinimizeStalling is a buffering-policy hint.
	SetAutomaticallyWaitsToMinimizeStalling(enabled bool) error

	// Seek jumps to position within the current item, or within the item at
	// index when index is non-nil.
	Seek(position time.Duration, index *int) error

	// SetAndroidAudioAttributes passes three opaque platform codes through.
	SetAndroidAudioAttributes(contentType, flags, usage int) error

	// ConcatenatingInsertAll inserts children into the live concatenating
	// source with the given id at the given index.
	ConcatenatingInsertAll(id string, index int, children []protocol.AudioSource) error

	// ConcatenatingRemoveRange removes children in [startIndex, endIndex).
	ConcatenatingRemoveRange(id string, startIndex, endIndex int) error

	// ConcatenatingMove relocates one child from currentIndex to newIndex.
	ConcatenatingMove(id string, currentIndex, newIndex int) error

	// Events returns a channel of state snapshots from subscription time
	// onward, in non-decreasing update-time order. The channel closes when
	// ctx is cancelled or the session is disposed.
	Events(ctx context.Context) <-chan protocol.PlaybackEvent

	// Dispose releases all session resources. Safe to call at any time,
	// including more than once; every other operation fails afterward.
	Dispose() error
}

// Engine is the native media engine behind the boundary. This package only
// drives it with decoded trees; decoding bytes and rendering audio is the
// engine's own business.
type Engine interface {
	// Prepare accepts a decoded source tree and resolves its total duration,
	// or nil if unknown. It returns an error when the engine cannot
	// initialize the given source.
	Prepare(ctx context.Context, source protocol.AudioSource) (*time.Duration, error)

	// Name returns the engine implementation name.
	Name() string

	// Dispose releases engine resources for this session.
	Dispose()
}
