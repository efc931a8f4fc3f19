// Package protocol defines the command/event messages and the audio-source
// tree model exchanged between a controller and a remote playback engine.
//
// Every message encodes to a keyed map (string keys, heterogeneous values)
// so any concrete serialization that preserves field names works; the HTTP
// bridge uses JSON. Durations are integer microseconds on the wire, except
// the absolute updateTime on playback events which is epoch milliseconds.
package protocol

// ProcessingState describes where the engine is in its media lifecycle.
// Wire representation is the zero-based ordinal; values are append-only.
type ProcessingState int

const (
	StateIdle ProcessingState = iota
	StateLoading
	StateBuffering
	StateReady
	StateCompleted
)

// String returns the state name for logs.
func (s ProcessingState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateBuffering:
		return "buffering"
	case StateReady:
		return "ready"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// DecodeProcessingState maps a wire ordinal back to a ProcessingState.
func DecodeProcessingState(ordinal int) (ProcessingState, error) {
	if ordinal < int(StateIdle) || ordinal > int(StateCompleted) {
		return StateIdle, decodeErrorf("processingState", "unknown ordinal %d", ordinal)
	}
	return ProcessingState(ordinal), nil
}

// LoopMode controls repeat behavior over the flattened sequence.
type LoopMode int

const (
	LoopOff LoopMode = iota
	LoopOne
	LoopAll
)

func (m LoopMode) String() string {
	switch m {
	case LoopOff:
		return "off"
	case LoopOne:
		return "one"
	case LoopAll:
		return "all"
	default:
		return "unknown"
	}
}

// DecodeLoopMode maps a wire ordinal back to a LoopMode.
func DecodeLoopMode(ordinal int) (LoopMode, error) {
	if ordinal < int(LoopOff) || ordinal > int(LoopAll) {
		return LoopOff, decodeErrorf("loopMode", "unknown ordinal %d", ordinal)
	}
	return LoopMode(ordinal), nil
}

// ShuffleMode controls randomized ordering of the flattened sequence.
type ShuffleMode int

const (
	ShuffleNone ShuffleMode = iota
	ShuffleAll
)

func (m ShuffleMode) String() string {
	switch m {
	case ShuffleNone:
		return "none"
	case ShuffleAll:
		return "all"
	default:
		return "unknown"
	}
}

// DecodeShuffleMode maps a wire ordinal back to a ShuffleMode.
func DecodeShuffleMode(ordinal int) (ShuffleMode, error) {
	if ordinal < int(ShuffleNone) || ordinal > int(ShuffleAll) {
		return ShuffleNone, decodeErrorf("shuffleMode", "unknown ordinal %d", ordinal)
	}
	return ShuffleMode(ordinal), nil
}
