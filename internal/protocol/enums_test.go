package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wire ordinals are a contract: declaration order must never change, growth
// is append-only. These pin the current values.
func TestEnumOrdinalsArePinned(t *testing.T) {
	assert.Equal(t, 0, int(StateIdle))
	assert.Equal(t, 1, int(StateLoading))
	assert.Equal(t, 2, int(StateBuffering))
	assert.Equal(t, 3, int(StateReady))
	assert.Equal(t, 4, int(StateCompleted))

	assert.Equal(t, 0, int(LoopOff))
	assert.Equal(t, 1, int(LoopOne))
	assert.Equal(t, 2, int(LoopAll))

	assert.Equal(t, 0, int(ShuffleNone))
	assert.Equal(t, 1, int(ShuffleAll))
}

func TestProcessingStateRoundTrip(t *testing.T) {
	for _, state := range []ProcessingState{StateIdle, StateLoading, StateBuffering, StateReady, StateCompleted} {
		decoded, err := DecodeProcessingState(int(state))
		require.NoError(t, err)
		assert.Equal(t, state, decoded)
	}
}

func TestLoopModeRoundTrip(t *testing.T) {
	for _, mode := range []LoopMode{LoopOff, LoopOne, LoopAll} {
		decoded, err := DecodeLoopMode(int(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, decoded)
	}
}

func TestShuffleModeRoundTrip(t *testing.T) {
	for _, mode := range []ShuffleMode{ShuffleNone, ShuffleAll} {
		decoded, err := DecodeShuffleMode(int(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, decoded)
	}
}

func TestOutOfRangeOrdinalsFail(t *testing.T) {
	_, err := DecodeProcessingState(5)
	assert.True(t, IsDecodeError(err))

	_, err = DecodeProcessingState(-1)
	assert.True(t, IsDecodeError(err))

	_, err = DecodeLoopMode(3)
	assert.True(t, IsDecodeError(err))

	_, err = DecodeShuffleMode(2)
	assert.True(t, IsDecodeError(err))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "one", LoopOne.String())
	assert.Equal(t, "all", ShuffleAll.String())
	assert.Equal(t, "unknown", ProcessingState(42).String())
}
