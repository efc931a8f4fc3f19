package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-bridge/internal/protocol"
)

func TestStaticEngineClippedDuration(t *testing.T) {
	engine := NewStaticEngine(map[string]time.Duration{"http://x/a.mp3": time.Minute})

	end := 30 * time.Second
	clip := &protocol.ClippingSource{
		ID:    "c1",
		Child: uri("a"),
		Start: 10 * time.Second,
		End:   &end,
	}

	d, err := engine.Prepare(context.Background(), clip)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 20*time.Second, *d)
}

func TestStaticEngineOpenClipUsesMediaDuration(t *testing.T) {
	engine := NewStaticEngine(map[string]time.Duration{"http://x/a.mp3": time.Minute})

	clip := &protocol.ClippingSource{ID: "c1", Child: uri("a"), Start: 15 * time.Second}

	d, err := engine.Prepare(context.Background(), clip)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 45*time.Second, *d)
}

func TestStaticEngineUnknownLeafPoisonsTotal(t *testing.T) {
	engine := NewStaticEngine(map[string]time.Duration{"http://x/a.mp3": time.Minute})

	tree := &protocol.ConcatenatingSource{
		ID:       "root",
		Children: []protocol.AudioSource{uri("a"), uri("mystery")},
	}

	d, err := engine.Prepare(context.Background(), tree)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestStaticEngineRejectsEmptyURI(t *testing.T) {
	engine := NewStaticEngine(nil)

	bad := &protocol.UriSource{Kind: protocol.TypeProgressive, ID: "x", Headers: map[string]string{}}
	_, err := engine.Prepare(context.Background(), bad)
	assert.Error(t, err)
}
