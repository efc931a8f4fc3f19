package protocol

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressive(id, uri string) *UriSource {
	return &UriSource{Kind: TypeProgressive, ID: id, URI: uri, Headers: map[string]string{}}
}

func sampleTree() *ConcatenatingSource {
	end := 30 * time.Second
	return &ConcatenatingSource{
		ID: "root",
		Children: []AudioSource{
			progressive("p1", "http://x/a.mp3"),
			&UriSource{
				Kind: TypeHls, ID: "h1", URI: "http://x/live.m3u8",
				Headers: map[string]string{"Authorization": "Bearer t"},
			},
			&ClippingSource{
				ID:    "c1",
				Child: &UriSource{Kind: TypeDash, ID: "d1", URI: "http://x/a.mpd", Headers: map[string]string{}},
				Start: 5 * time.Second,
				End:   &end,
			},
			&LoopingSource{
				ID:    "l1",
				Count: 3,
				Child: &ConcatenatingSource{
					ID:                 "inner",
					UseLazyPreparation: true,
					Children: []AudioSource{
						progressive("p2", "http://x/b.mp3"),
						progressive("p3", "http://x/c.mp3"),
					},
				},
			},
		},
	}
}

// The round-trip law: decode(encode(T)) is structurally equal to T, after a
// real JSON cycle so all numbers take the float64 path a controller produces.
func TestAudioSourceRoundTrip(t *testing.T) {
	tree := sampleTree()

	data, err := json.Marshal(tree.EncodeMap())
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))

	decoded, err := DecodeAudioSource(wire)
	require.NoError(t, err)
	assert.Equal(t, tree, decoded)
}

func TestClippingOpenEndRoundTrips(t *testing.T) {
	clip := &ClippingSource{
		ID:    "c1",
		Child: progressive("p1", "http://x/a.mp3"),
		Start: 5 * time.Second,
		End:   nil, // until end of media
	}

	wire := clip.EncodeMap()
	_, present := wire["end"]
	assert.False(t, present, "open end must encode as absent, not zero")

	decoded, err := DecodeAudioSource(wire)
	require.NoError(t, err)
	assert.Nil(t, decoded.(*ClippingSource).End)
	assert.Equal(t, 5*time.Second, decoded.(*ClippingSource).Start)
}

func TestClippingNegativeEndSentinelDecodesAsOpen(t *testing.T) {
	wire := map[string]interface{}{
		"type":  TypeClipping,
		"id":    "c1",
		"child": progressive("p1", "http://x/a.mp3").EncodeMap(),
		"start": int64(0),
		"end":   int64(-1),
	}
	decoded, err := DecodeAudioSource(wire)
	require.NoError(t, err)
	assert.Nil(t, decoded.(*ClippingSource).End)
}

func TestClippingChildMustBeUriSource(t *testing.T) {
	wire := map[string]interface{}{
		"type":  TypeClipping,
		"id":    "c1",
		"child": sampleTree().EncodeMap(),
		"start": int64(0),
	}
	_, err := DecodeAudioSource(wire)
	assert.True(t, IsDecodeError(err))
}

func TestDecodeUnknownTypeFails(t *testing.T) {
	_, err := DecodeAudioSource(map[string]interface{}{"type": "gapless", "id": "x"})
	assert.True(t, IsDecodeError(err))
}

func TestDecodeMissingFieldsFail(t *testing.T) {
	cases := []map[string]interface{}{
		{},                                     // no type
		{"type": TypeProgressive},              // no id
		{"type": TypeProgressive, "id": "p1"},  // no uri
		{"type": TypeProgressive, "id": "p1", "uri": "http://x"}, // headers absent, not even empty
		{"type": TypeLooping, "id": "l1", "count": 2},            // no child
		{"type": TypeConcatenating, "id": "r"},                   // no children
		{"type": TypeConcatenating, "id": "r", "children": []interface{}{}}, // no lazy flag
	}
	for i, wire := range cases {
		_, err := DecodeAudioSource(wire)
		assert.Truef(t, IsDecodeError(err), "case %d should fail decode", i)
	}
}

func TestDecodeRejectsNonPositiveLoopCount(t *testing.T) {
	wire := map[string]interface{}{
		"type":  TypeLooping,
		"id":    "l1",
		"child": progressive("p1", "http://x/a.mp3").EncodeMap(),
		"count": 0,
	}
	_, err := DecodeAudioSource(wire)
	assert.True(t, IsDecodeError(err))
}

// Decoding is all-or-nothing: an error deep in a child list yields no tree.
func TestDecodeNestedFailureYieldsNothing(t *testing.T) {
	wire := map[string]interface{}{
		"type": TypeConcatenating,
		"id":   "root",
		"children": []interface{}{
			progressive("p1", "http://x/a.mp3").EncodeMap(),
			map[string]interface{}{"type": "bogus", "id": "p2"},
		},
		"useLazyPreparation": false,
	}
	decoded, err := DecodeAudioSource(wire)
	assert.Nil(t, decoded)
	assert.True(t, IsDecodeError(err))
}

func TestFlatLen(t *testing.T) {
	assert.Equal(t, 1, progressive("p1", "u").FlatLen())

	clip := &ClippingSource{ID: "c1", Child: progressive("p1", "u"), Start: 0}
	assert.Equal(t, 1, clip.FlatLen())

	loop := &LoopingSource{ID: "l1", Child: progressive("p1", "u"), Count: 4}
	assert.Equal(t, 4, loop.FlatLen())

	// looping a concatenation: count times the sum of children
	tree := sampleTree()
	// p1 + h1 + c1 + 3*(p2+p3) = 1 + 1 + 1 + 6
	assert.Equal(t, 9, tree.FlatLen())

	empty := &ConcatenatingSource{ID: "e"}
	assert.Equal(t, 0, empty.FlatLen())
}

func TestValidateIDs(t *testing.T) {
	require.NoError(t, ValidateIDs(sampleTree()))

	dup := &ConcatenatingSource{
		ID: "root",
		Children: []AudioSource{
			progressive("p1", "u1"),
			&LoopingSource{ID: "l1", Count: 2, Child: progressive("p1", "u2")},
		},
	}
	err := ValidateIDs(dup)
	assert.True(t, IsDecodeError(err))
}

func TestHeadersMayBeEmptyButNotAbsent(t *testing.T) {
	src := progressive("p1", "http://x/a.mp3")
	wire := src.EncodeMap()

	headers, present := wire["headers"]
	require.True(t, present)
	assert.Empty(t, headers)

	decoded, err := DecodeAudioSource(wire)
	require.NoError(t, err)
	assert.NotNil(t, decoded.(*UriSource).Headers)
}
