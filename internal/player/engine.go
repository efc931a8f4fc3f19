package player

import (
	"context"
	"fmt"
	"time"

	"audio-bridge/internal/protocol"
)

// StaticEngine is a headless engine that resolves durations from a fixed
// URI table instead of probing real media. It stands in for a native engine
// in the bridge and in tests; the duration of a tree is derived recursively
// from its leaves, unknown whenever any contributing leaf is unknown.
type StaticEngine struct {
	// Durations maps URI to known media duration.
	Durations map[string]time.Duration
}

var _ Engine = (*StaticEngine)(nil)

// NewStaticEngine creates an engine with the given URI duration table.
func NewStaticEngine(durations map[string]time.Duration) *StaticEngine {
	return &StaticEngine{Durations: durations}
}

func (e *StaticEngine) Name() string { return "static" }

// Prepare walks the tree and resolves its total duration. An empty URI is
// the one thing this engine refuses to initialize.
func (e *StaticEngine) Prepare(ctx context.Context, source protocol.AudioSource) (*time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	invalid := false
	protocol.Walk(source, func(n protocol.AudioSource) bool {
		if u, ok := n.(*protocol.UriSource); ok && u.URI == "" {
			invalid = true
			return false
		}
		return true
	})
	if invalid {
		return nil, fmt.Errorf("source %s: empty uri", source.SourceID())
	}
	return e.resolve(source), nil
}

func (e *StaticEngine) resolve(source protocol.AudioSource) *time.Duration {
	switch n := source.(type) {
	case *protocol.UriSource:
		if d, ok := e.Durations[n.URI]; ok {
			return &d
		}
		return nil
	case *protocol.ClippingSource:
		if n.End != nil {
			d := *n.End - n.Start
			return &d
		}
		full := e.resolve(n.Child)
		if full == nil {
			return nil
		}
		d := *full - n.Start
		return &d
	case *protocol.LoopingSource:
		child := e.resolve(n.Child)
		if child == nil {
			return nil
		}
		d := time.Duration(n.Count) * *child
		return &d
	case *protocol.ConcatenatingSource:
		var total time.Duration
		for _, c := range n.Children {
			d := e.resolve(c)
			if d == nil {
				return nil
			}
			total += *d
		}
		return &total
	default:
		return nil
	}
}

func (e *StaticEngine) Dispose() {}
