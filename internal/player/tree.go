package player

import (
	"audio-bridge/internal/protocol"
)

// findConcatenating resolves id to a live concatenating source in the tree.
// A missing id, or an id that names a node of any other kind, is an invalid
// reference rather than a silent coercion.
func findConcatenating(root protocol.AudioSource, id string) (*protocol.ConcatenatingSource, error) {
	if root == nil {
		return nil, protocol.ErrInvalidReference
	}
	var target *protocol.ConcatenatingSource
	found := false
	protocol.Walk(root, func(n protocol.AudioSource) bool {
		if n.SourceID() != id {
			return true
		}
		found = true
		target, _ = n.(*protocol.ConcatenatingSource)
		return false
	})
	if !found || target == nil {
		return nil, protocol.ErrInvalidReference
	}
	return target, nil
}

// insertAll splices children into cs at index. Valid insertion points are
// [0, len]; duplicate ids against the rest of the tree are rejected before
// anything is modified.
func insertAll(root protocol.AudioSource, cs *protocol.ConcatenatingSource, index int, children []protocol.AudioSource) error {
	if index < 0 || index > len(cs.Children) {
		return protocol.ErrIndexOutOfRange
	}
	seen := make(map[string]struct{})
	protocol.Walk(root, func(n protocol.AudioSource) bool {
		seen[n.SourceID()] = struct{}{}
		return true
	})
	for _, child := range children {
		conflict := false
		protocol.Walk(child, func(n protocol.AudioSource) bool {
			if _, ok := seen[n.SourceID()]; ok {
				conflict = true
				return false
			}
			seen[n.SourceID()] = struct{}{}
			return true
		})
		if conflict {
			return protocol.ErrInvalidReference
		}
	}

	updated := make([]protocol.AudioSource, 0, len(cs.Children)+len(children))
	updated = append(updated, cs.Children[:index]...)
	updated = append(updated, children...)
	updated = append(updated, cs.Children[index:]...)
	cs.Children = updated
	return nil
}

// removeRange drops cs children in [start, end). Valid iff
// 0 <= start <= end <= len.
func removeRange(cs *protocol.ConcatenatingSource, start, end int) error {
	if start < 0 || end < start || end > len(cs.Children) {
		return protocol.ErrIndexOutOfRange
	}
	cs.Children = append(cs.Children[:start], cs.Children[end:]...)
	return nil
}

// move relocates the child at from to position to, preserving the relative
// order of everything else. Both indices must be existing positions.
func move(cs *protocol.ConcatenatingSource, from, to int) error {
	if from < 0 || from >= len(cs.Children) || to < 0 || to >= len(cs.Children) {
		return protocol.ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	child := cs.Children[from]
	rest := append(cs.Children[:from:from], cs.Children[from+1:]...)
	updated := make([]protocol.AudioSource, 0, len(cs.Children))
	updated = append(updated, rest[:to]...)
	updated = append(updated, child)
	updated = append(updated, rest[to:]...)
	cs.Children = updated
	return nil
}
