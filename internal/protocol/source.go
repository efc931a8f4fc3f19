package protocol

import "time"

// Type discriminator literals for audio-source nodes. These strings are part
// of the wire contract and are case-sensitive.
const (
	TypeProgressive   = "progressive"
	TypeDash          = "dash"
	TypeHls           = "hls"
	TypeClipping      = "clipping"
	TypeLooping       = "looping"
	TypeConcatenating = "concatenating"
)

// AudioSource is one node in the recursive tree describing playable content.
// The tree is finite and acyclic; every node carries a caller-assigned id
// that must be unique within a single loaded tree. A decoded tree is an
// independent copy with no state shared across the boundary.
type AudioSource interface {
	// SourceID returns the caller-assigned node id.
	SourceID() string

	// EncodeMap serializes the node (and its children, recursively) into a
	// keyed map carrying the "type" discriminator.
	EncodeMap() map[string]interface{}

	// FlatLen returns the number of positions this node occupies in the
	// flattened playback sequence.
	FlatLen() int
}

// UriSource is a leaf node carrying a playable URI. Kind selects the
// progressive, dash or hls variant. It occupies exactly one flattened
// position.
type UriSource struct {
	Kind    string // TypeProgressive, TypeDash or TypeHls
	ID      string
	URI     string
	Headers map[string]string // request headers; may be empty, never nil
}

func (s *UriSource) SourceID() string { return s.ID }

func (s *UriSource) FlatLen() int { return 1 }

func (s *UriSource) EncodeMap() map[string]interface{} {
	headers := make(map[string]interface{}, len(s.Headers))
	for k, v := range s.Headers {
		headers[k] = v
	}
	return map[string]interface{}{
		"type":    s.Kind,
		"id":      s.ID,
		"uri":     s.URI,
		"headers": headers,
	}
}

// ClippingSource wraps exactly one UriSource and plays the sub-range
// [Start, End). A nil End means "until end of media" and round-trips as
// absent, never as zero.
type ClippingSource struct {
	ID    string
	Child *UriSource
	Start time.Duration
	End   *time.Duration
}

func (s *ClippingSource) SourceID() string { return s.ID }

func (s *ClippingSource) FlatLen() int { return 1 }

func (s *ClippingSource) EncodeMap() map[string]interface{} {
	m := map[string]interface{}{
		"type":  TypeClipping,
		"id":    s.ID,
		"child": s.Child.EncodeMap(),
		"start": s.Start.Microseconds(),
	}
	if s.End != nil {
		m["end"] = s.End.Microseconds()
	}
	return m
}

// LoopingSource repeats its child Count times. Count 1 is a pass-through.
// The node itself is not indexed; its flattened length is Count times the
// child's.
type LoopingSource struct {
	ID    string
	Child AudioSource
	Count int
}

func (s *LoopingSource) SourceID() string { return s.ID }

func (s *LoopingSource) FlatLen() int { return s.Count * s.Child.FlatLen() }

func (s *LoopingSource) EncodeMap() map[string]interface{} {
	return map[string]interface{}{
		"type":  TypeLooping,
		"id":    s.ID,
		"child": s.Child.EncodeMap(),
		"count": s.Count,
	}
}

// ConcatenatingSource plays an ordered sequence of children of any variant.
// UseLazyPreparation is a hint that children may be prepared on demand; the
// model does not enforce it.
type ConcatenatingSource struct {
	ID                 string
	Children           []AudioSource
	UseLazyPreparation bool
}

func (s *ConcatenatingSource) SourceID() string { return s.ID }

func (s *ConcatenatingSource) FlatLen() int {
	total := 0
	for _, c := range s.Children {
		total += c.FlatLen()
	}
	return total
}

func (s *ConcatenatingSource) EncodeMap() map[string]interface{} {
	children := make([]interface{}, len(s.Children))
	for i, c := range s.Children {
		children[i] = c.EncodeMap()
	}
	return map[string]interface{}{
		"type":               TypeConcatenating,
		"id":                 s.ID,
		"children":           children,
		"useLazyPreparation": s.UseLazyPreparation,
	}
}

// DecodeAudioSource reconstructs a source tree from its wire map, dispatching
// on the "type" discriminator. Decoding is all-or-nothing: a structurally
// invalid document fails without producing a partial tree.
func DecodeAudioSource(m map[string]interface{}) (AudioSource, error) {
	typ, err := stringField(m, "type")
	if err != nil {
		return nil, err
	}
	id, err := stringField(m, "id")
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeProgressive, TypeDash, TypeHls:
		return decodeUriSource(typ, id, m)
	case TypeClipping:
		return decodeClippingSource(id, m)
	case TypeLooping:
		return decodeLoopingSource(id, m)
	case TypeConcatenating:
		return decodeConcatenatingSource(id, m)
	default:
		return nil, decodeErrorf("type", "unknown audio source type %q", typ)
	}
}

func decodeUriSource(kind, id string, m map[string]interface{}) (*UriSource, error) {
	uri, err := stringField(m, "uri")
	if err != nil {
		return nil, err
	}
	raw, err := mapField(m, "headers")
	if err != nil {
		return nil, err
	}
	headers := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, decodeErrorf("headers", "expected string value for %q, got %T", k, v)
		}
		headers[k] = s
	}
	return &UriSource{Kind: kind, ID: id, URI: uri, Headers: headers}, nil
}

func decodeClippingSource(id string, m map[string]interface{}) (*ClippingSource, error) {
	childMap, err := mapField(m, "child")
	if err != nil {
		return nil, err
	}
	child, err := DecodeAudioSource(childMap)
	if err != nil {
		return nil, err
	}
	uri, ok := child.(*UriSource)
	if !ok {
		return nil, decodeErrorf("child", "clipping child must be a uri source, got %T", child)
	}
	startUs, err := intField(m, "start")
	if err != nil {
		return nil, err
	}
	cs := &ClippingSource{
		ID:    id,
		Child: uri,
		Start: time.Duration(startUs) * time.Microsecond,
	}
	endUs, present, err := optionalIntField(m, "end")
	if err != nil {
		return nil, err
	}
	// A negative sentinel means the same as absent: play to end of media.
	if present && endUs >= 0 {
		end := time.Duration(endUs) * time.Microsecond
		cs.End = &end
	}
	return cs, nil
}

func decodeLoopingSource(id string, m map[string]interface{}) (*LoopingSource, error) {
	childMap, err := mapField(m, "child")
	if err != nil {
		return nil, err
	}
	child, err := DecodeAudioSource(childMap)
	if err != nil {
		return nil, err
	}
	count, err := intField(m, "count")
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, decodeErrorf("count", "loop count must be positive, got %d", count)
	}
	return &LoopingSource{ID: id, Child: child, Count: int(count)}, nil
}

func decodeConcatenatingSource(id string, m map[string]interface{}) (*ConcatenatingSource, error) {
	raw, ok := m["children"]
	if !ok || raw == nil {
		return nil, decodeErrorf("children", "missing required field")
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, decodeErrorf("children", "expected array, got %T", raw)
	}
	children := make([]AudioSource, len(list))
	for i, item := range list {
		childMap, ok := item.(map[string]interface{})
		if !ok {
			return nil, decodeErrorf("children", "expected object at index %d, got %T", i, item)
		}
		child, err := DecodeAudioSource(childMap)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	lazy, err := boolField(m, "useLazyPreparation")
	if err != nil {
		return nil, err
	}
	return &ConcatenatingSource{ID: id, Children: children, UseLazyPreparation: lazy}, nil
}

// Walk visits every node of the tree depth-first, parents before children,
// stopping early when visit returns false.
func Walk(s AudioSource, visit func(AudioSource) bool) bool {
	if !visit(s) {
		return false
	}
	switch n := s.(type) {
	case *ClippingSource:
		return Walk(n.Child, visit)
	case *LoopingSource:
		return Walk(n.Child, visit)
	case *ConcatenatingSource:
		for _, c := range n.Children {
			if !Walk(c, visit) {
				return false
			}
		}
	}
	return true
}

// ValidateIDs rejects trees where two nodes share an id. The remote side is
// allowed to resolve a duplicate to either node, so a duplicate is refused
// before it crosses the boundary.
func ValidateIDs(s AudioSource) error {
	seen := make(map[string]struct{})
	var dup *string
	Walk(s, func(n AudioSource) bool {
		id := n.SourceID()
		if _, ok := seen[id]; ok {
			dup = &id
			return false
		}
		seen[id] = struct{}{}
		return true
	})
	if dup != nil {
		return decodeErrorf("id", "duplicate source id %q", *dup)
	}
	return nil
}
