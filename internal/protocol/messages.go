package protocol

import "time"

// PlaybackEvent is one immutable snapshot of player state. The session emits
// an order-preserving sequence of snapshots with non-decreasing UpdateTime;
// a snapshot is never mutated after emission.
//
// UpdateTime crosses the wire as epoch milliseconds; every other temporal
// field is microseconds relative to media start.
type PlaybackEvent struct {
	ProcessingState       ProcessingState
	UpdateTime            time.Time
	UpdatePosition        time.Duration
	BufferedPosition      time.Duration
	Duration              *time.Duration // nil when unknown
	IcyMetadata           *IcyMetadata
	CurrentIndex          *int // flattened-sequence index; nil when no item active
	AndroidAudioSessionID *int // platform handle; nil when absent
}

// EncodeMap serializes the snapshot into its wire map. An unknown duration
// encodes as -1 so receivers can tell it apart from a zero-length media.
func (e *PlaybackEvent) EncodeMap() map[string]interface{} {
	m := map[string]interface{}{
		"processingState":  int(e.ProcessingState),
		"updateTime":       e.UpdateTime.UnixMilli(),
		"updatePosition":   e.UpdatePosition.Microseconds(),
		"bufferedPosition": e.BufferedPosition.Microseconds(),
	}
	if e.Duration != nil {
		m["duration"] = e.Duration.Microseconds()
	} else {
		m["duration"] = int64(-1)
	}
	if e.IcyMetadata != nil {
		m["icyMetadata"] = e.IcyMetadata.EncodeMap()
	}
	if e.CurrentIndex != nil {
		m["currentIndex"] = *e.CurrentIndex
	}
	if e.AndroidAudioSessionID != nil {
		m["androidAudioSessionId"] = *e.AndroidAudioSessionID
	}
	return m
}

// DecodePlaybackEvent reconstructs a snapshot from its wire map. A duration
// that is absent or negative decodes as nil (unknown), never as a negative
// duration.
func DecodePlaybackEvent(m map[string]interface{}) (*PlaybackEvent, error) {
	ordinal, err := intField(m, "processingState")
	if err != nil {
		return nil, err
	}
	state, err := DecodeProcessingState(int(ordinal))
	if err != nil {
		return nil, err
	}
	updateMs, err := intField(m, "updateTime")
	if err != nil {
		return nil, err
	}
	positionUs, err := intField(m, "updatePosition")
	if err != nil {
		return nil, err
	}
	bufferedUs, err := intField(m, "bufferedPosition")
	if err != nil {
		return nil, err
	}

	e := &PlaybackEvent{
		ProcessingState:  state,
		UpdateTime:       time.UnixMilli(updateMs),
		UpdatePosition:   time.Duration(positionUs) * time.Microsecond,
		BufferedPosition: time.Duration(bufferedUs) * time.Microsecond,
	}

	durationUs, present, err := optionalIntField(m, "duration")
	if err != nil {
		return nil, err
	}
	if present && durationUs >= 0 {
		d := time.Duration(durationUs) * time.Microsecond
		e.Duration = &d
	}

	if raw, ok := m["icyMetadata"]; ok && raw != nil {
		icyMap, ok := raw.(map[string]interface{})
		if !ok {
			return nil, decodeErrorf("icyMetadata", "expected object, got %T", raw)
		}
		icy, err := DecodeIcyMetadata(icyMap)
		if err != nil {
			return nil, err
		}
		e.IcyMetadata = icy
	}

	if index, present, err := optionalIntField(m, "currentIndex"); err != nil {
		return nil, err
	} else if present {
		i := int(index)
		e.CurrentIndex = &i
	}

	if sessionID, present, err := optionalIntField(m, "androidAudioSessionId"); err != nil {
		return nil, err
	} else if present {
		i := int(sessionID)
		e.AndroidAudioSessionID = &i
	}

	return e, nil
}

// IcyMetadata carries shoutcast/ICY stream metadata. Both halves are
// independently optional.
type IcyMetadata struct {
	Info    *IcyInfo
	Headers *IcyHeaders
}

func (m *IcyMetadata) EncodeMap() map[string]interface{} {
	out := map[string]interface{}{}
	if m.Info != nil {
		out["info"] = m.Info.EncodeMap()
	}
	if m.Headers != nil {
		out["headers"] = m.Headers.EncodeMap()
	}
	return out
}

// DecodeIcyMetadata reconstructs IcyMetadata from its wire map.
func DecodeIcyMetadata(m map[string]interface{}) (*IcyMetadata, error) {
	out := &IcyMetadata{}
	if raw, ok := m["info"]; ok && raw != nil {
		infoMap, ok := raw.(map[string]interface{})
		if !ok {
			return nil, decodeErrorf("info", "expected object, got %T", raw)
		}
		info, err := DecodeIcyInfo(infoMap)
		if err != nil {
			return nil, err
		}
		out.Info = info
	}
	if raw, ok := m["headers"]; ok && raw != nil {
		headersMap, ok := raw.(map[string]interface{})
		if !ok {
			return nil, decodeErrorf("headers", "expected object, got %T", raw)
		}
		headers, err := DecodeIcyHeaders(headersMap)
		if err != nil {
			return nil, err
		}
		out.Headers = headers
	}
	return out, nil
}

// IcyInfo is the in-band ICY metadata block. Absence of a field is distinct
// from an empty string.
type IcyInfo struct {
	Title *string
	URL   *string
}

func (i *IcyInfo) EncodeMap() map[string]interface{} {
	out := map[string]interface{}{}
	if i.Title != nil {
		out["title"] = *i.Title
	}
	if i.URL != nil {
		out["url"] = *i.URL
	}
	return out
}

// DecodeIcyInfo reconstructs IcyInfo from its wire map.
func DecodeIcyInfo(m map[string]interface{}) (*IcyInfo, error) {
	title, err := optionalStringField(m, "title")
	if err != nil {
		return nil, err
	}
	url, err := optionalStringField(m, "url")
	if err != nil {
		return nil, err
	}
	return &IcyInfo{Title: title, URL: url}, nil
}

// IcyHeaders are the icy-* response headers of the stream. Every field is
// independently nullable.
type IcyHeaders struct {
	Bitrate          *int
	Genre            *string
	Name             *string
	MetadataInterval *int
	URL              *string
	IsPublic         *bool
}

func (h *IcyHeaders) EncodeMap() map[string]interface{} {
	out := map[string]interface{}{}
	if h.Bitrate != nil {
		out["bitrate"] = *h.Bitrate
	}
	if h.Genre != nil {
		out["genre"] = *h.Genre
	}
	if h.Name != nil {
		out["name"] = *h.Name
	}
	if h.MetadataInterval != nil {
		out["metadataInterval"] = *h.MetadataInterval
	}
	if h.URL != nil {
		out["url"] = *h.URL
	}
	if h.IsPublic != nil {
		out["isPublic"] = *h.IsPublic
	}
	return out
}

// DecodeIcyHeaders reconstructs IcyHeaders from its wire map.
func DecodeIcyHeaders(m map[string]interface{}) (*IcyHeaders, error) {
	out := &IcyHeaders{}
	if n, present, err := optionalIntField(m, "bitrate"); err != nil {
		return nil, err
	} else if present {
		i := int(n)
		out.Bitrate = &i
	}
	var err error
	if out.Genre, err = optionalStringField(m, "genre"); err != nil {
		return nil, err
	}
	if out.Name, err = optionalStringField(m, "name"); err != nil {
		return nil, err
	}
	if n, present, err := optionalIntField(m, "metadataInterval"); err != nil {
		return nil, err
	} else if present {
		i := int(n)
		out.MetadataInterval = &i
	}
	if out.URL, err = optionalStringField(m, "url"); err != nil {
		return nil, err
	}
	if out.IsPublic, err = optionalBoolField(m, "isPublic"); err != nil {
		return nil, err
	}
	return out, nil
}
