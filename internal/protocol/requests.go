package protocol

// Request and response bodies for every controllable player operation.
// Positions and durations are wire microseconds (int64); the session layer
// converts to time.Duration at the boundary. Empty responses are explicit
// acknowledgement structs.

// InitRequest binds a new session. An empty SessionID asks the bridge to
// generate one.
type InitRequest struct {
	SessionID string `json:"sessionId"`
}

// InitResponse acknowledges session creation with the effective id.
type InitResponse struct {
	SessionID string `json:"sessionId"`
}

// LoadRequest carries a full audio-source tree as its wire map.
type LoadRequest struct {
	Source map[string]interface{} `json:"source" binding:"required"`
}

// LoadResponse reports the resolved media duration in microseconds, or null
// if the engine cannot know it yet.
type LoadResponse struct {
	Duration *int64 `json:"duration"`
}

// PlayRequest resumes playback.
type PlayRequest struct{}

// PlayResponse is an empty acknowledgement.
type PlayResponse struct{}

// PauseRequest halts playback, keeping position.
type PauseRequest struct{}

// PauseResponse is an empty acknowledgement.
type PauseResponse struct{}

// SetVolumeRequest sets the linear gain. Values pass through to the engine
// uninterpreted; the protocol specifies no clamping.
type SetVolumeRequest struct {
	Volume float64 `json:"volume"`
}

// SetVolumeResponse is an empty acknowledgement.
type SetVolumeResponse struct{}

// SetSpeedRequest sets the playback rate multiplier, uninterpreted.
type SetSpeedRequest struct {
	Speed float64 `json:"speed"`
}

// SetSpeedResponse is an empty acknowledgement.
type SetSpeedResponse struct{}

// SetLoopModeRequest carries a LoopMode wire ordinal.
type SetLoopModeRequest struct {
	LoopMode int `json:"loopMode"`
}

// SetLoopModeResponse is an empty acknowledgement.
type SetLoopModeResponse struct{}

// SetShuffleModeRequest carries a ShuffleMode wire ordinal.
type SetShuffleModeRequest struct {
	ShuffleMode int `json:"shuffleMode"`
}

// SetShuffleModeResponse is an empty acknowledgement.
type SetShuffleModeResponse struct{}

// SetAutomaticallyWaitsToMinimizeStallingRequest is a buffering-policy hint.
type SetAutomaticallyWaitsToMinimizeStallingRequest struct {
	Enabled bool `json:"enabled"`
}

// SetAutomaticallyWaitsToMinimizeStallingResponse is an empty acknowledgement.
type SetAutomaticallyWaitsToMinimizeStallingResponse struct{}

// SeekRequest targets a position within the current item, or within the item
// at Index when Index is non-null.
type SeekRequest struct {
	Position int64 `json:"position"` // microseconds since media start
	Index    *int  `json:"index"`    // null means "within current item"
}

// SeekResponse is an empty acknowledgement.
type SeekResponse struct{}

// SetAndroidAudioAttributesRequest passes three opaque platform-defined
// integer codes through uninterpreted.
type SetAndroidAudioAttributesRequest struct {
	ContentType int `json:"contentType"`
	Flags       int `json:"flags"`
	Usage       int `json:"usage"`
}

// SetAndroidAudioAttributesResponse is an empty acknowledgement.
type SetAndroidAudioAttributesResponse struct{}

// DisposeRequest releases all session resources; the session is unusable
// afterward.
type DisposeRequest struct{}

// DisposeResponse is an empty acknowledgement.
type DisposeResponse struct{}

// ConcatenatingInsertAllRequest inserts an ordered batch of new children into
// the live concatenating source with the given id, at the given index.
type ConcatenatingInsertAllRequest struct {
	ID       string                   `json:"id" binding:"required"`
	Index    int                      `json:"index"`
	Children []map[string]interface{} `json:"children" binding:"required"`
}

// ConcatenatingInsertAllResponse is an empty acknowledgement.
type ConcatenatingInsertAllResponse struct{}

// ConcatenatingRemoveRangeRequest removes children in [StartIndex, EndIndex).
type ConcatenatingRemoveRangeRequest struct {
	ID         string `json:"id" binding:"required"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

// ConcatenatingRemoveRangeResponse is an empty acknowledgement.
type ConcatenatingRemoveRangeResponse struct{}

// ConcatenatingMoveRequest relocates one child from CurrentIndex to NewIndex.
type ConcatenatingMoveRequest struct {
	ID           string `json:"id" binding:"required"`
	CurrentIndex int    `json:"currentIndex"`
	NewIndex     int    `json:"newIndex"`
}

// ConcatenatingMoveResponse is an empty acknowledgement.
type ConcatenatingMoveResponse struct{}
