// Package server exposes the playback protocol over HTTP: one endpoint per
// player operation under /session/:id, plus a websocket carrying the
// playback event stream back to the controller.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"audio-bridge/internal/player"
	"audio-bridge/internal/protocol"
)

// API handles the protocol control endpoints.
type API struct {
	platform *player.Platform
}

// NewAPI creates a new API handler over the given platform.
func NewAPI(platform *player.Platform) *API {
	return &API{platform: platform}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps protocol errors onto HTTP statuses so every error condition
// stays distinguishable for the controller.
func statusFor(err error) int {
	switch {
	case protocol.IsDecodeError(err):
		return http.StatusBadRequest
	case errors.Is(err, protocol.ErrInvalidReference):
		return http.StatusNotFound
	case errors.Is(err, protocol.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, protocol.ErrInvalidSessionState), errors.Is(err, protocol.ErrSessionDisposed):
		return http.StatusConflict
	case errors.Is(err, protocol.ErrUnsupportedOperation):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

func (a *API) session(c *gin.Context) (*player.Session, bool) {
	session, err := a.platform.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return session, true
}

// Init creates and binds a session. A request without a session id gets a
// generated one.
func (a *API) Init(c *gin.Context) {
	req := protocol.InitRequest{SessionID: c.Param("id")}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	fmt.Printf("[API] Init request: session=%s\n", req.SessionID)

	session, err := a.platform.Init(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.InitResponse{SessionID: session.ID})
}

// Load decodes the source tree out of the request and loads it.
func (a *API) Load(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}

	var req protocol.LoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	source, err := protocol.DecodeAudioSource(req.Source)
	if err != nil {
		fail(c, err)
		return
	}

	fmt.Printf("[API] Load request: session=%s items=%d\n", session.ID, source.FlatLen())

	duration, err := session.Load(c.Request.Context(), source)
	if err != nil {
		fail(c, err)
		return
	}

	resp := protocol.LoadResponse{}
	if duration != nil {
		us := duration.Microseconds()
		resp.Duration = &us
	}
	c.JSON(http.StatusOK, resp)
}

// Play resumes playback.
func (a *API) Play(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	if err := session.Play(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.PlayResponse{})
}

// Pause halts playback.
func (a *API) Pause(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	if err := session.Pause(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.PauseResponse{})
}

// SetVolume sets the linear gain.
func (a *API) SetVolume(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.SetVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if err := session.SetVolume(req.Volume); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.SetVolumeResponse{})
}

// SetSpeed sets the playback rate multiplier.
func (a *API) SetSpeed(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.SetSpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if err := session.SetSpeed(req.Speed); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.SetSpeedResponse{})
}

// SetLoopMode decodes the loop mode ordinal and applies it.
func (a *API) SetLoopMode(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.SetLoopModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	mode, err := protocol.DecodeLoopMode(req.LoopMode)
	if err != nil {
		fail(c, err)
		return
	}
	if err := session.SetLoopMode(mode); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.SetLoopModeResponse{})
}

// SetShuffleMode decodes the shuffle mode ordinal and applies it.
func (a *API) SetShuffleMode(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.SetShuffleModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	mode, err := protocol.DecodeShuffleMode(req.ShuffleMode)
	if err != nil {
		fail(c, err)
		return
	}
	if err := session.SetShuffleMode(mode); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.SetShuffleModeResponse{})
}

// SetStalling applies the buffering-policy hint.
func (a *API) SetStalling(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.SetAutomaticallyWaitsToMinimizeStallingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if err := session.SetAutomaticallyWaitsToMinimizeStalling(req.Enabled); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.SetAutomaticallyWaitsToMinimizeStallingResponse{})
}

// Seek jumps to a position, optionally in another item.
func (a *API) Seek(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.SeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	fmt.Printf("[API] Seek request: session=%s position=%dus\n", session.ID, req.Position)

	if err := session.Seek(time.Duration(req.Position)*time.Microsecond, req.Index); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.SeekResponse{})
}

// SetAudioAttributes passes the opaque platform codes through.
func (a *API) SetAudioAttributes(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.SetAndroidAudioAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if err := session.SetAndroidAudioAttributes(req.ContentType, req.Flags, req.Usage); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.SetAndroidAudioAttributesResponse{})
}

// Dispose releases the session.
func (a *API) Dispose(c *gin.Context) {
	id := c.Param("id")
	fmt.Printf("[API] Dispose request: session=%s\n", id)
	if err := a.platform.Dispose(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.DisposeResponse{})
}

// InsertAll handles the concatenating insert-all mutation.
func (a *API) InsertAll(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.ConcatenatingInsertAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	children := make([]protocol.AudioSource, len(req.Children))
	for i, m := range req.Children {
		child, err := protocol.DecodeAudioSource(m)
		if err != nil {
			fail(c, err)
			return
		}
		children[i] = child
	}
	if err := session.ConcatenatingInsertAll(req.ID, req.Index, children); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.ConcatenatingInsertAllResponse{})
}

// RemoveRange handles the concatenating remove-range mutation.
func (a *API) RemoveRange(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.ConcatenatingRemoveRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if err := session.ConcatenatingRemoveRange(req.ID, req.StartIndex, req.EndIndex); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.ConcatenatingRemoveRangeResponse{})
}

// Move handles the concatenating move mutation.
func (a *API) Move(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	var req protocol.ConcatenatingMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if err := session.ConcatenatingMove(req.ID, req.CurrentIndex, req.NewIndex); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, protocol.ConcatenatingMoveResponse{})
}

// State returns the current snapshot without waiting for the event stream.
func (a *API) State(c *gin.Context) {
	session, ok := a.session(c)
	if !ok {
		return
	}
	snapshot, err := session.Snapshot()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.EncodeMap())
}
