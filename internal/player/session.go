package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"audio-bridge/internal/protocol"
)

// Session is one bound player instance. All state is guarded by a single
// mutex so commands issued sequentially are observed in issuance order, and
// playlist mutations are serialized against transport commands on the live
// tree. Position advances on a simulated clock (wall time times speed) while
// playing; the engine behind the boundary owns the real audio.
type Session struct {
	ID string

	mu       sync.Mutex
	engine   Engine
	events   *Broadcaster
	disposed bool

	tree                    protocol.AudioSource
	state                   protocol.ProcessingState
	playing                 bool
	volume                  float64
	speed                   float64
	loopMode                protocol.LoopMode
	shuffleMode             protocol.ShuffleMode
	waitsToMinimizeStalling bool

	audioContentType int
	audioFlags       int
	audioUsage       int

	duration     *time.Duration
	currentIndex *int
	basePosition time.Duration
	baseTime     time.Time

	now func() time.Time // injected for tests
}

var _ AudioPlayer = (*Session)(nil)

func newSession(id string, engine Engine, eventBuffer int) *Session {
	return &Session{
		ID:     id,
		engine: engine,
		events: NewBroadcaster(eventBuffer),
		state:  protocol.StateIdle,
		volume: 1.0,
		speed:  1.0,
		now:    time.Now,
	}
}

func (s *Session) checkLive() error {
	if s.disposed {
		return protocol.ErrSessionDisposed
	}
	return nil
}

// position returns the simulated position as of now.
func (s *Session) position() time.Duration {
	pos := s.basePosition
	if s.playing && s.state == protocol.StateReady {
		elapsed := s.now().Sub(s.baseTime)
		pos += time.Duration(float64(elapsed) * s.speed)
	}
	if s.duration != nil && pos > *s.duration {
		pos = *s.duration
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// snapshotLocked builds the current state snapshot. Callers hold s.mu.
func (s *Session) snapshotLocked() protocol.PlaybackEvent {
	pos := s.position()
	buffered := pos
	if s.duration != nil {
		buffered = *s.duration
	}
	return protocol.PlaybackEvent{
		ProcessingState:  s.state,
		UpdateTime:       s.now(),
		UpdatePosition:   pos,
		BufferedPosition: buffered,
		Duration:         s.duration,
		CurrentIndex:     s.currentIndex,
	}
}

func (s *Session) emitLocked() {
	s.events.Publish(s.snapshotLocked())
}

// Load validates the tree, hands it to the engine, and adopts it as the live
// tree. On any failure the previous tree stays untouched.
func (s *Session) Load(ctx context.Context, source protocol.AudioSource) (*time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, &protocol.DecodeError{Field: "source", Reason: "missing required field"}
	}
	if err := protocol.ValidateIDs(source); err != nil {
		return nil, err
	}

	s.state = protocol.StateLoading
	s.emitLocked()

	duration, err := s.engine.Prepare(ctx, source)
	if err != nil {
		s.state = protocol.StateIdle
		s.emitLocked()
		return nil, fmt.Errorf("engine %s: %w", s.engine.Name(), err)
	}

	s.tree = source
	s.duration = duration
	s.basePosition = 0
	s.baseTime = s.now()
	if source.FlatLen() > 0 {
		zero := 0
		s.currentIndex = &zero
	} else {
		s.currentIndex = nil
	}
	s.state = protocol.StateReady
	s.emitLocked()
	return duration, nil
}

// Play resumes the simulated clock.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	if s.playing {
		return nil
	}
	s.baseTime = s.now()
	s.playing = true
	s.emitLocked()
	return nil
}

// Pause freezes the position at its current value.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	if !s.playing {
		return nil
	}
	s.basePosition = s.position()
	s.baseTime = s.now()
	s.playing = false
	s.emitLocked()
	return nil
}

// SetVolume stores the gain uninterpreted; no clamping is specified by the
// protocol.
func (s *Session) SetVolume(volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	s.volume = volume
	return nil
}

// SetSpeed rebases the position clock so the new rate applies from now.
func (s *Session) SetSpeed(speed float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	s.basePosition = s.position()
	s.baseTime = s.now()
	s.speed = speed
	s.emitLocked()
	return nil
}

func (s *Session) SetLoopMode(mode protocol.LoopMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	s.loopMode = mode
	return nil
}

func (s *Session) SetShuffleMode(mode protocol.ShuffleMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	s.shuffleMode = mode
	return nil
}

func (s *Session) SetAutomaticallyWaitsToMinimizeStalling(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	s.waitsToMinimizeStalling = enabled
	return nil
}

// Seek jumps the simulated clock. A nil index seeks within the current item.
func (s *Session) Seek(position time.Duration, index *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	s.basePosition = position
	s.baseTime = s.now()
	if index != nil {
		i := *index
		s.currentIndex = &i
	}
	s.emitLocked()
	return nil
}

// SetAndroidAudioAttributes stores the three opaque platform codes.
func (s *Session) SetAndroidAudioAttributes(contentType, flags, usage int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	s.audioContentType = contentType
	s.audioFlags = flags
	s.audioUsage = usage
	return nil
}

// ConcatenatingInsertAll splices children into the live tree. Nothing is
// modified when validation fails.
func (s *Session) ConcatenatingInsertAll(id string, index int, children []protocol.AudioSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	cs, err := findConcatenating(s.tree, id)
	if err != nil {
		return err
	}
	if err := insertAll(s.tree, cs, index, children); err != nil {
		return err
	}
	s.clampIndexLocked()
	s.emitLocked()
	return nil
}

// ConcatenatingRemoveRange removes children [startIndex, endIndex) from the
// live tree.
func (s *Session) ConcatenatingRemoveRange(id string, startIndex, endIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	cs, err := findConcatenating(s.tree, id)
	if err != nil {
		return err
	}
	if err := removeRange(cs, startIndex, endIndex); err != nil {
		return err
	}
	s.clampIndexLocked()
	s.emitLocked()
	return nil
}

// ConcatenatingMove relocates a child within the live tree.
func (s *Session) ConcatenatingMove(id string, currentIndex, newIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return err
	}
	cs, err := findConcatenating(s.tree, id)
	if err != nil {
		return err
	}
	if err := move(cs, currentIndex, newIndex); err != nil {
		return err
	}
	s.emitLocked()
	return nil
}

// clampIndexLocked keeps the current index inside the mutated flattened
// sequence. Callers hold s.mu.
func (s *Session) clampIndexLocked() {
	if s.currentIndex == nil || s.tree == nil {
		return
	}
	length := s.tree.FlatLen()
	if length == 0 {
		s.currentIndex = nil
		return
	}
	if *s.currentIndex >= length {
		last := length - 1
		s.currentIndex = &last
	}
}

// Events subscribes to state snapshots from now until ctx cancellation or
// dispose.
func (s *Session) Events(ctx context.Context) <-chan protocol.PlaybackEvent {
	return s.events.Subscribe(ctx)
}

// Snapshot returns the current state without mutating anything.
func (s *Session) Snapshot() (protocol.PlaybackEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLive(); err != nil {
		return protocol.PlaybackEvent{}, err
	}
	return s.snapshotLocked(), nil
}

// Dispose releases the session. The event stream terminates, the engine is
// released, and every later command fails with ErrSessionDisposed. Calling
// Dispose again is a no-op.
func (s *Session) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil
	}
	s.disposed = true
	s.playing = false
	s.tree = nil
	s.engine.Dispose()
	s.events.Close()
	return nil
}
