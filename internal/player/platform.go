// Package player implements the engine side of the playback protocol: a
// process-wide platform factory handing out independent per-id sessions, the
// session handle itself, and the event broadcaster feeding controllers.
package player

import (
	"fmt"
	"sync"

	"audio-bridge/internal/protocol"
)

// EngineFactory builds one engine instance per session.
type EngineFactory func() Engine

// Platform is the process-wide factory. Init is its only operation; every
// other operation lives on the session handle it returns. Sessions with
// distinct ids are fully independent.
type Platform struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	newEngine   EngineFactory
	eventBuffer int
}

// NewPlatform creates a platform building engines with newEngine and sizing
// subscriber queues to eventBuffer (0 means DefaultEventBuffer).
func NewPlatform(newEngine EngineFactory, eventBuffer int) *Platform {
	return &Platform{
		sessions:    make(map[string]*Session),
		newEngine:   newEngine,
		eventBuffer: eventBuffer,
	}
}

// Init creates and binds a new session. Calling it again with the same id
// disposes the previous session first, so repeated calls are safe.
func (p *Platform) Init(req protocol.InitRequest) (*Session, error) {
	if req.SessionID == "" {
		return nil, &protocol.DecodeError{Field: "sessionId", Reason: "missing required field"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.sessions[req.SessionID]; ok {
		fmt.Printf("[Platform] Re-init of session %s, disposing previous\n", req.SessionID)
		old.Dispose()
	}

	session := newSession(req.SessionID, p.newEngine(), p.eventBuffer)
	p.sessions[req.SessionID] = session
	fmt.Printf("[Platform] Session %s bound (engine: %s)\n", session.ID, session.engine.Name())
	return session, nil
}

// Get returns the live session for id. An unknown id (never initialized, or
// already removed) is an invalid session state.
func (p *Platform) Get(id string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[id]
	if !ok {
		return nil, protocol.ErrInvalidSessionState
	}
	return session, nil
}

// Dispose tears down the session for id and forgets it.
func (p *Platform) Dispose(id string) error {
	p.mu.Lock()
	session, ok := p.sessions[id]
	if ok {
		delete(p.sessions, id)
	}
	p.mu.Unlock()
	if !ok {
		return protocol.ErrInvalidSessionState
	}
	return session.Dispose()
}

// DisposeAll tears down every live session; used on server shutdown.
func (p *Platform) DisposeAll() {
	p.mu.Lock()
	sessions := make([]*Session, 0, len(p.sessions))
	for id, session := range p.sessions {
		sessions = append(sessions, session)
		delete(p.sessions, id)
	}
	p.mu.Unlock()
	for _, session := range sessions {
		session.Dispose()
	}
}
