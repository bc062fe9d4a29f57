// Package debug traces the glyph pipeline of the generator.
//
// One switch (DOTFACTORY_DEBUG=1 or --debug) enables every event. With
// tracing off a nil *Session is used and every call is a no-op. Each
// generation gets its own session ID, and events are JSON Lines unless
// the pretty sink is chosen.
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

// SetEnabled configures debug mode globally.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled returns true if debug mode is active.
func Enabled() bool {
	return enabled.Load()
}

// InitFromEnv enables debug mode when DOTFACTORY_DEBUG=1. It reports
// whether DOTFACTORY_DEBUG_PRETTY=1 asks for the pretty format.
func InitFromEnv() (pretty bool) {
	if os.Getenv("DOTFACTORY_DEBUG") == "1" {
		SetEnabled(true)
	}
	return os.Getenv("DOTFACTORY_DEBUG_PRETTY") == "1"
}

// Session collects the events of one generation. Workers of the same
// generation may emit concurrently.
type Session struct {
	mu        sync.Mutex
	sessionID string
	sink      Sink
	startTime time.Time
}

// NewSession creates a session writing to sink. It returns nil when
// debug mode is off or sink is nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		sessionID: generateSessionID(),
		sink:      sink,
		startTime: time.Now(),
	}
	s.Emit("session", "Start", map[string]any{
		"version": "1.0",
	})
	return s
}

// SessionID returns the unique identifier for this session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// Emit sends an event to the sink. It is a no-op on a nil session.
func (s *Session) Emit(phase, event string, data any) {
	if s == nil {
		return
	}

	evt := Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.sessionID,
		Phase:     phase,
		Event:     event,
		Data:      data,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Sink failures must not fail a generation.
	_ = s.sink.Write(evt)
}

// Close emits the end event and closes the sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	s.Emit("session", "End", map[string]int64{
		"elapsed_ms": time.Since(s.startTime).Milliseconds(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Close()
}

func generateSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		n := time.Now().UnixNano()
		return hex.EncodeToString([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	}
	return hex.EncodeToString(b)
}

// Event is the envelope of every debug event.
type Event struct {
	Timestamp string `json:"ts"`
	SessionID string `json:"session_id"`
	Phase     string `json:"phase"`
	Event     string `json:"event"`
	Data      any    `json:"data"`
}
