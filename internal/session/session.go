// Package session owns the per-user re-entrancy guard: a shell holds one
// Session and at most one solve runs through it at a time.
package session

import (
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// ErrBusy is returned when a solve is requested while another is running.
var ErrBusy = errors.New("session: a solve is already in progress")

// Session serialises solve requests from one shell.
type Session struct {
	id     string
	engine *engine.Engine
	busy   atomic.Bool
}

// New opens a session over e.
func New(e *engine.Engine) *Session {
	return &Session{id: uuid.New().String(), engine: e}
}

func (s *Session) ID() string { return s.id }

// Engine exposes the engine for read-only catalog queries.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Busy reports whether a solve is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// Begin claims the session. Every successful Begin must be paired with End.
func (s *Session) Begin() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

// End releases the session.
func (s *Session) End() { s.busy.Store(false) }

// Solve runs one request under the guard.
func (s *Session) Solve(topic string, problem engine.ProblemID, fields map[string]string) (engine.Result, error) {
	if err := s.Begin(); err != nil {
		return engine.Result{}, err
	}
	defer s.End()
	return s.engine.Solve(topic, problem, fields), nil
}
