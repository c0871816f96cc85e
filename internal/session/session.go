// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

// Package session implements the node's per-connection state machine:
// a handshake (AwaitingId -> AwaitingHandshakeReply -> Established)
// followed by an indefinite envelope dispatch loop, tearing down into
// Closed on the first read error.
package session

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/oef-foundation/oef-node/internal/schema"
	"github.com/oef-foundation/oef-node/internal/wire"
)

// State names the session's position in the handshake/dispatch state
// machine.
type State int

const (
	AwaitingID State = iota
	AwaitingHandshakeReply
	Established
	Closed
)

func (s State) String() string {
	switch s {
	case AwaitingID:
		return "awaiting_id"
	case AwaitingHandshakeReply:
		return "awaiting_handshake_reply"
	case Established:
		return "established"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the live handle for one connected agent. It implements
// directory.AgentHandle so the agent directory can search sessions by
// description without importing this package.
//
// Only one goroutine writes to conn at a time (writeMu serializes
// this); reads are issued one at a time from the owning state
// machine's loop, never concurrently with another read.
type Session struct {
	id     string
	conn   net.Conn
	logger *slog.Logger

	writeMu      sync.Mutex
	writeTimeout time.Duration
	maxFrameSize uint32

	descMu sync.RWMutex
	desc   *schema.Instance

	stateMu sync.Mutex
	state   State
}

// NewSession constructs a Session wrapping conn, in state AwaitingID.
// logger may be nil, in which case state transitions are not logged.
// maxFrameSize bounds every frame this session reads or writes; a zero
// value falls back to wire.DefaultMaxFrameSize.
func NewSession(id string, conn net.Conn, writeTimeout time.Duration, logger *slog.Logger, maxFrameSize uint32) *Session {
	if maxFrameSize == 0 {
		maxFrameSize = wire.DefaultMaxFrameSize
	}
	return &Session{
		id:           id,
		conn:         conn,
		writeTimeout: writeTimeout,
		state:        AwaitingID,
		logger:       logger,
		maxFrameSize: maxFrameSize,
	}
}

// ID returns the session's public identity.
func (s *Session) ID() string { return s.id }

// RemoteAddr returns the remote address of the underlying connection,
// for use as a log field.
func (s *Session) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// State returns the session's current state.
func (s *Session) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// setState transitions the session to st, logging the transition at
// debug level with the session's identity and remote address.
func (s *Session) setState(st State) {
	s.stateMu.Lock()
	from := s.state
	s.state = st
	s.stateMu.Unlock()

	if s.logger != nil {
		s.logger.Debug("session state transition",
			"public_key", s.id,
			"remote_addr", s.conn.RemoteAddr(),
			"from", from,
			"to", st,
		)
	}
}

// Description returns the agent's currently registered description,
// or nil. Implements directory.AgentHandle.
func (s *Session) Description() *schema.Instance {
	s.descMu.RLock()
	defer s.descMu.RUnlock()
	return s.desc
}

// SetDescription replaces the session's description.
func (s *Session) SetDescription(inst *schema.Instance) {
	s.descMu.Lock()
	s.desc = inst
	s.descMu.Unlock()
}

// ClearDescription removes the session's description.
func (s *Session) ClearDescription() {
	s.descMu.Lock()
	s.desc = nil
	s.descMu.Unlock()
}

// WriteFrame encodes v and writes it as one length-prefixed frame,
// under the session's write deadline. Safe for concurrent use: a
// forwarding handler on another goroutine may write to this session
// at the same time as its own state machine loop.
func (s *Session) WriteFrame(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return fmt.Errorf("session: setting write deadline: %w", err)
		}
	}
	return wire.WriteFrameLimit(s.conn, v, s.maxFrameSize)
}

// ReadFrame reads one length-prefixed frame and decodes it into v.
// Only the state machine's own read loop calls this; it is never
// called concurrently with itself.
func (s *Session) ReadFrame(v any) error {
	return wire.ReadFrameLimit(s.conn, v, s.maxFrameSize)
}

// Close closes the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}
