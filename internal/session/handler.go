// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/oef-foundation/oef-node/internal/directory"
	"github.com/oef-foundation/oef-node/internal/wire"
)

// handshakePhrase is the fixed challenge string the server sends
// during AwaitingHandshakeReply. Cryptographic verification of the
// answer is a deliberate non-goal: any successfully decoded Answer
// frame is accepted.
const handshakePhrase = "RandomlyGeneratedString"

// Handler drives one connection's full lifetime: handshake, then the
// Established dispatch loop, then teardown. One Handler instance is
// shared across all connections accepted by a server; per-connection
// state lives on the Session it constructs.
type Handler struct {
	Agents       *directory.AgentDirectory
	Services     *directory.ServiceDirectory
	Logger       *slog.Logger
	WriteTimeout time.Duration

	// MaxFrameSize bounds every frame read or written on a session. Zero
	// means wire.DefaultMaxFrameSize.
	MaxFrameSize uint32
}

// NewHandler constructs a Handler over the given directories.
func NewHandler(agents *directory.AgentDirectory, services *directory.ServiceDirectory, logger *slog.Logger, writeTimeout time.Duration) *Handler {
	return &Handler{Agents: agents, Services: services, Logger: logger, WriteTimeout: writeTimeout}
}

// maxFrameSize returns h.MaxFrameSize, substituting
// wire.DefaultMaxFrameSize when unset.
func (h *Handler) maxFrameSize() uint32 {
	if h.MaxFrameSize == 0 {
		return wire.DefaultMaxFrameSize
	}
	return h.MaxFrameSize
}

// Run drives conn through its full state machine lifetime. It returns
// once the connection is closed, either by the peer, by a protocol
// rejection, or by a transport error. Run always closes conn before
// returning.
func (h *Handler) Run(conn net.Conn) {
	sess, err := h.handshake(conn)
	if err != nil {
		h.Logger.Debug("handshake did not complete", "error", err, "remote_addr", conn.RemoteAddr())
		conn.Close()
		return
	}
	if sess == nil {
		// Handshake rejected the peer cleanly (duplicate identity,
		// decode failure, directory race); the socket is already closed.
		return
	}

	h.Logger.Info("session established", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr())
	h.dispatchLoop(sess)
}

// dispatchLoop reads Envelope frames until a read error, dispatching
// each to its handler before issuing the next read — frames from one
// connection are therefore handled strictly in order.
func (h *Handler) dispatchLoop(sess *Session) {
	defer h.teardown(sess)

	for {
		var env wire.Envelope
		if err := sess.ReadFrame(&env); err != nil {
			if errors.Is(err, io.EOF) {
				h.Logger.Debug("session closed by peer", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr())
			} else {
				h.Logger.Debug("session read error", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "error", err)
			}
			sess.setState(Closed)
			return
		}
		h.Logger.Debug("dispatching envelope", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "tag", envelopeTag(env))
		h.dispatch(sess, env)
	}
}

// teardown sweeps sess from both directories. Called exactly once,
// whether the connection ended via a read error or the peer closing
// cleanly — the specification does not distinguish between these for
// cleanup purposes.
func (h *Handler) teardown(sess *Session) {
	h.Agents.Remove(sess.ID())
	h.Services.UnregisterAll(sess.ID())
	sess.Close()
}
