// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"net"

	"github.com/oef-foundation/oef-node/internal/wire"
)

// handshake drives AwaitingId and AwaitingHandshakeReply. It returns a
// Session in state Established on success, or (nil, nil) when the
// peer was cleanly rejected (the socket has already been closed in
// that case). A non-nil error indicates a transport failure during
// the handshake itself.
func (h *Handler) handshake(conn net.Conn) (*Session, error) {
	var id wire.IDMessage
	if err := wire.ReadFrameLimit(conn, &id, h.maxFrameSize()); err != nil {
		return nil, fmt.Errorf("session: reading ID frame: %w", err)
	}

	if h.Agents.Exists(id.PublicKey) {
		h.Logger.Warn("rejecting duplicate identity", "public_key", id.PublicKey, "remote_addr", conn.RemoteAddr())
		wire.WriteFrameLimit(conn, wire.PhraseMessage{Failure: true}, h.maxFrameSize())
		conn.Close()
		return nil, nil
	}

	sess := NewSession(id.PublicKey, conn, h.WriteTimeout, h.Logger, h.MaxFrameSize)
	sess.setState(AwaitingHandshakeReply)

	if err := sess.WriteFrame(wire.PhraseMessage{Phrase: handshakePhrase}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: writing handshake phrase: %w", err)
	}

	var answer wire.AnswerMessage
	if err := sess.ReadFrame(&answer); err != nil {
		h.Logger.Debug("handshake answer failed", "public_key", id.PublicKey, "remote_addr", conn.RemoteAddr(), "error", err)
		sess.WriteFrame(wire.ConnectedMessage{Status: false})
		conn.Close()
		return nil, nil
	}

	if !h.Agents.Add(id.PublicKey, sess) {
		h.Logger.Warn("handshake lost admission race", "public_key", id.PublicKey, "remote_addr", conn.RemoteAddr())
		sess.WriteFrame(wire.ConnectedMessage{Status: false})
		conn.Close()
		return nil, nil
	}

	if err := sess.WriteFrame(wire.ConnectedMessage{Status: true}); err != nil {
		h.Agents.Remove(id.PublicKey)
		conn.Close()
		return nil, fmt.Errorf("session: writing connected frame: %w", err)
	}

	sess.setState(Established)
	return sess, nil
}
