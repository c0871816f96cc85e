// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"github.com/oef-foundation/oef-node/internal/wire"
)

// dispatch routes one decoded Envelope to its handler by tag. Exactly
// one field of env should be set; payload-not-set is a protocol error
// and is logged at error level without dropping the connection.
func (h *Handler) dispatch(sess *Session, env wire.Envelope) {
	switch {
	case env.RegisterDescription != nil:
		h.handleRegisterDescription(sess, env.RegisterDescription)
	case env.UnregisterDescription != nil:
		sess.ClearDescription()
	case env.RegisterService != nil:
		h.handleRegisterService(sess, env.RegisterService)
	case env.UnregisterService != nil:
		h.handleUnregisterService(sess, env.UnregisterService)
	case env.SearchAgents != nil:
		h.handleSearchAgents(sess, env.SearchAgents)
	case env.SearchServices != nil:
		h.handleSearchServices(sess, env.SearchServices)
	case env.SendMessage != nil:
		h.handleSendMessage(sess, env.SendMessage)
	default:
		h.Logger.Error("envelope with no populated payload", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr())
	}
}

// envelopeTag names which field of env is populated, for diagnostic
// logging of the dispatch loop.
func envelopeTag(env wire.Envelope) string {
	switch {
	case env.RegisterDescription != nil:
		return "register_description"
	case env.UnregisterDescription != nil:
		return "unregister_description"
	case env.RegisterService != nil:
		return "register_service"
	case env.UnregisterService != nil:
		return "unregister_service"
	case env.SearchAgents != nil:
		return "search_agents"
	case env.SearchServices != nil:
		return "search_services"
	case env.SendMessage != nil:
		return "send_message"
	default:
		return "unset"
	}
}

func (h *Handler) handleRegisterDescription(sess *Session, p *wire.DescriptionPayload) {
	inst, err := wire.InstanceFromWire(p.Description)
	if err != nil {
		h.Logger.Warn("register_description failed", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "error", err)
		h.sendError(sess, wire.OperationRegisterDesc, nil)
		return
	}
	sess.SetDescription(inst)
}

func (h *Handler) handleRegisterService(sess *Session, p *wire.DescriptionPayload) {
	inst, err := wire.InstanceFromWire(p.Description)
	if err != nil {
		h.Logger.Warn("register_service failed to decode", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "error", err)
		h.sendError(sess, wire.OperationRegisterService, nil)
		return
	}
	if !h.Services.Register(inst, sess.ID()) {
		h.Logger.Warn("register_service rejected", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "instance", inst)
		h.sendError(sess, wire.OperationRegisterService, nil)
	}
}

func (h *Handler) handleUnregisterService(sess *Session, p *wire.DescriptionPayload) {
	inst, err := wire.InstanceFromWire(p.Description)
	if err != nil {
		h.Logger.Warn("unregister_service failed to decode", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "error", err)
		h.sendError(sess, wire.OperationUnregisterService, nil)
		return
	}
	if !h.Services.Unregister(inst, sess.ID()) {
		h.Logger.Warn("unregister_service rejected", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "instance", inst)
		h.sendError(sess, wire.OperationUnregisterService, nil)
	}
}

func (h *Handler) handleSearchAgents(sess *Session, req *wire.SearchRequest) {
	qm, err := wire.QueryModelFromWire(req.Query)
	if err != nil {
		h.Logger.Warn("search_agents query rejected", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "error", err)
		h.writeAgents(sess, req.SearchID, nil)
		return
	}
	h.writeAgents(sess, req.SearchID, h.Agents.Search(qm))
}

func (h *Handler) handleSearchServices(sess *Session, req *wire.SearchRequest) {
	qm, err := wire.QueryModelFromWire(req.Query)
	if err != nil {
		h.Logger.Warn("search_services query rejected", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "error", err)
		h.writeAgents(sess, req.SearchID, nil)
		return
	}
	h.writeAgents(sess, req.SearchID, h.Services.Query(qm))
}

func (h *Handler) writeAgents(sess *Session, searchID uint32, ids []string) {
	msg := wire.AgentMessage{Agents: &wire.AgentMessageAgents{SearchID: searchID, Agents: ids}}
	if err := sess.WriteFrame(msg); err != nil {
		h.Logger.Debug("failed to write search reply", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "error", err)
	}
}

// handleSendMessage forwards m to its destination's socket. Forwarding
// is best effort: a destination absent from the agent directory is
// silently dropped, while a write failure against a present
// destination is reported back to the originator.
func (h *Handler) handleSendMessage(sess *Session, m *wire.SendMessagePayload) {
	handle, ok := h.Agents.Get(m.Destination)
	if !ok {
		return
	}
	dest, ok := handle.(*Session)
	if !ok {
		h.Logger.Error("agent directory handle is not a *session.Session", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "destination", m.Destination)
		return
	}

	forwarded := wire.AgentMessage{Content: &wire.AgentMessageContent{
		DialogueID: m.DialogueID,
		Origin:     sess.ID(),
		Content:    m.Content,
		Fipa:       m.Fipa,
	}}
	if err := dest.WriteFrame(forwarded); err != nil {
		h.Logger.Warn("send_message forwarding failed", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "destination", m.Destination, "error", err)
		dialogueID := m.DialogueID
		h.sendError(sess, wire.OperationSendMessage, &dialogueID)
	}
}

func (h *Handler) sendError(sess *Session, op wire.Operation, dialogueID *uint32) {
	msg := wire.AgentMessage{Error: &wire.AgentMessageError{Operation: op, DialogueID: dialogueID}}
	if err := sess.WriteFrame(msg); err != nil {
		h.Logger.Debug("failed to write error frame", "public_key", sess.ID(), "remote_addr", sess.RemoteAddr(), "operation", op, "error", err)
	}
}
