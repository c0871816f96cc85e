// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"sync"

	"github.com/oef-foundation/oef-node/internal/query"
	"github.com/oef-foundation/oef-node/internal/schema"
)

// AgentHandle is the subset of a live session the directory needs in
// order to search by description. The session package implements this
// interface; the directory package never imports session, so that
// session can depend on directory without a cycle.
type AgentHandle interface {
	// Description returns the agent's currently registered description,
	// or nil if none is registered.
	Description() *schema.Instance
}

// AgentDirectory maps a public identity to its live session handle.
// Values are shared: Get returns the same handle held elsewhere, not a
// copy of session state.
type AgentDirectory struct {
	mu       sync.RWMutex
	sessions map[string]AgentHandle
}

// NewAgentDirectory constructs an empty AgentDirectory.
func NewAgentDirectory() *AgentDirectory {
	return &AgentDirectory{sessions: make(map[string]AgentHandle)}
}

// Add inserts session under id iff id is not already present. This is
// the sole admission point for unique-identity enforcement.
func (d *AgentDirectory) Add(id string, session AgentHandle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, present := d.sessions[id]; present {
		return false
	}
	d.sessions[id] = session
	return true
}

// Remove deletes id's entry, reporting whether anything was removed.
func (d *AgentDirectory) Remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, present := d.sessions[id]; !present {
		return false
	}
	delete(d.sessions, id)
	return true
}

// Exists reports whether id currently has a session.
func (d *AgentDirectory) Exists(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.sessions[id]
	return ok
}

// Get returns id's session handle, or nil, false if absent.
func (d *AgentDirectory) Get(id string) (AgentHandle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.sessions[id]
	return s, ok
}

// Clear removes every session.
func (d *AgentDirectory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions = make(map[string]AgentHandle)
}

// Search returns, snapshotted under lock, the identities whose session
// currently holds a non-nil description satisfying q.
func (d *AgentDirectory) Search(q *query.QueryModel) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []string
	for id, s := range d.sessions {
		desc := s.Description()
		if desc == nil {
			continue
		}
		if q.Matches(desc) {
			out = append(out, id)
		}
	}
	return out
}

// Size returns the number of sessions currently held.
func (d *AgentDirectory) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}

// Count is an alias for Size, named to match ServiceDirectory's
// companion metrics/debug surface.
func (d *AgentDirectory) Count() int {
	return d.Size()
}
