// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

// Package directory implements the node's two concurrent lookup
// tables: the ServiceDirectory (Instance -> set of identities) and the
// AgentDirectory (identity -> live session). Each guards every
// operation with a single read-write mutex (lookups and queries share
// it, mutations hold it exclusively) — there is no partial locking, and
// no I/O happens while a lock is held.
package directory

import (
	"sync"

	"github.com/oef-foundation/oef-node/internal/query"
	"github.com/oef-foundation/oef-node/internal/schema"
)

// ServiceDirectory maps a service description (an Instance) to the set
// of agent identities offering it. Entries are bucketed by Instance
// hash with chaining, since Instance.Equal is only a candidate
// equivalence and hash collisions between distinct instances are
// possible.
type ServiceDirectory struct {
	mu      sync.RWMutex
	buckets map[uint64][]*serviceEntry
}

type serviceEntry struct {
	instance *schema.Instance
	ids      map[string]struct{}
}

// sameInstance treats two instances as the same directory entry when
// each is Equal to the other — the one-sided Instance.Equal is applied
// in both directions here so that service identity, unlike query
// matching, behaves symmetrically.
func sameInstance(a, b *schema.Instance) bool {
	return a.Equal(b) && b.Equal(a)
}

// NewServiceDirectory constructs an empty ServiceDirectory.
func NewServiceDirectory() *ServiceDirectory {
	return &ServiceDirectory{buckets: make(map[uint64][]*serviceEntry)}
}

func (d *ServiceDirectory) findLocked(instance *schema.Instance) *serviceEntry {
	for _, e := range d.buckets[instance.Hash()] {
		if sameInstance(e.instance, instance) {
			return e
		}
	}
	return nil
}

// Register inserts id into the set of agents offering instance,
// creating the entry if absent. Reports true iff the set grew.
func (d *ServiceDirectory) Register(instance *schema.Instance, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	e := d.findLocked(instance)
	if e == nil {
		e = &serviceEntry{instance: instance, ids: make(map[string]struct{})}
		h := instance.Hash()
		d.buckets[h] = append(d.buckets[h], e)
	}
	if _, present := e.ids[id]; present {
		return false
	}
	e.ids[id] = struct{}{}
	return true
}

// Unregister removes id from the set under instance. If the set
// becomes empty, the entry is dropped. Reports true iff id was
// present.
func (d *ServiceDirectory) Unregister(instance *schema.Instance, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	h := instance.Hash()
	bucket := d.buckets[h]
	for i, e := range bucket {
		if !sameInstance(e.instance, instance) {
			continue
		}
		if _, present := e.ids[id]; !present {
			return false
		}
		delete(e.ids, id)
		if len(e.ids) == 0 {
			d.buckets[h] = append(bucket[:i], bucket[i+1:]...)
			if len(d.buckets[h]) == 0 {
				delete(d.buckets, h)
			}
		}
		return true
	}
	return false
}

// UnregisterAll strips id from every value-set in the directory. It
// does not garbage-collect entries left with an empty id set — a
// faithful reproduction of the upstream node's behavior (see
// DESIGN.md). Subsequent Query calls pay the cost of walking those
// residual empty entries.
func (d *ServiceDirectory) UnregisterAll(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, bucket := range d.buckets {
		for _, e := range bucket {
			delete(e.ids, id)
		}
	}
}

// Query returns, in no particular order and with duplicates removed,
// the union of identities registered under every instance satisfying
// q.
func (d *ServiceDirectory) Query(q *query.QueryModel) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, bucket := range d.buckets {
		for _, e := range bucket {
			if !q.Matches(e.instance) {
				continue
			}
			for id := range e.ids {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}

// Size returns the number of distinct instances currently registered,
// including any empty residue left by UnregisterAll.
func (d *ServiceDirectory) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n := 0
	for _, bucket := range d.buckets {
		n += len(bucket)
	}
	return n
}

// Snapshot returns a deep copy of the directory's current state: every
// registered instance mapped to the identities currently offering it.
// Instances with no remaining identities (UnregisterAll residue) are
// omitted. Keys are the directory's own canonical *schema.Instance
// pointers — a Go map cannot key on schema.Instance by value since it
// embeds a map — but since Register/findLocked already collapse
// instances that are Equal in both directions onto one canonical
// pointer, pointer identity here coincides with directory-entry
// identity.
//
// Intended for metrics and tests; takes the directory mutex for the
// duration of the copy, like every other operation.
func (d *ServiceDirectory) Snapshot() map[*schema.Instance][]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[*schema.Instance][]string)
	for _, bucket := range d.buckets {
		for _, e := range bucket {
			if len(e.ids) == 0 {
				continue
			}
			ids := make([]string, 0, len(e.ids))
			for id := range e.ids {
				ids = append(ids, id)
			}
			out[e.instance] = ids
		}
	}
	return out
}
