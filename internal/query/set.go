// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"
	"strings"

	"github.com/oef-foundation/oef-node/internal/value"
)

// SetOp selects set membership or non-membership.
type SetOp int

const (
	In SetOp = iota
	NotIn
)

func (op SetOp) String() string {
	if op == NotIn {
		return "not_in"
	}
	return "in"
}

// Set constrains a value to be a member (or non-member) of a fixed
// collection of same-kind candidates. Location is not a valid member
// kind — set membership over coordinates has no natural meaning here.
type Set struct {
	op     SetOp
	kind   value.Kind
	values []value.Value
}

// NewSet constructs a Set constraint. All of values must share kind,
// and kind may not be Location.
func NewSet(op SetOp, kind value.Kind, values []value.Value) (Set, error) {
	if kind == value.KindLocation {
		return Set{}, fmt.Errorf("query: set constraints do not support location values")
	}
	for i, v := range values {
		if v.Kind() != kind {
			return Set{}, fmt.Errorf("query: set value %d has kind %s, expected %s", i, v.Kind(), kind)
		}
	}
	copied := make([]value.Value, len(values))
	copy(copied, values)
	return Set{op: op, kind: kind, values: copied}, nil
}

// Admissible reports whether this set's kind matches attrType.
func (s Set) Admissible(attrType value.Kind) bool {
	return attrType == s.kind
}

// Op reports whether this is an In or NotIn set.
func (s Set) Op() SetOp { return s.op }

// ValueKind reports the kind every member of the set shares.
func (s Set) ValueKind() value.Kind { return s.kind }

// Values returns a copy of the set's member values.
func (s Set) Values() []value.Value {
	out := make([]value.Value, len(s.values))
	copy(out, s.values)
	return out
}

// Check reports whether v is a member of the set, or — for NotIn — is
// not.
func (s Set) Check(v value.Value) bool {
	if v.Kind() != s.kind {
		return false
	}
	member := false
	for _, sv := range s.values {
		if sv.Equal(v) {
			member = true
			break
		}
	}
	if s.op == In {
		return member
	}
	return !member
}

func (s Set) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = v.String()
	}
	return fmt.Sprintf("set(%s, {%s})", s.op, strings.Join(parts, ", "))
}
