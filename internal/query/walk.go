// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"github.com/oef-foundation/oef-node/internal/schema"
	"github.com/oef-foundation/oef-node/internal/value"
)

// walk performs the structural recursion shared by CheckValue and
// CheckInstance: And/Or/Not composition is identical in both modes,
// only what happens at a leaf differs. leafFn closes over whatever
// context the caller is evaluating against (a Value or an Instance).
// Valid below has different Not semantics (validity is not negation)
// so it walks the tree on its own rather than sharing this helper.
//
// A malformed And/Or node (fewer than two children) can only arise
// from a tree built outside this package's constructors — e.g. a
// decoded wire message that skipped validation — and evaluates to
// false rather than panicking.
func walk(e ConstraintExpr, leafFn func(LeafExpr) bool) bool {
	switch t := e.(type) {
	case LeafExpr:
		return leafFn(t)
	case NotExpr:
		return !walk(t.Child, leafFn)
	case AndExpr:
		if len(t.Children) < 2 {
			return false
		}
		for _, c := range t.Children {
			if !walk(c, leafFn) {
				return false
			}
		}
		return true
	case OrExpr:
		if len(t.Children) < 2 {
			return false
		}
		for _, c := range t.Children {
			if walk(c, leafFn) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Valid reports whether every leaf in e names an attribute declared in
// model with a compatible type. A Not or And/Or node is valid iff its
// children are valid (and, for And/Or, number at least two) — unlike
// CheckValue/CheckInstance, Not does not negate here, so this walks
// the tree with its own recursion rather than sharing walk().
func Valid(e ConstraintExpr, model *schema.DataModel) bool {
	switch t := e.(type) {
	case LeafExpr:
		attr, ok := model.Attribute(t.AttributeName)
		if !ok {
			return false
		}
		return t.Constraint.Admissible(attr.Type)
	case NotExpr:
		return Valid(t.Child, model)
	case AndExpr:
		if len(t.Children) < 2 {
			return false
		}
		for _, c := range t.Children {
			if !Valid(c, model) {
				return false
			}
		}
		return true
	case OrExpr:
		if len(t.Children) < 2 {
			return false
		}
		for _, c := range t.Children {
			if !Valid(c, model) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CheckValue evaluates e against a single raw Value. Every leaf in e is
// checked against the same v, regardless of attribute name — this mode
// is used when querying a bare value rather than a structured
// instance.
func CheckValue(e ConstraintExpr, v value.Value) bool {
	return walk(e, func(l LeafExpr) bool {
		return l.Constraint.Check(v)
	})
}

// CheckInstance evaluates e against inst, looking up each leaf's named
// attribute in inst.Values. A leaf naming an attribute absent from inst
// evaluates to false.
func CheckInstance(e ConstraintExpr, inst *schema.Instance) bool {
	return walk(e, func(l LeafExpr) bool {
		v, ok := inst.Values[l.AttributeName]
		if !ok {
			return false
		}
		return l.Constraint.Check(v)
	})
}
