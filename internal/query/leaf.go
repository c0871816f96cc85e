// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

// Package query implements the OEF node's constraint expression
// language: four leaf constraint kinds (Range, Set, Relation, Distance)
// composed by a recursive And/Or/Not/Leaf expression tree, plus the
// QueryModel wrapper that ties a conjunction of top-level constraints
// to an optional DataModel.
//
// The engine evaluates the same expression tree in three modes —
// type-only validation against a DataModel, a raw Value check, and an
// Instance check. The two check modes share one structural recursive
// walk (see walk.go) that dispatches into leaf-specific handlers;
// validation has its own recursion, because Not does not negate
// validity.
package query

import "github.com/oef-foundation/oef-node/internal/value"

// LeafConstraint is satisfied by Range, Set, Relation, and Distance —
// the four leaf constraint kinds named in the specification. Every
// leaf dispatches on value.Kind exhaustively; a wrong-tag operand or
// candidate value is a clean "false", never an error, so that
// QueryModel.CheckValue remains usable against arbitrary primitive
// values without a parallel error-handling path.
type LeafConstraint interface {
	// Admissible reports whether this constraint makes sense against
	// an attribute declared with the given type.
	Admissible(attrType value.Kind) bool

	// Check reports whether v satisfies the constraint. Returns false,
	// never an error, when v's kind doesn't match what the constraint
	// expects.
	Check(v value.Value) bool

	// String renders the constraint for diagnostics and log lines.
	// Not a wire format.
	String() string
}
