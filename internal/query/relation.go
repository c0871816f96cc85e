// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"

	"github.com/oef-foundation/oef-node/internal/value"
)

// RelationOp names a binary comparison operator.
type RelationOp int

const (
	Eq RelationOp = iota
	NotEq
	Lt
	LtEq
	Gt
	GtEq
)

func (op RelationOp) String() string {
	switch op {
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Gt:
		return ">"
	case GtEq:
		return ">="
	default:
		return "?"
	}
}

// Relation compares a candidate value against a fixed operand. Only Eq
// and NotEq are meaningful for Bool and Location operands — there is
// no natural ordering over either — so NewRelation rejects an ordering
// operator paired with one of those kinds.
type Relation struct {
	op      RelationOp
	operand value.Value
}

// NewRelation constructs a Relation constraint.
func NewRelation(op RelationOp, operand value.Value) (Relation, error) {
	if op != Eq && op != NotEq {
		switch operand.Kind() {
		case value.KindBool, value.KindLocation:
			return Relation{}, fmt.Errorf("query: ordering operator %s is not defined for %s operands", op, operand.Kind())
		}
	}
	return Relation{op: op, operand: operand}, nil
}

// Admissible reports whether this relation's operand kind matches
// attrType.
func (r Relation) Admissible(attrType value.Kind) bool {
	return attrType == r.operand.Kind()
}

// Op reports the comparison operator.
func (r Relation) Op() RelationOp { return r.op }

// Operand reports the fixed value being compared against.
func (r Relation) Operand() value.Value { return r.operand }

// Check reports whether v satisfies the relation against the fixed
// operand.
func (r Relation) Check(v value.Value) bool {
	if v.Kind() != r.operand.Kind() {
		return false
	}
	switch r.op {
	case Eq:
		return v.Equal(r.operand)
	case NotEq:
		return !v.Equal(r.operand)
	}

	switch v.Kind() {
	case value.KindInt:
		vi, _ := v.AsInt()
		oi, _ := r.operand.AsInt()
		return compareOrdered(r.op, vi, oi)
	case value.KindDouble:
		vd, _ := v.AsDouble()
		od, _ := r.operand.AsDouble()
		return compareOrdered(r.op, vd, od)
	case value.KindString:
		vs, _ := v.AsString()
		os, _ := r.operand.AsString()
		return compareOrdered(r.op, vs, os)
	default:
		// Bool and Location never reach here for an ordering operator:
		// NewRelation refuses to construct that combination.
		return false
	}
}

func compareOrdered[T int64 | float64 | string](op RelationOp, a, b T) bool {
	switch op {
	case Lt:
		return a < b
	case LtEq:
		return a <= b
	case Gt:
		return a > b
	case GtEq:
		return a >= b
	default:
		return false
	}
}

func (r Relation) String() string {
	return fmt.Sprintf("relation(%s %s)", r.op, r.operand)
}
