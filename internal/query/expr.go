// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"
	"strings"
)

// ConstraintExpr is the closed sum type of the constraint expression
// tree: LeafExpr, AndExpr, OrExpr, NotExpr. Construct instances with
// NewLeaf, NewAnd, NewOr, and NewNot rather than struct literals, so
// that the And/Or arity invariant holds for every tree built through
// this package's API. String renders a short human-readable form for
// operator-facing logs; it is not a wire format.
type ConstraintExpr interface {
	isConstraintExpr()
	String() string
}

// LeafExpr applies a single LeafConstraint to one named attribute.
type LeafExpr struct {
	AttributeName string
	Constraint    LeafConstraint
}

func (LeafExpr) isConstraintExpr() {}

func (e LeafExpr) String() string {
	return fmt.Sprintf("%s %s", e.AttributeName, e.Constraint.String())
}

// AndExpr is a conjunction of two or more children.
type AndExpr struct {
	Children []ConstraintExpr
}

func (AndExpr) isConstraintExpr() {}

func (e AndExpr) String() string {
	return "(" + joinChildren(e.Children, " AND ") + ")"
}

// OrExpr is a disjunction of two or more children.
type OrExpr struct {
	Children []ConstraintExpr
}

func (OrExpr) isConstraintExpr() {}

func (e OrExpr) String() string {
	return "(" + joinChildren(e.Children, " OR ") + ")"
}

// NotExpr negates a single child.
type NotExpr struct {
	Child ConstraintExpr
}

func (NotExpr) isConstraintExpr() {}

func (e NotExpr) String() string {
	return "NOT (" + e.Child.String() + ")"
}

func joinChildren(children []ConstraintExpr, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// NewLeaf wraps a LeafConstraint as a ConstraintExpr over the named
// attribute.
func NewLeaf(attributeName string, c LeafConstraint) ConstraintExpr {
	return LeafExpr{AttributeName: attributeName, Constraint: c}
}

// NewAnd constructs a conjunction. At least two children are required;
// And(cs) with |cs| < 2 is not a meaningful query.
func NewAnd(children ...ConstraintExpr) (ConstraintExpr, error) {
	if len(children) < 2 {
		return nil, fmt.Errorf("query: and requires at least 2 children, got %d", len(children))
	}
	copied := make([]ConstraintExpr, len(children))
	copy(copied, children)
	return AndExpr{Children: copied}, nil
}

// NewOr constructs a disjunction. At least two children are required;
// Or(cs) with |cs| < 2 is not a meaningful query.
func NewOr(children ...ConstraintExpr) (ConstraintExpr, error) {
	if len(children) < 2 {
		return nil, fmt.Errorf("query: or requires at least 2 children, got %d", len(children))
	}
	copied := make([]ConstraintExpr, len(children))
	copy(copied, children)
	return OrExpr{Children: copied}, nil
}

// NewNot constructs a negation of child.
func NewNot(child ConstraintExpr) ConstraintExpr {
	return NotExpr{Child: child}
}
