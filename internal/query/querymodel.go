// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"

	"github.com/oef-foundation/oef-node/internal/schema"
)

// QueryModel is the top-level unit a search request carries: a
// non-empty conjunction of constraint expressions, plus an optional
// DataModel that every matching Instance must share.
type QueryModel struct {
	Constraints []ConstraintExpr
	Model       *schema.DataModel
}

// NewQueryModel constructs a QueryModel. constraints must be
// non-empty. When model is non-nil, every constraint must be Valid
// against it.
func NewQueryModel(constraints []ConstraintExpr, model *schema.DataModel) (*QueryModel, error) {
	if len(constraints) == 0 {
		return nil, fmt.Errorf("query: query model requires at least one constraint")
	}
	if model != nil {
		for i, c := range constraints {
			if !Valid(c, model) {
				return nil, fmt.Errorf("query: constraint %d (%s) is not valid against data model %q", i, c, model.Name)
			}
		}
	}
	copied := make([]ConstraintExpr, len(constraints))
	copy(copied, constraints)
	return &QueryModel{Constraints: copied, Model: model}, nil
}

// Matches reports whether inst satisfies every constraint in q, and —
// when q.Model is set — shares that data model.
func (q *QueryModel) Matches(inst *schema.Instance) bool {
	if q.Model != nil && !q.Model.Equal(inst.Model) {
		return false
	}
	for _, c := range q.Constraints {
		if !CheckInstance(c, inst) {
			return false
		}
	}
	return true
}
