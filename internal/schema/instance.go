// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"

	"github.com/oef-foundation/oef-node/internal/value"
)

// Instance is a concrete assignment of values to the attributes of a
// DataModel. NewInstance enforces, at construction:
//
//   - every value's tag matches the declared type of the attribute of
//     that name;
//   - every attribute named in values exists in model;
//   - every required attribute of model is present in values;
//   - len(values) <= len(model.Attributes).
type Instance struct {
	Model  *DataModel
	Values map[string]value.Value
}

// NewInstance validates values against model and constructs an
// Instance, or returns an error describing the first invariant
// violation found.
func NewInstance(model *DataModel, values map[string]value.Value) (*Instance, error) {
	if model == nil {
		return nil, fmt.Errorf("schema: instance requires a non-nil data model")
	}
	if len(values) > len(model.Attributes) {
		return nil, fmt.Errorf("schema: instance has %d values but model %q declares only %d attributes",
			len(values), model.Name, len(model.Attributes))
	}

	copied := make(map[string]value.Value, len(values))
	for name, v := range values {
		attr, ok := model.Attribute(name)
		if !ok {
			return nil, fmt.Errorf("schema: attribute %q is not declared in data model %q", name, model.Name)
		}
		if attr.Type != v.Kind() {
			return nil, fmt.Errorf("schema: attribute %q expects type %s, got %s", name, attr.Type, v.Kind())
		}
		copied[name] = v
	}

	for _, attr := range model.Attributes {
		if attr.Required {
			if _, present := copied[attr.Name]; !present {
				return nil, fmt.Errorf("schema: required attribute %q missing from instance of %q", attr.Name, model.Name)
			}
		}
	}

	return &Instance{Model: model, Values: copied}, nil
}

// Equal implements the specification's intentionally one-sided
// instance equality: the model names must match, and every key
// present in the receiver's Values must have an equal value on the
// other side. Extra keys held only by other are not examined — two
// instances with disjoint extra keys may compare equal. Callers that
// need symmetric equality must normalize or constrain input themselves
// (see DESIGN.md).
func (inst *Instance) Equal(other *Instance) bool {
	if inst == nil || other == nil {
		return inst == other
	}
	if !inst.Model.Equal(other.Model) {
		return false
	}
	for name, v := range inst.Values {
		ov, ok := other.Values[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Hash combines the model name with a commutative fold over
// (name, value) pairs, so that two instances built from the same map
// content (regardless of iteration order) hash equal.
func (inst *Instance) Hash() uint64 {
	h := fnvOffset
	h = fnvMix(h, hashString(inst.Model.Name))

	// XOR is commutative and associative: order of iteration over the
	// map does not affect the final fold.
	var fold uint64
	for name, v := range inst.Values {
		pairHash := hashString(name) ^ v.Hash()
		fold ^= pairHash
	}
	return fnvMix(h, fold)
}

const fnvOffset uint64 = 14695981039346656037
const fnvPrime uint64 = 1099511628211

func fnvMix(h uint64, x uint64) uint64 {
	h ^= x
	h *= fnvPrime
	return h
}

func hashString(s string) uint64 {
	h := fnvOffset
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}
