// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"github.com/oef-foundation/oef-node/internal/value"
)

func personModel(t *testing.T) *DataModel {
	t.Helper()
	m, err := NewDataModel("person", []Attribute{
		NewAttribute("firstName", value.KindString, true, ""),
		NewAttribute("lastName", value.KindString, true, ""),
		NewAttribute("age", value.KindInt, false, ""),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestNewDataModelRejectsDuplicateAttributeNames(t *testing.T) {
	_, err := NewDataModel("dup", []Attribute{
		NewAttribute("x", value.KindInt, false, ""),
		NewAttribute("x", value.KindString, false, ""),
	}, "")
	if err == nil {
		t.Fatal("expected error for duplicate attribute name")
	}
}

func TestDataModelEqualityIsNameOnly(t *testing.T) {
	a, _ := NewDataModel("m", []Attribute{NewAttribute("x", value.KindInt, false, "")}, "")
	b, _ := NewDataModel("m", nil, "")
	if !a.Equal(b) {
		t.Error("expected data models with the same name to compare equal regardless of attributes")
	}
}

func TestNewInstanceEnforcesInvariants(t *testing.T) {
	model := personModel(t)

	t.Run("missing required attribute fails", func(t *testing.T) {
		_, err := NewInstance(model, map[string]value.Value{
			"firstName": value.Str("Alan"),
		})
		if err == nil {
			t.Fatal("expected error for missing required attribute lastName")
		}
	})

	t.Run("unknown attribute fails", func(t *testing.T) {
		_, err := NewInstance(model, map[string]value.Value{
			"firstName": value.Str("Alan"),
			"lastName":  value.Str("Turing"),
			"unknown":   value.Int(1),
		})
		if err == nil {
			t.Fatal("expected error for attribute not declared in model")
		}
	})

	t.Run("wrong type fails", func(t *testing.T) {
		_, err := NewInstance(model, map[string]value.Value{
			"firstName": value.Int(1),
			"lastName":  value.Str("Turing"),
		})
		if err == nil {
			t.Fatal("expected error for type mismatch")
		}
	})

	t.Run("valid instance succeeds", func(t *testing.T) {
		inst, err := NewInstance(model, map[string]value.Value{
			"firstName": value.Str("Alan"),
			"lastName":  value.Str("Turing"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(inst.Values) != 2 {
			t.Fatalf("expected 2 values, got %d", len(inst.Values))
		}
	})
}

func TestInstanceEqualityIsOneSided(t *testing.T) {
	model := personModel(t)
	base, _ := NewInstance(model, map[string]value.Value{
		"firstName": value.Str("Alan"),
		"lastName":  value.Str("Turing"),
	})
	withExtra, _ := NewInstance(model, map[string]value.Value{
		"firstName": value.Str("Alan"),
		"lastName":  value.Str("Turing"),
		"age":       value.Int(41),
	})

	if !base.Equal(withExtra) {
		t.Error("expected base.Equal(withExtra): base's keys are all satisfied by withExtra")
	}
	if withExtra.Equal(base) {
		t.Error("expected !withExtra.Equal(base): withExtra's extra key 'age' is absent from base")
	}
}

func TestInstanceHashIndependentOfMapOrder(t *testing.T) {
	model := personModel(t)
	a, _ := NewInstance(model, map[string]value.Value{
		"firstName": value.Str("Alan"),
		"lastName":  value.Str("Turing"),
	})
	b, _ := NewInstance(model, map[string]value.Value{
		"lastName":  value.Str("Turing"),
		"firstName": value.Str("Alan"),
	})
	if a.Hash() != b.Hash() {
		t.Error("expected instances built from the same content to hash equal regardless of insertion order")
	}
}
