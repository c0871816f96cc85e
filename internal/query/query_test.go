// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"strings"
	"testing"

	"github.com/oef-foundation/oef-node/internal/schema"
	"github.com/oef-foundation/oef-node/internal/value"
)

func weatherModel(t *testing.T) *schema.DataModel {
	t.Helper()
	m, err := schema.NewDataModel("weather_data", []schema.Attribute{
		schema.NewAttribute("wind_speed", value.KindBool, true, ""),
		schema.NewAttribute("temperature", value.KindBool, true, ""),
		schema.NewAttribute("air_pressure", value.KindBool, true, ""),
		schema.NewAttribute("humidity", value.KindBool, true, ""),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

// TestRangeOverString checks a lexicographic string range against an
// instance's string attribute: a value inside the bounds matches,
// reversed bounds are normalized, and a value past the upper bound
// does not match.
func TestRangeOverString(t *testing.T) {
	m, err := schema.NewDataModel("city", []schema.Attribute{
		schema.NewAttribute("name", value.KindString, true, ""),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst, err := schema.NewInstance(m, map[string]value.Value{"name": value.Str("Cambridge")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leaf := NewLeaf("name", NewStringRange("Berlin", "Oxford"))
	if !CheckInstance(leaf, inst) {
		t.Error("expected Cambridge to fall within [Berlin, Oxford]")
	}

	leaf2 := NewLeaf("name", NewStringRange("Oxford", "Berlin")) // reversed corners
	if !CheckInstance(leaf2, inst) {
		t.Error("expected range construction to tolerate reversed bounds")
	}

	outside := NewLeaf("name", NewStringRange("Aardvark", "Berlin"))
	if CheckInstance(outside, inst) {
		t.Error("expected Cambridge to fall outside [Aardvark, Berlin]")
	}
}

func TestCompoundAndNot(t *testing.T) {
	m := weatherModel(t)
	inst, err := schema.NewInstance(m, map[string]value.Value{
		"wind_speed":   value.Bool(true),
		"temperature":  value.Bool(true),
		"air_pressure": value.Bool(true),
		"humidity":     value.Bool(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	windTrue, _ := NewRelation(Eq, value.Bool(true))
	humidityTrue, _ := NewRelation(Eq, value.Bool(true))

	expr, err := NewAnd(
		NewLeaf("wind_speed", windTrue),
		NewNot(NewLeaf("humidity", humidityTrue)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckInstance(expr, inst) {
		t.Error("expected wind_speed == true AND NOT(humidity == true) to match")
	}
}

func TestSetMembership(t *testing.T) {
	m, err := schema.NewDataModel("currency", []schema.Attribute{
		schema.NewAttribute("code", value.KindString, true, ""),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst, err := schema.NewInstance(m, map[string]value.Value{"code": value.Str("GBP")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := NewSet(In, value.KindString, []value.Value{value.Str("GBP"), value.Str("EUR"), value.Str("USD")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckInstance(NewLeaf("code", set), inst) {
		t.Error("expected GBP to be a member of {GBP, EUR, USD}")
	}

	notSet, err := NewSet(NotIn, value.KindString, []value.Value{value.Str("JPY")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckInstance(NewLeaf("code", notSet), inst) {
		t.Error("expected GBP to satisfy not_in {JPY}")
	}
}

func TestAndOrBooleanLaws(t *testing.T) {
	trueRelation, _ := NewRelation(Eq, value.Int(1))
	falseRelation, _ := NewRelation(Eq, value.Int(2))

	v := value.Int(1)

	and, err := NewAnd(NewLeaf("x", trueRelation), NewLeaf("x", trueRelation))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckValue(and, v) {
		t.Error("expected true AND true to be true")
	}

	andFalse, err := NewAnd(NewLeaf("x", trueRelation), NewLeaf("x", falseRelation))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if CheckValue(andFalse, v) {
		t.Error("expected true AND false to be false")
	}

	or, err := NewOr(NewLeaf("x", falseRelation), NewLeaf("x", trueRelation))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckValue(or, v) {
		t.Error("expected false OR true to be true")
	}

	not := NewNot(NewLeaf("x", falseRelation))
	if !CheckValue(not, v) {
		t.Error("expected NOT false to be true")
	}
}

func TestAndOrRejectFewerThanTwoChildren(t *testing.T) {
	leaf := NewLeaf("x", mustRelation(t, Eq, value.Int(1)))

	if _, err := NewAnd(leaf); err == nil {
		t.Error("expected NewAnd with 1 child to fail")
	}
	if _, err := NewAnd(); err == nil {
		t.Error("expected NewAnd with 0 children to fail")
	}
	if _, err := NewOr(leaf); err == nil {
		t.Error("expected NewOr with 1 child to fail")
	}
}

func TestValidRejectsUnknownAttributeAndWrongType(t *testing.T) {
	m := weatherModel(t)

	unknown := NewLeaf("nonexistent", mustRelation(t, Eq, value.Bool(true)))
	if Valid(unknown, m) {
		t.Error("expected leaf over unknown attribute to be invalid")
	}

	wrongType := NewLeaf("wind_speed", NewIntRange(0, 10))
	if Valid(wrongType, m) {
		t.Error("expected int range over a bool attribute to be invalid")
	}

	ok := NewLeaf("wind_speed", mustRelation(t, Eq, value.Bool(true)))
	if !Valid(ok, m) {
		t.Error("expected relation over matching bool attribute to be valid")
	}
}

// TestValidNotDoesNotNegate checks that wrapping a leaf in Not leaves
// its validity against a data model unchanged: Not(c) is valid iff c
// is valid, unlike Not's evaluation semantics (check(Not(e), v) =
// !check(e, v)).
func TestValidNotDoesNotNegate(t *testing.T) {
	m := weatherModel(t)

	validLeaf := NewLeaf("wind_speed", mustRelation(t, Eq, value.Bool(true)))
	if !Valid(NewNot(validLeaf), m) {
		t.Error("expected Not wrapping a valid leaf to remain valid")
	}

	invalidLeaf := NewLeaf("nonexistent", mustRelation(t, Eq, value.Bool(true)))
	if Valid(NewNot(invalidLeaf), m) {
		t.Error("expected Not wrapping an invalid leaf to remain invalid")
	}
}

func TestDistanceConstraint(t *testing.T) {
	m, err := schema.NewDataModel("place", []schema.Attribute{
		schema.NewAttribute("loc", value.KindLocation, true, ""),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cambridge := value.Location{Lon: 0.1225, Lat: 52.20806}
	london := value.Location{Lon: -0.12574, Lat: 51.50853}

	inst, err := schema.NewInstance(m, map[string]value.Value{"loc": value.Loc(cambridge)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near := NewLeaf("loc", NewDistance(cambridge, 1.0))
	if !CheckInstance(near, inst) {
		t.Error("expected a point to be within 1km of itself")
	}

	far := NewLeaf("loc", NewDistance(london, 10.0))
	if CheckInstance(far, inst) {
		t.Error("expected Cambridge to be more than 10km from London")
	}
}

func TestQueryModelRejectsInvalidConstraintAgainstModel(t *testing.T) {
	m := weatherModel(t)
	bad := NewLeaf("wind_speed", NewIntRange(0, 1))
	if _, err := NewQueryModel([]ConstraintExpr{bad}, m); err == nil {
		t.Error("expected query model construction to reject a constraint invalid against its model")
	}
}

func TestQueryModelMatchesRequiresSameDataModel(t *testing.T) {
	m := weatherModel(t)
	other, err := schema.NewDataModel("other", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	windTrue := NewLeaf("wind_speed", mustRelation(t, Eq, value.Bool(true)))
	qm, err := NewQueryModel([]ConstraintExpr{windTrue}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matchingInst, err := schema.NewInstance(m, map[string]value.Value{
		"wind_speed": value.Bool(true), "temperature": value.Bool(true),
		"air_pressure": value.Bool(true), "humidity": value.Bool(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !qm.Matches(matchingInst) {
		t.Error("expected matching instance to satisfy query model")
	}

	differentModelInst, err := schema.NewInstance(other, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qm.Matches(differentModelInst) {
		t.Error("expected instance of a different data model to fail to match")
	}
}

func TestConstraintExprStringRendersTree(t *testing.T) {
	windTrue := NewLeaf("wind_speed", mustRelation(t, Eq, value.Bool(true)))
	humidityFalse := NewLeaf("humidity", mustRelation(t, Eq, value.Bool(false)))

	notExpr := NewNot(humidityFalse)
	orExpr, err := NewOr(humidityFalse, notExpr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	andExpr, err := NewAnd(windTrue, orExpr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"wind_speed", "humidity", "AND", "OR", "NOT"} {
		if !strings.Contains(andExpr.String(), want) {
			t.Errorf("expected rendered expression %q to contain %q", andExpr.String(), want)
		}
	}
}

func mustRelation(t *testing.T, op RelationOp, operand value.Value) Relation {
	t.Helper()
	r, err := NewRelation(op, operand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}
