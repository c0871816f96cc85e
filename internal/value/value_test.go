// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	t.Run("same kind same payload", func(t *testing.T) {
		if !Int(5).Equal(Int(5)) {
			t.Error("expected equal")
		}
	})

	t.Run("different kind never equal", func(t *testing.T) {
		if Int(5).Equal(Double(5)) {
			t.Error("expected not equal across kinds")
		}
	})

	t.Run("location equality is component-wise", func(t *testing.T) {
		a := Loc(Location{Lon: 1, Lat: 2})
		b := Loc(Location{Lon: 1, Lat: 2})
		c := Loc(Location{Lon: 1, Lat: 3})
		if !a.Equal(b) {
			t.Error("expected equal locations")
		}
		if a.Equal(c) {
			t.Error("expected unequal locations")
		}
	})
}

func TestHaversineScenario(t *testing.T) {
	// Scenario 1 from the specification: Cambridge (A, B) vs London (C).
	a := Location{Lon: 0.1225, Lat: 52.20806}
	b := Location{Lon: 0.122, Lat: 52.2}
	c := Location{Lon: -0.12574, Lat: 51.50853}

	if d := Haversine(a, b); d >= 1.0 {
		t.Errorf("distance(A,B) = %v, want < 1.0", d)
	}

	want := 79.6
	if d := Haversine(a, c); math.Abs(d-want) > 0.1 {
		t.Errorf("distance(A,C) = %v, want %v +/- 0.1", d, want)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Location{Lon: 0.1225, Lat: 52.20806}
	b := Location{Lon: -0.12574, Lat: 51.50853}
	if Haversine(a, b) != Haversine(b, a) {
		t.Error("expected haversine to be symmetric")
	}
}

func TestHashStableAndDistinguishesPayload(t *testing.T) {
	if Int(1).Hash() != Int(1).Hash() {
		t.Error("expected stable hash for identical values")
	}
	if Int(1).Hash() == Int(2).Hash() {
		t.Error("expected different hashes for different payloads (not guaranteed, but overwhelmingly likely)")
	}
	if Int(1).Hash() == Double(1).Hash() {
		t.Error("expected different hashes across kinds")
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindInt, "int"},
		{KindDouble, "double"},
		{KindString, "string"},
		{KindBool, "bool"},
		{KindLocation, "location"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}
