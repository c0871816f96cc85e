// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"

	"github.com/oef-foundation/oef-node/internal/value"
)

// Range constrains a value to lie within a closed interval [lo, hi]
// (Int, Double, String — lexicographic) or within an axis-aligned
// latitude/longitude box (Location). The two Location corners are
// normalized at construction time so callers never need to pass them
// pre-sorted.
type Range struct {
	kind value.Kind

	loInt, hiInt       int64
	loDouble, hiDouble float64
	loString, hiString string

	minLon, maxLon, minLat, maxLat float64
}

// NewIntRange constructs a closed integer range. lo and hi may be
// given in either order.
func NewIntRange(lo, hi int64) Range {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{kind: value.KindInt, loInt: lo, hiInt: hi}
}

// NewDoubleRange constructs a closed floating-point range. lo and hi
// may be given in either order.
func NewDoubleRange(lo, hi float64) Range {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{kind: value.KindDouble, loDouble: lo, hiDouble: hi}
}

// NewStringRange constructs a closed lexicographic range over strings.
// lo and hi may be given in either order.
func NewStringRange(lo, hi string) Range {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{kind: value.KindString, loString: lo, hiString: hi}
}

// NewLocationRange constructs an axis-aligned box from two corners,
// normalizing per axis so that either diagonal may be supplied.
func NewLocationRange(a, b value.Location) Range {
	minLon, maxLon := a.Lon, b.Lon
	if minLon > maxLon {
		minLon, maxLon = maxLon, minLon
	}
	minLat, maxLat := a.Lat, b.Lat
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	return Range{kind: value.KindLocation, minLon: minLon, maxLon: maxLon, minLat: minLat, maxLat: maxLat}
}

// Admissible reports whether this range's kind matches attrType.
func (r Range) Admissible(attrType value.Kind) bool {
	return attrType == r.kind
}

// ValueKind reports which kind this range was constructed over.
func (r Range) ValueKind() value.Kind { return r.kind }

// IntBounds returns the range's int bounds. Only meaningful when
// ValueKind() == value.KindInt.
func (r Range) IntBounds() (lo, hi int64) { return r.loInt, r.hiInt }

// DoubleBounds returns the range's double bounds. Only meaningful when
// ValueKind() == value.KindDouble.
func (r Range) DoubleBounds() (lo, hi float64) { return r.loDouble, r.hiDouble }

// StringBounds returns the range's string bounds. Only meaningful when
// ValueKind() == value.KindString.
func (r Range) StringBounds() (lo, hi string) { return r.loString, r.hiString }

// LocationBox returns the range's normalized box. Only meaningful when
// ValueKind() == value.KindLocation.
func (r Range) LocationBox() (minLon, maxLon, minLat, maxLat float64) {
	return r.minLon, r.maxLon, r.minLat, r.maxLat
}

// Check reports whether v falls within the range.
func (r Range) Check(v value.Value) bool {
	if v.Kind() != r.kind {
		return false
	}
	switch r.kind {
	case value.KindInt:
		vi, _ := v.AsInt()
		return vi >= r.loInt && vi <= r.hiInt
	case value.KindDouble:
		vd, _ := v.AsDouble()
		return vd >= r.loDouble && vd <= r.hiDouble
	case value.KindString:
		vs, _ := v.AsString()
		return vs >= r.loString && vs <= r.hiString
	case value.KindLocation:
		vl, _ := v.AsLocation()
		return vl.Lon >= r.minLon && vl.Lon <= r.maxLon && vl.Lat >= r.minLat && vl.Lat <= r.maxLat
	default:
		return false
	}
}

func (r Range) String() string {
	switch r.kind {
	case value.KindInt:
		return fmt.Sprintf("range(int, %d, %d)", r.loInt, r.hiInt)
	case value.KindDouble:
		return fmt.Sprintf("range(double, %g, %g)", r.loDouble, r.hiDouble)
	case value.KindString:
		return fmt.Sprintf("range(string, %q, %q)", r.loString, r.hiString)
	case value.KindLocation:
		return fmt.Sprintf("range(location, [%g,%g]x[%g,%g])", r.minLon, r.maxLon, r.minLat, r.maxLat)
	default:
		return "range(?)"
	}
}
