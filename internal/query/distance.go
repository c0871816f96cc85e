// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"

	"github.com/oef-foundation/oef-node/internal/value"
)

// Distance constrains a Location value to lie within radiusKM of
// center, using the same great-circle formula as value.Haversine.
type Distance struct {
	center   value.Location
	radiusKM float64
}

// NewDistance constructs a Distance constraint. A negative radius
// admits nothing; it is not rejected, since a caller composing
// constraints programmatically should never have that silently turn
// into a different constraint.
func NewDistance(center value.Location, radiusKM float64) Distance {
	return Distance{center: center, radiusKM: radiusKM}
}

// Admissible reports whether attrType is Location.
func (d Distance) Admissible(attrType value.Kind) bool {
	return attrType == value.KindLocation
}

// Center reports the constraint's reference point.
func (d Distance) Center() value.Location { return d.center }

// RadiusKM reports the constraint's admissible radius in kilometers.
func (d Distance) RadiusKM() float64 { return d.radiusKM }

// Check reports whether v is a Location within radiusKM of center.
func (d Distance) Check(v value.Value) bool {
	loc, ok := v.AsLocation()
	if !ok {
		return false
	}
	return value.Haversine(d.center, loc) <= d.radiusKM
}

func (d Distance) String() string {
	return fmt.Sprintf("distance((%g, %g), %gkm)", d.center.Lon, d.center.Lat, d.radiusKM)
}
