// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the OEF node's typed data model: attributes,
// data models, and concrete instances over them. Construction is
// validate-then-build — every constructor that can reject its input
// (NewDataModel, NewInstance) returns an error rather than panicking,
// mirroring how the rest of this corpus treats malformed input at an
// API boundary. NewAttribute performs no validation.
package schema

import "github.com/oef-foundation/oef-node/internal/value"

// Attribute describes one named, typed field of a DataModel.
type Attribute struct {
	Name        string
	Type        value.Kind
	Required    bool
	Description string
}

// NewAttribute constructs an Attribute. Description is optional and may
// be the empty string.
func NewAttribute(name string, kind value.Kind, required bool, description string) Attribute {
	return Attribute{
		Name:        name,
		Type:        kind,
		Required:    required,
		Description: description,
	}
}
