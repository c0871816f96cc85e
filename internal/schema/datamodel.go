// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// DataModel is a named, ordered sequence of attributes. Attribute names
// must be unique within a DataModel; NewDataModel fails otherwise.
//
// Two DataModels compare equal iff their names are equal — by design,
// intentionally loose (see Equal).
type DataModel struct {
	Name        string
	Attributes  []Attribute
	Description string

	byName map[string]Attribute
}

// NewDataModel constructs a DataModel, rejecting duplicate attribute
// names.
func NewDataModel(name string, attributes []Attribute, description string) (*DataModel, error) {
	byName := make(map[string]Attribute, len(attributes))
	for _, a := range attributes {
		if _, exists := byName[a.Name]; exists {
			return nil, fmt.Errorf("schema: duplicate attribute name %q in data model %q", a.Name, name)
		}
		byName[a.Name] = a
	}

	attrsCopy := make([]Attribute, len(attributes))
	copy(attrsCopy, attributes)

	return &DataModel{
		Name:        name,
		Attributes:  attrsCopy,
		Description: description,
		byName:      byName,
	}, nil
}

// Attribute looks up an attribute by name.
func (m *DataModel) Attribute(name string) (Attribute, bool) {
	a, ok := m.byName[name]
	return a, ok
}

// Equal reports whether two data models have the same name. This is
// intentionally loose — it does not compare attributes — matching the
// specification's stated equality rule for DataModel.
func (m *DataModel) Equal(other *DataModel) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Name == other.Name
}
