// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"

	"github.com/oef-foundation/oef-node/internal/query"
	"github.com/oef-foundation/oef-node/internal/schema"
	"github.com/oef-foundation/oef-node/internal/value"
)

// This file converts between the domain types in internal/value,
// internal/schema, and internal/query and their wire counterparts
// above. Wire types never leak past the session package's boundary;
// everything else in the node operates on the domain types.

func kindToString(k value.Kind) string {
	return k.String()
}

func kindFromString(s string) (value.Kind, error) {
	switch s {
	case "int":
		return value.KindInt, nil
	case "double":
		return value.KindDouble, nil
	case "string":
		return value.KindString, nil
	case "bool":
		return value.KindBool, nil
	case "location":
		return value.KindLocation, nil
	default:
		return 0, fmt.Errorf("wire: unknown value kind %q", s)
	}
}

// ValueToWire converts a domain Value to its wire form.
func ValueToWire(v value.Value) ValueWire {
	w := ValueWire{Kind: kindToString(v.Kind())}
	switch v.Kind() {
	case value.KindInt:
		i, _ := v.AsInt()
		w.Int = &i
	case value.KindDouble:
		d, _ := v.AsDouble()
		w.Double = &d
	case value.KindString:
		s, _ := v.AsString()
		w.String = &s
	case value.KindBool:
		b, _ := v.AsBool()
		w.Bool = &b
	case value.KindLocation:
		loc, _ := v.AsLocation()
		w.Location = &LocationWire{Lon: loc.Lon, Lat: loc.Lat}
	}
	return w
}

// ValueFromWire converts a wire Value back to its domain form.
func ValueFromWire(w ValueWire) (value.Value, error) {
	switch w.Kind {
	case "int":
		if w.Int == nil {
			return value.Value{}, fmt.Errorf("wire: value kind %q missing its payload field", w.Kind)
		}
		return value.Int(*w.Int), nil
	case "double":
		if w.Double == nil {
			return value.Value{}, fmt.Errorf("wire: value kind %q missing its payload field", w.Kind)
		}
		return value.Double(*w.Double), nil
	case "string":
		if w.String == nil {
			return value.Value{}, fmt.Errorf("wire: value kind %q missing its payload field", w.Kind)
		}
		return value.Str(*w.String), nil
	case "bool":
		if w.Bool == nil {
			return value.Value{}, fmt.Errorf("wire: value kind %q missing its payload field", w.Kind)
		}
		return value.Bool(*w.Bool), nil
	case "location":
		if w.Location == nil {
			return value.Value{}, fmt.Errorf("wire: value kind %q missing its payload field", w.Kind)
		}
		return value.Loc(value.Location{Lon: w.Location.Lon, Lat: w.Location.Lat}), nil
	default:
		return value.Value{}, fmt.Errorf("wire: unknown value kind %q", w.Kind)
	}
}

// AttributeToWire converts a domain Attribute to its wire form.
func AttributeToWire(a schema.Attribute) AttributeWire {
	return AttributeWire{
		Name:        a.Name,
		Type:        kindToString(a.Type),
		Required:    a.Required,
		Description: a.Description,
	}
}

// AttributeFromWire converts a wire Attribute back to its domain form.
func AttributeFromWire(w AttributeWire) (schema.Attribute, error) {
	kind, err := kindFromString(w.Type)
	if err != nil {
		return schema.Attribute{}, err
	}
	return schema.NewAttribute(w.Name, kind, w.Required, w.Description), nil
}

// DataModelToWire converts a domain DataModel to its wire form.
func DataModelToWire(m *schema.DataModel) DataModelWire {
	w := DataModelWire{Name: m.Name, Description: m.Description}
	if len(m.Attributes) > 0 {
		w.Attributes = make([]AttributeWire, len(m.Attributes))
		for i, a := range m.Attributes {
			w.Attributes[i] = AttributeToWire(a)
		}
	}
	return w
}

// DataModelFromWire converts a wire DataModel back to its domain form.
func DataModelFromWire(w DataModelWire) (*schema.DataModel, error) {
	attrs := make([]schema.Attribute, len(w.Attributes))
	for i, aw := range w.Attributes {
		a, err := AttributeFromWire(aw)
		if err != nil {
			return nil, err
		}
		attrs[i] = a
	}
	return schema.NewDataModel(w.Name, attrs, w.Description)
}

// InstanceToWire converts a domain Instance to its wire form.
func InstanceToWire(inst *schema.Instance) InstanceWire {
	w := InstanceWire{Model: DataModelToWire(inst.Model)}
	if len(inst.Values) > 0 {
		w.Values = make(map[string]ValueWire, len(inst.Values))
		for name, v := range inst.Values {
			w.Values[name] = ValueToWire(v)
		}
	}
	return w
}

// InstanceFromWire converts a wire Instance back to its domain form.
func InstanceFromWire(w InstanceWire) (*schema.Instance, error) {
	model, err := DataModelFromWire(w.Model)
	if err != nil {
		return nil, fmt.Errorf("wire: decoding instance's data model: %w", err)
	}
	values := make(map[string]value.Value, len(w.Values))
	for name, vw := range w.Values {
		v, err := ValueFromWire(vw)
		if err != nil {
			return nil, fmt.Errorf("wire: decoding instance value %q: %w", name, err)
		}
		values[name] = v
	}
	return schema.NewInstance(model, values)
}

// LeafConstraintToWire converts a domain LeafConstraint to its wire
// form. c must be one of Range, Set, Relation, Distance.
func LeafConstraintToWire(c query.LeafConstraint) (LeafConstraintWire, error) {
	switch leaf := c.(type) {
	case query.Range:
		return rangeToWire(leaf), nil
	case query.Set:
		return setToWire(leaf), nil
	case query.Relation:
		return relationToWire(leaf), nil
	case query.Distance:
		return distanceToWire(leaf), nil
	default:
		return LeafConstraintWire{}, fmt.Errorf("wire: unsupported leaf constraint type %T", c)
	}
}

// LeafConstraintFromWire converts a wire LeafConstraintWire back to
// its domain form.
func LeafConstraintFromWire(w LeafConstraintWire) (query.LeafConstraint, error) {
	switch {
	case w.Range != nil:
		return rangeFromWire(*w.Range)
	case w.Set != nil:
		return setFromWire(*w.Set)
	case w.Relation != nil:
		return relationFromWire(*w.Relation)
	case w.Distance != nil:
		return distanceFromWire(*w.Distance), nil
	default:
		return nil, fmt.Errorf("wire: leaf constraint has no populated arm")
	}
}

func rangeToWire(r query.Range) LeafConstraintWire {
	rw := RangeWire{}
	switch r.ValueKind() {
	case value.KindInt:
		lo, hi := r.IntBounds()
		loW, hiW := ValueToWire(value.Int(lo)), ValueToWire(value.Int(hi))
		rw.Lo, rw.Hi = &loW, &hiW
	case value.KindDouble:
		lo, hi := r.DoubleBounds()
		loW, hiW := ValueToWire(value.Double(lo)), ValueToWire(value.Double(hi))
		rw.Lo, rw.Hi = &loW, &hiW
	case value.KindString:
		lo, hi := r.StringBounds()
		loW, hiW := ValueToWire(value.Str(lo)), ValueToWire(value.Str(hi))
		rw.Lo, rw.Hi = &loW, &hiW
	case value.KindLocation:
		minLon, maxLon, minLat, maxLat := r.LocationBox()
		rw.Box = &LocationBoxWire{MinLon: minLon, MaxLon: maxLon, MinLat: minLat, MaxLat: maxLat}
	}
	return LeafConstraintWire{Range: &rw}
}

func rangeFromWire(w RangeWire) (query.Range, error) {
	switch {
	case w.Box != nil:
		a := value.Location{Lon: w.Box.MinLon, Lat: w.Box.MinLat}
		b := value.Location{Lon: w.Box.MaxLon, Lat: w.Box.MaxLat}
		return query.NewLocationRange(a, b), nil
	case w.Lo != nil && w.Hi != nil:
		lo, err := ValueFromWire(*w.Lo)
		if err != nil {
			return query.Range{}, err
		}
		hi, err := ValueFromWire(*w.Hi)
		if err != nil {
			return query.Range{}, err
		}
		switch lo.Kind() {
		case value.KindInt:
			loi, _ := lo.AsInt()
			hii, _ := hi.AsInt()
			return query.NewIntRange(loi, hii), nil
		case value.KindDouble:
			lod, _ := lo.AsDouble()
			hid, _ := hi.AsDouble()
			return query.NewDoubleRange(lod, hid), nil
		case value.KindString:
			los, _ := lo.AsString()
			his, _ := hi.AsString()
			return query.NewStringRange(los, his), nil
		default:
			return query.Range{}, fmt.Errorf("wire: range bounds have unsupported kind %s", lo.Kind())
		}
	default:
		return query.Range{}, fmt.Errorf("wire: range constraint has neither lo/hi nor box populated")
	}
}

func setOpToWire(op query.SetOp) string {
	if op == query.NotIn {
		return "not_in"
	}
	return "in"
}

func setOpFromWire(s string) (query.SetOp, error) {
	switch s {
	case "in":
		return query.In, nil
	case "not_in":
		return query.NotIn, nil
	default:
		return 0, fmt.Errorf("wire: unknown set operator %q", s)
	}
}

func setToWire(s query.Set) LeafConstraintWire {
	values := s.Values()
	vws := make([]ValueWire, len(values))
	for i, v := range values {
		vws[i] = ValueToWire(v)
	}
	return LeafConstraintWire{Set: &SetWire{
		Op:     setOpToWire(s.Op()),
		Kind:   kindToString(s.ValueKind()),
		Values: vws,
	}}
}

func setFromWire(w SetWire) (query.Set, error) {
	op, err := setOpFromWire(w.Op)
	if err != nil {
		return query.Set{}, err
	}
	kind, err := kindFromString(w.Kind)
	if err != nil {
		return query.Set{}, err
	}
	values := make([]value.Value, len(w.Values))
	for i, vw := range w.Values {
		v, err := ValueFromWire(vw)
		if err != nil {
			return query.Set{}, err
		}
		values[i] = v
	}
	return query.NewSet(op, kind, values)
}

func relationOpToWire(op query.RelationOp) string {
	switch op {
	case query.Eq:
		return "eq"
	case query.NotEq:
		return "not_eq"
	case query.Lt:
		return "lt"
	case query.LtEq:
		return "lt_eq"
	case query.Gt:
		return "gt"
	case query.GtEq:
		return "gt_eq"
	default:
		return "eq"
	}
}

func relationOpFromWire(s string) (query.RelationOp, error) {
	switch s {
	case "eq":
		return query.Eq, nil
	case "not_eq":
		return query.NotEq, nil
	case "lt":
		return query.Lt, nil
	case "lt_eq":
		return query.LtEq, nil
	case "gt":
		return query.Gt, nil
	case "gt_eq":
		return query.GtEq, nil
	default:
		return 0, fmt.Errorf("wire: unknown relation operator %q", s)
	}
}

func relationToWire(r query.Relation) LeafConstraintWire {
	return LeafConstraintWire{Relation: &RelationWire{
		Op:      relationOpToWire(r.Op()),
		Operand: ValueToWire(r.Operand()),
	}}
}

func relationFromWire(w RelationWire) (query.Relation, error) {
	op, err := relationOpFromWire(w.Op)
	if err != nil {
		return query.Relation{}, err
	}
	operand, err := ValueFromWire(w.Operand)
	if err != nil {
		return query.Relation{}, err
	}
	return query.NewRelation(op, operand)
}

func distanceToWire(d query.Distance) LeafConstraintWire {
	center := d.Center()
	return LeafConstraintWire{Distance: &DistanceWire{
		Center:   LocationWire{Lon: center.Lon, Lat: center.Lat},
		RadiusKM: d.RadiusKM(),
	}}
}

func distanceFromWire(w DistanceWire) query.Distance {
	center := value.Location{Lon: w.Center.Lon, Lat: w.Center.Lat}
	return query.NewDistance(center, w.RadiusKM)
}

// ConstraintExprToWire converts a domain ConstraintExpr to its wire
// form.
func ConstraintExprToWire(e query.ConstraintExpr) (ConstraintExprWire, error) {
	switch t := e.(type) {
	case query.LeafExpr:
		cw, err := LeafConstraintToWire(t.Constraint)
		if err != nil {
			return ConstraintExprWire{}, err
		}
		return ConstraintExprWire{Leaf: &LeafExprWire{AttributeName: t.AttributeName, Constraint: cw}}, nil
	case query.AndExpr:
		children, err := constraintExprSliceToWire(t.Children)
		if err != nil {
			return ConstraintExprWire{}, err
		}
		return ConstraintExprWire{And: children}, nil
	case query.OrExpr:
		children, err := constraintExprSliceToWire(t.Children)
		if err != nil {
			return ConstraintExprWire{}, err
		}
		return ConstraintExprWire{Or: children}, nil
	case query.NotExpr:
		child, err := ConstraintExprToWire(t.Child)
		if err != nil {
			return ConstraintExprWire{}, err
		}
		return ConstraintExprWire{Not: &child}, nil
	default:
		return ConstraintExprWire{}, fmt.Errorf("wire: unsupported constraint expression type %T", e)
	}
}

func constraintExprSliceToWire(children []query.ConstraintExpr) ([]ConstraintExprWire, error) {
	out := make([]ConstraintExprWire, len(children))
	for i, c := range children {
		cw, err := ConstraintExprToWire(c)
		if err != nil {
			return nil, err
		}
		out[i] = cw
	}
	return out, nil
}

// ConstraintExprFromWire converts a wire ConstraintExprWire back to
// its domain form.
func ConstraintExprFromWire(w ConstraintExprWire) (query.ConstraintExpr, error) {
	switch {
	case w.Leaf != nil:
		c, err := LeafConstraintFromWire(w.Leaf.Constraint)
		if err != nil {
			return nil, err
		}
		return query.NewLeaf(w.Leaf.AttributeName, c), nil
	case w.And != nil:
		children, err := constraintExprSliceFromWire(w.And)
		if err != nil {
			return nil, err
		}
		return query.NewAnd(children...)
	case w.Or != nil:
		children, err := constraintExprSliceFromWire(w.Or)
		if err != nil {
			return nil, err
		}
		return query.NewOr(children...)
	case w.Not != nil:
		child, err := ConstraintExprFromWire(*w.Not)
		if err != nil {
			return nil, err
		}
		return query.NewNot(child), nil
	default:
		return nil, fmt.Errorf("wire: constraint expression has no populated arm")
	}
}

func constraintExprSliceFromWire(ws []ConstraintExprWire) ([]query.ConstraintExpr, error) {
	out := make([]query.ConstraintExpr, len(ws))
	for i, w := range ws {
		c, err := ConstraintExprFromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// QueryModelToWire converts a domain QueryModel to its wire form.
func QueryModelToWire(q *query.QueryModel) (QueryModelWire, error) {
	constraints, err := constraintExprSliceToWire(q.Constraints)
	if err != nil {
		return QueryModelWire{}, err
	}
	w := QueryModelWire{Constraints: constraints}
	if q.Model != nil {
		dmw := DataModelToWire(q.Model)
		w.Model = &dmw
	}
	return w, nil
}

// QueryModelFromWire converts a wire QueryModelWire back to its domain
// form.
func QueryModelFromWire(w QueryModelWire) (*query.QueryModel, error) {
	constraints, err := constraintExprSliceFromWire(w.Constraints)
	if err != nil {
		return nil, err
	}
	var model *schema.DataModel
	if w.Model != nil {
		model, err = DataModelFromWire(*w.Model)
		if err != nil {
			return nil, err
		}
	}
	return query.NewQueryModel(constraints, model)
}
