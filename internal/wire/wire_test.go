// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"testing"

	"github.com/oef-foundation/oef-node/internal/query"
	"github.com/oef-foundation/oef-node/internal/schema"
	"github.com/oef-foundation/oef-node/internal/value"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	original := IDMessage{PublicKey: "agent-key-1"}

	if err := WriteFrame(&buf, original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded IDMessage
	if err := ReadFrame(&buf, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != original {
		t.Errorf("expected %+v, got %+v", original, decoded)
	}
}

func TestFrameRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	var lenBuf [4]byte
	lenBuf[0] = 0xFF
	lenBuf[1] = 0xFF
	lenBuf[2] = 0xFF
	lenBuf[3] = 0xFF
	buf.Write(lenBuf[:])

	var v IDMessage
	if err := ReadFrame(&buf, &v); err == nil {
		t.Error("expected oversized frame length to be rejected")
	}
}

func TestFrameLimitConfigurable(t *testing.T) {
	var buf bytes.Buffer
	original := IDMessage{PublicKey: "agent-key-1-with-a-fairly-long-public-key-value"}

	if err := WriteFrame(&buf, original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A caller-supplied limit smaller than the encoded payload is
	// rejected even though it fits under DefaultMaxFrameSize.
	var decoded IDMessage
	if err := ReadFrameLimit(&buf, &decoded, 4); err == nil {
		t.Error("expected a small configured limit to reject the frame")
	}
}

func TestValueRoundTrip(t *testing.T) {
	cases := []value.Value{
		value.Int(42),
		value.Double(3.14),
		value.Str("hello"),
		value.Bool(true),
		value.Loc(value.Location{Lon: 0.1225, Lat: 52.20806}),
	}
	for _, v := range cases {
		w := ValueToWire(v)
		got, err := ValueFromWire(w)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(v) {
			t.Errorf("round trip mismatch: started with %v, got %v", v, got)
		}
	}
}

func TestInstanceRoundTrip(t *testing.T) {
	m, err := schema.NewDataModel("weather_data", []schema.Attribute{
		schema.NewAttribute("wind_speed", value.KindBool, true, ""),
		schema.NewAttribute("temperature", value.KindDouble, false, ""),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst, err := schema.NewInstance(m, map[string]value.Value{
		"wind_speed":  value.Bool(true),
		"temperature": value.Double(21.5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := InstanceToWire(inst)
	payload, err := Marshal(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decodedWire InstanceWire
	if err := Unmarshal(payload, &decodedWire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := InstanceFromWire(decodedWire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !decoded.Equal(inst) || !inst.Equal(decoded) {
		t.Errorf("expected round-tripped instance to equal original")
	}
}

func TestConstraintExprRoundTrip(t *testing.T) {
	windTrue, err := query.NewRelation(query.Eq, value.Bool(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	humidityFalse, err := query.NewRelation(query.Eq, value.Bool(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orExpr, err := query.NewOr(
		query.NewLeaf("humidity", humidityFalse),
		query.NewNot(query.NewLeaf("humidity", humidityFalse)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expr, err := query.NewAnd(query.NewLeaf("wind_speed", windTrue), orExpr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, err := ConstraintExprToWire(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := Marshal(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decodedWire ConstraintExprWire
	if err := Unmarshal(payload, &decodedWire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := ConstraintExprFromWire(decodedWire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := value.Bool(true)
	trueLeaf := query.NewLeaf("wind_speed", windTrue)
	if query.CheckValue(decoded, v) != query.CheckValue(trueLeaf, v) {
		t.Error("expected round-tripped expression to evaluate the same as a trivial reference check")
	}
}

func TestDistanceLeafHasDedicatedWireArm(t *testing.T) {
	d := query.NewDistance(value.Location{Lon: 0, Lat: 0}, 10)
	w, err := LeafConstraintToWire(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Distance == nil {
		t.Fatal("expected distance constraint to populate the dedicated distance wire arm")
	}
	if w.Range != nil {
		t.Error("expected distance constraint not to populate the range arm")
	}
}

func TestQueryModelRoundTrip(t *testing.T) {
	m, err := schema.NewDataModel("weather_data", []schema.Attribute{
		schema.NewAttribute("wind_speed", value.KindBool, true, ""),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	windTrue, err := query.NewRelation(query.Eq, value.Bool(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qm, err := query.NewQueryModel([]query.ConstraintExpr{query.NewLeaf("wind_speed", windTrue)}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, err := QueryModelToWire(qm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := Marshal(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decodedWire QueryModelWire
	if err := Unmarshal(payload, &decodedWire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := QueryModelFromWire(decodedWire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Model == nil || decoded.Model.Name != "weather_data" {
		t.Error("expected round-tripped query model to retain its data model")
	}
}
