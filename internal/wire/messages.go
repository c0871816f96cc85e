// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// This file defines the CBOR wire shapes exchanged over a session's
// frames. Every one-of payload (Envelope, LeafConstraintWire,
// ConstraintExprWire, FipaMessage, AgentMessage) is modeled as a
// struct of optional pointer/slice fields with `omitempty`, mirroring
// how the rest of this corpus encodes tagged unions over CBOR: the
// populated field names the arm.

// --- Handshake ---

// IDMessage is the client's first handshake frame.
type IDMessage struct {
	PublicKey string `cbor:"public_key"`
}

// AnswerMessage is the client's handshake-reply frame.
type AnswerMessage struct {
	Answer string `cbor:"answer"`
}

// PhraseMessage is the server's handshake-challenge frame, or its
// immediate-rejection frame when Failure is set.
type PhraseMessage struct {
	Phrase  string `cbor:"phrase,omitempty"`
	Failure bool   `cbor:"failure,omitempty"`
}

// ConnectedMessage reports the handshake's outcome.
type ConnectedMessage struct {
	Status bool `cbor:"status"`
}

// --- Value / schema ---

// ValueWire is the wire form of value.Value: Kind names the populated
// field.
type ValueWire struct {
	Kind     string        `cbor:"kind"`
	Int      *int64        `cbor:"int,omitempty"`
	Double   *float64      `cbor:"double,omitempty"`
	String   *string       `cbor:"string,omitempty"`
	Bool     *bool         `cbor:"bool,omitempty"`
	Location *LocationWire `cbor:"location,omitempty"`
}

// LocationWire is the wire form of value.Location.
type LocationWire struct {
	Lon float64 `cbor:"lon"`
	Lat float64 `cbor:"lat"`
}

// AttributeWire is the wire form of schema.Attribute.
type AttributeWire struct {
	Name        string `cbor:"name"`
	Type        string `cbor:"type"`
	Required    bool   `cbor:"required"`
	Description string `cbor:"description,omitempty"`
}

// DataModelWire is the wire form of schema.DataModel.
type DataModelWire struct {
	Name        string          `cbor:"name"`
	Attributes  []AttributeWire `cbor:"attributes,omitempty"`
	Description string          `cbor:"description,omitempty"`
}

// InstanceWire is the wire form of schema.Instance. The model travels
// with every instance: agents describe themselves and their services
// without a prior schema-registration step.
type InstanceWire struct {
	Model  DataModelWire        `cbor:"model"`
	Values map[string]ValueWire `cbor:"values,omitempty"`
}

// --- Leaf constraints ---

// RangeWire is the wire form of a query.Range. Lo/Hi carry the
// Int/Double/String forms; Box carries the Location form.
type RangeWire struct {
	Lo  *ValueWire       `cbor:"lo,omitempty"`
	Hi  *ValueWire       `cbor:"hi,omitempty"`
	Box *LocationBoxWire `cbor:"box,omitempty"`
}

// LocationBoxWire is a normalized axis-aligned lon/lat box.
type LocationBoxWire struct {
	MinLon float64 `cbor:"min_lon"`
	MaxLon float64 `cbor:"max_lon"`
	MinLat float64 `cbor:"min_lat"`
	MaxLat float64 `cbor:"max_lat"`
}

// SetWire is the wire form of a query.Set.
type SetWire struct {
	Op     string      `cbor:"op"`
	Kind   string      `cbor:"kind"`
	Values []ValueWire `cbor:"values,omitempty"`
}

// RelationWire is the wire form of a query.Relation.
type RelationWire struct {
	Op      string    `cbor:"op"`
	Operand ValueWire `cbor:"operand"`
}

// DistanceWire is the wire form of a query.Distance. It has its own
// arm on LeafConstraintWire rather than reusing RangeWire's box, since
// a distance constraint is circular, not an axis-aligned rectangle.
type DistanceWire struct {
	Center   LocationWire `cbor:"center"`
	RadiusKM float64      `cbor:"radius_km"`
}

// LeafConstraintWire is the one-of over the four leaf constraint
// kinds.
type LeafConstraintWire struct {
	Range    *RangeWire    `cbor:"range,omitempty"`
	Set      *SetWire      `cbor:"set,omitempty"`
	Relation *RelationWire `cbor:"relation,omitempty"`
	Distance *DistanceWire `cbor:"distance,omitempty"`
}

// --- Constraint expression tree ---

// LeafExprWire pairs a target attribute name with its constraint.
type LeafExprWire struct {
	AttributeName string             `cbor:"attribute_name"`
	Constraint    LeafConstraintWire `cbor:"constraint"`
}

// ConstraintExprWire is the one-of over Leaf/And/Or/Not.
type ConstraintExprWire struct {
	Leaf *LeafExprWire        `cbor:"leaf,omitempty"`
	And  []ConstraintExprWire `cbor:"and,omitempty"`
	Or   []ConstraintExprWire `cbor:"or,omitempty"`
	Not  *ConstraintExprWire  `cbor:"not,omitempty"`
}

// QueryModelWire is the wire form of query.QueryModel.
type QueryModelWire struct {
	Constraints []ConstraintExprWire `cbor:"constraints"`
	Model       *DataModelWire       `cbor:"model,omitempty"`
}

// --- Established-session envelope (client -> server) ---

// Envelope is the one-of payload of every frame read in the
// Established state.
type Envelope struct {
	RegisterDescription   *DescriptionPayload   `cbor:"register_description,omitempty"`
	UnregisterDescription *struct{}             `cbor:"unregister_description,omitempty"`
	RegisterService       *DescriptionPayload   `cbor:"register_service,omitempty"`
	UnregisterService     *DescriptionPayload   `cbor:"unregister_service,omitempty"`
	SearchAgents          *SearchRequest        `cbor:"search_agents,omitempty"`
	SearchServices        *SearchRequest        `cbor:"search_services,omitempty"`
	SendMessage           *SendMessagePayload   `cbor:"send_message,omitempty"`
}

// DescriptionPayload carries an Instance for register/unregister
// operations on either directory.
type DescriptionPayload struct {
	Description InstanceWire `cbor:"description"`
}

// SearchRequest carries a query and the search_id the reply must echo.
type SearchRequest struct {
	SearchID uint32         `cbor:"search_id"`
	Query    QueryModelWire `cbor:"query"`
}

// SendMessagePayload requests point-to-point delivery, optionally
// carrying a FIPA negotiation sub-message instead of (or alongside)
// free-form content.
type SendMessagePayload struct {
	DialogueID  uint32       `cbor:"dialogue_id"`
	Destination string       `cbor:"destination"`
	Content     []byte       `cbor:"content,omitempty"`
	Fipa        *FipaMessage `cbor:"fipa,omitempty"`
}

// FipaPayload is the shared shape of all four FIPA sub-messages.
type FipaPayload struct {
	MsgID  uint32   `cbor:"msg_id"`
	Target []uint32 `cbor:"target,omitempty"`
}

// FipaMessage is the one-of over the FIPA negotiation sub-protocol.
// The engine is oblivious to which arm is set; it only carries the
// message through to the addressed agent.
type FipaMessage struct {
	Cfp     *FipaPayload `cbor:"cfp,omitempty"`
	Propose *FipaPayload `cbor:"propose,omitempty"`
	Accept  *FipaPayload `cbor:"accept,omitempty"`
	Decline *FipaPayload `cbor:"decline,omitempty"`
}

// --- Established-session message (server -> client) ---

// Operation names an operation that can fail inside the Established
// state and be reported back to the requester.
type Operation string

const (
	OperationRegisterService   Operation = "REGISTER_SERVICE"
	OperationUnregisterService Operation = "UNREGISTER_SERVICE"
	OperationRegisterDesc      Operation = "REGISTER_DESCRIPTION"
	OperationSendMessage       Operation = "SEND_MESSAGE"
)

// AgentMessage is the one-of payload the server writes to an
// established session's socket, outside of handshake frames.
type AgentMessage struct {
	Content *AgentMessageContent `cbor:"content,omitempty"`
	Agents  *AgentMessageAgents  `cbor:"agents,omitempty"`
	Error   *AgentMessageError   `cbor:"error,omitempty"`
}

// AgentMessageContent delivers a forwarded message from Origin.
type AgentMessageContent struct {
	DialogueID uint32       `cbor:"dialogue_id"`
	Origin     string       `cbor:"origin"`
	Content    []byte       `cbor:"content,omitempty"`
	Fipa       *FipaMessage `cbor:"fipa,omitempty"`
}

// AgentMessageAgents replies to a search_agents or search_services
// request, echoing the caller's search_id.
type AgentMessageAgents struct {
	SearchID uint32   `cbor:"search_id"`
	Agents   []string `cbor:"agents"`
}

// AgentMessageError reports a rejected operation. DialogueID is set
// only for SEND_MESSAGE failures, where the originator needs it to
// correlate the failure with the attempted send.
type AgentMessageError struct {
	Operation  Operation `cbor:"operation"`
	DialogueID *uint32   `cbor:"dialogue_id,omitempty"`
}
