package log

import (
	"time"

	"github.com/meshsense/meshsense-go/pkg/wire"
)

// Event is one captured protocol event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the stack session the event belongs to (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Src is the unicast address of the querying node, if known.
	Src uint16 `cbor:"6,keyasint,omitempty"`

	// Element is the addressed element, if any.
	Element *uint8 `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Query       *QueryEvent       `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates a message received by the node.
	DirectionIn Direction = 0
	// DirectionOut indicates a message sent by the node.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which part of the node captured the event.
type Layer uint8

const (
	// LayerWire is the message encoding layer.
	LayerWire Layer = 0
	// LayerSensor is the sensor query path.
	LayerSensor Layer = 1
	// LayerBootstrap is the node bring-up sequence.
	LayerBootstrap Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerWire:
		return "WIRE"
	case LayerSensor:
		return "SENSOR"
	case LayerBootstrap:
		return "BOOTSTRAP"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryQuery indicates a sensor query or reply.
	CategoryQuery Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryQuery:
		return "QUERY"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// QueryEvent captures a sensor query or its reply.
type QueryEvent struct {
	// MessageID correlates queries and replies.
	MessageID uint32 `cbor:"1,keyasint"`

	// For queries: the requested operation.
	Operation *wire.Operation `cbor:"2,keyasint,omitempty"`

	// PropertyID is the queried property (0 for all sensors).
	PropertyID uint16 `cbor:"3,keyasint,omitempty"`

	// For replies: the status code.
	Status *wire.Status `cbor:"4,keyasint,omitempty"`

	// For replies: the encoded values.
	Values []wire.SensorData `cbor:"5,keyasint,omitempty"`

	// ProcessingTime is the duration from query receipt to reply (reply only).
	// Stored as nanoseconds.
	ProcessingTime *time.Duration `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent captures bootstrap and session lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityBootstrap indicates a bootstrap sequence transition.
	StateEntityBootstrap StateEntity = 0
	// StateEntitySession indicates a stack session transition.
	StateEntitySession StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityBootstrap:
		return "BOOTSTRAP"
	case StateEntitySession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the stable error code (if applicable).
	Code string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
