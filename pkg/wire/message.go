package wire

import (
	"fmt"
)

// CBOR map keys for message encoding.
const (
	KeyMessageID  = 1
	KeyOpOrStatus = 2 // Operation (request) or Status (response)
	KeyElement    = 3 // Request only
	KeyPropertyID = 4 // Request only
	KeyValues     = 3 // Response only
	KeyDescriptor = 4 // Response only
)

// ReservedMessageID is never used by a request.
const ReservedMessageID uint32 = 0

// Request represents a query sent to the node.
//
// CBOR encoding:
//
//	{
//	  1: messageId,    // uint32
//	  2: operation,    // uint8: 1=Get, 2=DescriptorGet
//	  3: element,      // uint8: element index
//	  4: propertyId    // uint16: 0 or absent = all sensors
//	}
type Request struct {
	MessageID  uint32    `cbor:"1,keyasint"`
	Operation  Operation `cbor:"2,keyasint"`
	Element    uint8     `cbor:"3,keyasint"`
	PropertyID uint16    `cbor:"4,keyasint,omitempty"`
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if r.MessageID == ReservedMessageID {
		return fmt.Errorf("messageId 0 is reserved")
	}
	if !r.Operation.IsValid() {
		return fmt.Errorf("invalid operation: %d", r.Operation)
	}
	return nil
}

// Response represents the node's reply.
//
// CBOR encoding:
//
//	{
//	  1: messageId,    // uint32: matches request
//	  2: status,       // uint8: 0=success, or error code
//	  3: values,       // []SensorData for Get
//	  4: descriptors   // []Descriptor for DescriptorGet
//	}
type Response struct {
	MessageID   uint32       `cbor:"1,keyasint"`
	Status      Status       `cbor:"2,keyasint"`
	Values      []SensorData `cbor:"3,keyasint,omitempty"`
	Descriptors []Descriptor `cbor:"4,keyasint,omitempty"`
}

// IsSuccess returns true if the response indicates success.
func (r *Response) IsSuccess() bool {
	return r.Status.IsSuccess()
}

// SensorData is one encoded sensor value in a Get response.
type SensorData struct {
	PropertyID uint16 `cbor:"1,keyasint"`
	Format     string `cbor:"2,keyasint"`
	Raw        []byte `cbor:"3,keyasint"`
	Clamped    bool   `cbor:"4,keyasint,omitempty"`
}

// Descriptor describes one sensor in a DescriptorGet response.
type Descriptor struct {
	PropertyID uint16   `cbor:"1,keyasint"`
	Name       string   `cbor:"2,keyasint"`
	Formats    []string `cbor:"3,keyasint"`
}
