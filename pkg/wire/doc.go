// Package wire defines the CBOR messages used to query a sensor node.
//
// Messages use CBOR (RFC 8949) with integer keys for compactness. The node
// itself never owns a transport: these messages are what the loopback stack
// and tests exchange with the sensor server.
//
// # Message Types
//
//   - Request: querier to node (Get, DescriptorGet)
//   - Response: node to querier (status plus sensor data or descriptors)
//
// # Sensor Data
//
// Each SensorData entry carries the property ID, the channel format tag and
// the raw little-endian payload exactly as the channel format defines it.
// A query for property 0 addresses every sensor of the element.
package wire
