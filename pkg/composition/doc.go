// Package composition builds the node's composition descriptor.
//
// The descriptor is a three-level tree:
//
//	Composition (company, product and version ids)
//	└── Element (addressable position, index is the element offset)
//	    └── Model (sensor server)
//	        └── sensor.Sensor (one per property ID)
//
// A Composition is assembled once by Build from a Config and is read-only
// afterwards. The only mutable state is the per-sensor Cell holding the last
// value a query produced.
//
// Profile records describe standardized capability profiles and reference
// elements by offset. BuildProfileRecords and Validate reject any record
// that names an element the composition does not have.
package composition
