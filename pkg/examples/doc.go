// Package examples provides reference node configurations.
//
// Presets are embedded YAML node configurations in the format read by
// composition.ParseFileConfig:
//   - occupancy: the reference single-element people count node
//   - environment: occupancy plus temperature and magnetometer sensors
//
// They serve as templates for real node configurations and as the default
// configuration of the meshsense-node binary.
package examples
