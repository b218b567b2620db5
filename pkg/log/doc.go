// Package log provides structured protocol capture for a sensor node.
//
// This package defines the Logger interface and Event types for recording
// what crossed the node's query path: inbound sensor queries and their
// replies, bootstrap state transitions and errors. It is separate from
// operational logging (slog). Protocol capture provides a complete
// machine-readable trace for debugging and replay.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For field captures: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/meshsense/node.mlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(console, file)
//
// # Event Types
//
//   - Query: a sensor query and its reply (QueryEvent)
//   - State: bootstrap and session transitions (StateChangeEvent)
//   - Error: failures at any layer (ErrorEventData)
//
// # File Format
//
// Log files are a sequence of CBOR-encoded events (.mlog). Reader streams
// them back, optionally through a Filter.
package log
