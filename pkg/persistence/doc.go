// Package persistence provides a file-backed settings subsystem for the
// demo node.
//
// The real mesh stack owns its own settings storage; SettingsStore stands in
// for it. It satisfies the bootstrap package's Settings interface and keeps a
// small JSON node-state file (boot counter, last boot time, firmware version).
package persistence
