// Package bootstrap brings a sensor node up.
//
// A Sequence runs once per process:
//
//	Uninitialized → ProfileRegistered → SettingsReady (optional) → Ready
//
// It builds the composition and the profile record table, rejecting any
// configuration defect before anything is registered. Registration failures
// and settings failures are logged and do not stop the node. The terminal
// step hands the singleton composition to the caller; later calls return
// the same instance without repeating side effects.
package bootstrap
