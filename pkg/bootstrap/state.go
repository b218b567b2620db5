package bootstrap

// State is a bootstrap sequence state.
type State uint8

const (
	// StateUninitialized is the state before the sequence has run.
	StateUninitialized State = iota

	// StateProfileRegistered is reached once the record table was submitted,
	// whether or not the stack accepted it.
	StateProfileRegistered

	// StateSettingsReady is reached after the settings subsystem was initialized.
	// It is skipped when settings are disabled.
	StateSettingsReady

	// StateReady is terminal: the composition has been handed out.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateProfileRegistered:
		return "PROFILE_REGISTERED"
	case StateSettingsReady:
		return "SETTINGS_READY"
	case StateReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}
