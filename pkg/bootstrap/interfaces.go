package bootstrap

import (
	"github.com/meshsense/meshsense-go/pkg/composition"
)

// Registrar accepts the profile record table.
// It is implemented by the mesh stack's secondary composition registry.
type Registrar interface {
	RegisterProfiles(records []composition.ProfileRecord) error
}

// Settings is the persistent settings subsystem.
type Settings interface {
	Init() error
}

// Checker inspects a built composition and its records for semantic
// problems that are worth a warning but not a boot failure.
type Checker interface {
	Check(comp *composition.Composition, records []composition.ProfileRecord) []error
}
