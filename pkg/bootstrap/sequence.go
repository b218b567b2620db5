package bootstrap

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/log"
	"github.com/meshsense/meshsense-go/pkg/metrics"
)

// Config configures a bootstrap Sequence.
type Config struct {
	// Node is the static composition configuration.
	Node composition.Config

	// SettingsEnabled turns on initialization of the settings subsystem.
	SettingsEnabled bool

	// Registrar receives the profile record table.
	// If nil, registration is skipped.
	Registrar Registrar

	// Settings is initialized when SettingsEnabled is set.
	Settings Settings

	// Checker reports semantic warnings about the records (optional).
	Checker Checker

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives state change and error events (optional).
	ProtocolLogger log.Logger

	// SessionID tags protocol events.
	SessionID string

	// Metrics records the bootstrap state (optional).
	Metrics *metrics.Metrics
}

// Sequence runs the node bring-up exactly once.
type Sequence struct {
	cfg Config

	mu      sync.Mutex
	state   State
	comp    *composition.Composition
	records []composition.ProfileRecord
	err     error
}

// New creates a Sequence in StateUninitialized.
func New(cfg Config) *Sequence {
	return &Sequence{cfg: cfg}
}

// State returns the current state.
func (s *Sequence) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Records returns the profile record table built by Run.
func (s *Sequence) Records() []composition.ProfileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]composition.ProfileRecord(nil), s.records...)
}

// Run executes the sequence and returns the node's composition.
//
// Configuration defects abort the sequence before registration and leave
// it in StateUninitialized; the same error is returned on every later call.
// Once Ready, Run returns the same composition instance without repeating
// registration or settings initialization.
func (s *Sequence) Run() (*composition.Composition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady {
		return s.comp, nil
	}
	if s.err != nil {
		return nil, s.err
	}

	comp, records, err := s.build()
	if err != nil {
		s.err = err
		s.logError("build composition", err)
		return nil, err
	}
	s.comp = comp
	s.records = records

	if s.cfg.Checker != nil {
		for _, w := range s.cfg.Checker.Check(comp, records) {
			s.warnLog("profile check", "warning", w)
		}
	}

	s.registerProfiles(records)

	if s.cfg.SettingsEnabled {
		s.initSettings()
	} else {
		s.debugLog("settings disabled, skipping initialization")
	}

	s.transition(StateReady, "")
	s.infoLog("node ready",
		"elements", comp.ElementCount(),
		"profiles", len(records),
		"companyID", fmt.Sprintf("0x%04X", comp.CompanyID()))
	return comp, nil
}

func (s *Sequence) build() (*composition.Composition, []composition.ProfileRecord, error) {
	records, err := composition.BuildProfileRecords(s.cfg.Node)
	if err != nil {
		return nil, nil, fmt.Errorf("profile records: %w", err)
	}
	comp, err := composition.Build(s.cfg.Node)
	if err != nil {
		return nil, nil, fmt.Errorf("composition: %w", err)
	}
	if err := composition.Validate(comp, records); err != nil {
		return nil, nil, fmt.Errorf("composition: %w", err)
	}
	return comp, records, nil
}

func (s *Sequence) registerProfiles(records []composition.ProfileRecord) {
	if s.cfg.Registrar == nil {
		s.warnLog("no registrar configured, profile records not registered", "profiles", len(records))
		s.transition(StateProfileRegistered, "no registrar")
		return
	}

	if err := s.cfg.Registrar.RegisterProfiles(records); err != nil {
		s.warnLog("profile registration failed, continuing without profile metadata",
			"profiles", len(records), "error", err)
		s.logError("register profiles", err)
		s.transition(StateProfileRegistered, "registration failed")
		return
	}

	s.cfg.Metrics.SetRegisteredProfiles(len(records))
	s.debugLog("profiles registered", "profiles", len(records))
	s.transition(StateProfileRegistered, "")
}

func (s *Sequence) initSettings() {
	if s.cfg.Settings == nil {
		s.warnLog("settings enabled but no settings subsystem configured")
		return
	}

	if err := s.cfg.Settings.Init(); err != nil {
		s.warnLog("settings initialization failed", "error", err)
		s.logError("init settings", err)
		s.transition(StateSettingsReady, "init failed")
		return
	}
	s.transition(StateSettingsReady, "")
}

// transition must be called with s.mu held.
func (s *Sequence) transition(to State, reason string) {
	from := s.state
	s.state = to
	s.cfg.Metrics.SetBootstrapState(int(to))

	if s.cfg.ProtocolLogger != nil {
		s.cfg.ProtocolLogger.Log(log.Event{
			Timestamp: time.Now(),
			SessionID: s.cfg.SessionID,
			Layer:     log.LayerBootstrap,
			Category:  log.CategoryState,
			StateChange: &log.StateChangeEvent{
				Entity:   log.StateEntityBootstrap,
				OldState: from.String(),
				NewState: to.String(),
				Reason:   reason,
			},
		})
	}
	s.debugLog("bootstrap state", "from", from, "to", to)
}

func (s *Sequence) logError(context string, err error) {
	if s.cfg.ProtocolLogger == nil {
		return
	}
	s.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.cfg.SessionID,
		Layer:     log.LayerBootstrap,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerBootstrap,
			Message: err.Error(),
			Context: context,
		},
	})
}

func (s *Sequence) debugLog(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, args...)
	}
}

func (s *Sequence) infoLog(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info(msg, args...)
	}
}

func (s *Sequence) warnLog(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Warn(msg, args...)
	}
}
