package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/log"
	"github.com/meshsense/meshsense-go/pkg/metrics"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

// Stack errors.
var (
	ErrNotAttached        = errors.New("no composition attached")
	ErrAlreadyRegistered  = errors.New("profile records already registered")
	ErrRegistrationClosed = errors.New("registration closed")
	ErrUnsupported        = errors.New("unsupported operation")
)

// Config configures a Stack.
type Config struct {
	// SessionID tags protocol events. A random UUID is used if empty.
	SessionID string

	// Address is the node's primary unicast address.
	Address uint16

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives query events (optional).
	ProtocolLogger log.Logger

	// Metrics records query outcomes (optional).
	Metrics *metrics.Metrics
}

// Stack is an in-process mesh stack serving one node.
type Stack struct {
	cfg       Config
	sessionID string

	mu         sync.Mutex
	records    []composition.ProfileRecord
	registered bool
	comp       *composition.Composition
	nextTID    uint32
}

// NewStack creates a stack with no composition attached.
func NewStack(cfg Config) *Stack {
	id := cfg.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	return &Stack{cfg: cfg, sessionID: id}
}

// SessionID returns the session identifier used in protocol events.
func (s *Stack) SessionID() string {
	return s.sessionID
}

// RegisterProfiles stores the profile record table.
// Records can be registered once, before a composition is attached.
func (s *Stack) RegisterProfiles(records []composition.ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.comp != nil {
		return ErrRegistrationClosed
	}
	if s.registered {
		return ErrAlreadyRegistered
	}
	if _, err := composition.EncodePage2(records); err != nil {
		return fmt.Errorf("register profiles: %w", err)
	}

	s.records = make([]composition.ProfileRecord, len(records))
	for i, r := range records {
		r.ElementOffsets = append([]uint8(nil), r.ElementOffsets...)
		r.Data = append([]byte(nil), r.Data...)
		s.records[i] = r
	}
	s.registered = true
	s.debugLog("profile records registered", "count", len(records))
	s.logState("IDLE", "REGISTERED", "")
	return nil
}

// Records returns the registered profile record table.
func (s *Stack) Records() []composition.ProfileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]composition.ProfileRecord(nil), s.records...)
}

// Page2 returns the registered records in Composition Data Page 2 layout.
func (s *Stack) Page2() ([]byte, error) {
	return composition.EncodePage2(s.Records())
}

// Attach makes comp the composition served by the stack.
func (s *Stack) Attach(comp *composition.Composition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := "IDLE"
	if s.registered {
		from = "REGISTERED"
	}
	s.comp = comp
	s.infoLog("composition attached",
		"session", s.sessionID,
		"elements", comp.ElementCount(),
		"profiles", len(s.records))
	s.logState(from, "ATTACHED", "")
}

// Composition returns the attached composition, or nil.
func (s *Stack) Composition() *composition.Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comp
}

// Get queries one sensor, or every sensor of the element when propertyID is
// sensor.PropertyProhibited. msg.Element selects the element; msg itself is
// not modified.
//
// In a multi-sensor get, sensors that fail are left out of the result; the
// first failure is returned only if no sensor produced a value.
func (s *Stack) Get(ctx context.Context, msg *sensor.MsgContext, propertyID sensor.PropertyID) ([]wire.SensorData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var m sensor.MsgContext
	if msg != nil {
		m = *msg
	}
	if m.TID == 0 {
		s.nextTID++
		m.TID = s.nextTID
	}
	if m.Dst == 0 {
		m.Dst = s.cfg.Address + uint16(m.Element)
	}
	return s.get(ctx, &m, propertyID)
}

// get must be called with s.mu held.
func (s *Stack) get(ctx context.Context, msg *sensor.MsgContext, propertyID sensor.PropertyID) ([]wire.SensorData, error) {
	if s.comp == nil {
		return nil, ErrNotAttached
	}

	if propertyID != sensor.PropertyProhibited {
		m, _, err := s.comp.FindSensor(int(msg.Element), propertyID)
		if err != nil {
			return nil, err
		}
		v, err := s.query(ctx, m, msg, propertyID)
		if err != nil {
			return nil, err
		}
		return []wire.SensorData{SensorData(propertyID, v)}, nil
	}

	el, err := s.comp.Element(int(msg.Element))
	if err != nil {
		return nil, err
	}

	var (
		out      []wire.SensorData
		firstErr error
	)
	for _, m := range el.Models() {
		for _, sn := range m.Sensors() {
			id := sn.Type().ID
			v, err := s.query(ctx, m, msg, id)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			out = append(out, SensorData(id, v))
		}
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (s *Stack) query(ctx context.Context, m *composition.Model, msg *sensor.MsgContext, id sensor.PropertyID) (sensor.Value, error) {
	start := time.Now()
	v, err := m.Get(ctx, msg, id)
	status := StatusOf(err)
	s.cfg.Metrics.ObserveQuery(uint16(id), status.String(), time.Since(start))

	if err != nil {
		s.warnLog("sensor query failed",
			"element", msg.Element,
			"property", id,
			"status", status,
			"error", err)
		return sensor.Value{}, err
	}
	if v.Clamped {
		s.cfg.Metrics.IncClamped(uint16(id))
		s.warnLog("sensor value clamped to format range",
			"element", msg.Element,
			"property", id,
			"value", v)
	}
	return v, nil
}

// Descriptors lists the sensors of an element.
func (s *Stack) Descriptors(element uint8) ([]wire.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.descriptors(element)
}

func (s *Stack) descriptors(element uint8) ([]wire.Descriptor, error) {
	if s.comp == nil {
		return nil, ErrNotAttached
	}
	el, err := s.comp.Element(int(element))
	if err != nil {
		return nil, err
	}

	sensors := el.Sensors()
	out := make([]wire.Descriptor, 0, len(sensors))
	for _, sn := range sensors {
		t := sn.Type()
		d := wire.Descriptor{PropertyID: uint16(t.ID), Name: t.Name}
		for _, ch := range t.Channels {
			d.Formats = append(d.Formats, ch.Format.String())
		}
		out = append(out, d)
	}
	return out, nil
}

// Last returns the most recent reading of a sensor without querying it.
func (s *Stack) Last(element uint8, propertyID sensor.PropertyID) (composition.Reading, bool, error) {
	comp := s.Composition()
	if comp == nil {
		return composition.Reading{}, false, ErrNotAttached
	}
	m, _, err := comp.FindSensor(int(element), propertyID)
	if err != nil {
		return composition.Reading{}, false, err
	}
	cell, _ := m.Cell(propertyID)
	r, ok := cell.Load()
	return r, ok, nil
}

func (s *Stack) logState(from, to, reason string) {
	if s.cfg.ProtocolLogger == nil {
		return
	}
	s.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Layer:     log.LayerWire,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntitySession,
			OldState: from,
			NewState: to,
			Reason:   reason,
		},
	})
}

func (s *Stack) debugLog(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, args...)
	}
}

func (s *Stack) infoLog(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info(msg, args...)
	}
}

func (s *Stack) warnLog(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Warn(msg, args...)
	}
}
