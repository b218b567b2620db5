// Package commands implements the meshsense-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/meshsense/meshsense-go/pkg/log"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/service"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

// FormatEvent writes a human-readable representation of the event to w.
func FormatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	var typeLabel string
	switch {
	case event.Query != nil && event.Query.Status != nil:
		typeLabel = "Reply"
	case event.Query != nil:
		typeLabel = "Query"
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [sess:%s] %-3s %s %s", ts, shortenSessionID(event.SessionID),
		event.Direction.String(), event.Layer.String(), typeLabel)
	if event.Src != 0 {
		fmt.Fprintf(w, " src=0x%04X", event.Src)
	}
	if event.Element != nil {
		fmt.Fprintf(w, " element=%d", *event.Element)
	}
	fmt.Fprintln(w)

	switch {
	case event.Query != nil:
		formatQueryDetails(w, event.Query)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatQueryDetails(w io.Writer, q *log.QueryEvent) {
	fmt.Fprintf(w, "  MessageID: %d\n", q.MessageID)
	if q.Operation != nil {
		fmt.Fprintf(w, "  Operation: %s\n", q.Operation.String())
	}
	if q.PropertyID != 0 {
		fmt.Fprintf(w, "  Property: %s\n", propertyName(q.PropertyID))
	}
	if q.Status != nil {
		fmt.Fprintf(w, "  Status: %s (%d)\n", q.Status.String(), *q.Status)
	}
	for _, v := range q.Values {
		fmt.Fprintf(w, "  Value: %s = %s", propertyName(v.PropertyID), formatSensorData(v))
		if v.Clamped {
			fmt.Fprint(w, " (clamped)")
		}
		fmt.Fprintln(w)
	}
	if q.ProcessingTime != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*q.ProcessingTime))
	}
}

// propertyName renders a property ID with its sensor type name when known.
func propertyName(id uint16) string {
	pid := sensor.PropertyID(id)
	if t, ok := sensor.TypeByID(pid); ok {
		return fmt.Sprintf("%s (%s)", t.Name, pid)
	}
	return pid.String()
}

// formatSensorData decodes the raw payload when the format is known and
// falls back to hex otherwise.
func formatSensorData(d wire.SensorData) string {
	v, err := service.DecodeSensorData(d)
	if err != nil {
		return hex.EncodeToString(d.Raw)
	}
	v.Clamped = false
	return v.String()
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != "" {
		fmt.Fprintf(w, "  Code: %s\n", err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayer parses a layer name (case-insensitive).
func ParseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "wire":
		return log.LayerWire, nil
	case "sensor":
		return log.LayerSensor, nil
	case "bootstrap":
		return log.LayerBootstrap, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be wire, sensor, or bootstrap)", s)
	}
}

// ParseDirection parses a direction name (case-insensitive).
func ParseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "query":
		return log.CategoryQuery, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be query, state, or error)", s)
	}
}

// RunView writes every event of the log file that matches filter to output.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		FormatEvent(output, event)
	}
	return nil
}
