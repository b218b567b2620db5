package interactive

import (
	"bytes"
	"context"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meshsense/meshsense-go/pkg/bootstrap"
	"github.com/meshsense/meshsense-go/pkg/examples"
	"github.com/meshsense/meshsense-go/pkg/persistence"
	"github.com/meshsense/meshsense-go/pkg/profile"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/service"
)

type fakeSim struct{ running bool }

func (f *fakeSim) Start(context.Context) { f.running = true }
func (f *fakeSim) Stop()                 { f.running = false }
func (f *fakeSim) Running() bool         { return f.running }

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer, *fakeSim) {
	t.Helper()

	node, err := examples.Node("occupancy", sensor.NewFactory(sensor.NewSequence(12), nil))
	if err != nil {
		t.Fatalf("examples.Node() error = %v", err)
	}
	catalog, err := profile.Default()
	if err != nil {
		t.Fatalf("profile.Default() error = %v", err)
	}

	stack := service.NewStack(service.Config{SessionID: "console-test"})
	settings := persistence.NewSettingsStore(filepath.Join(t.TempDir(), "state.json"))
	seq := bootstrap.New(bootstrap.Config{
		Node:            node,
		SettingsEnabled: true,
		Registrar:       stack,
		Settings:        settings,
		Checker:         catalog,
	})
	comp, err := seq.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	stack.Attach(comp)

	var buf bytes.Buffer
	sim := &fakeSim{}
	c := &Console{out: &buf}
	c.Attach(Node{Stack: stack, Bootstrap: seq, Settings: settings, Catalog: catalog, Simulator: sim})
	return c, &buf, sim
}

func TestConsoleCommands(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"info", []string{"company_id: 89", "name: people_count", "format: count16"}},
		{"records", []string{"OCSNLCP (0x1605) v1.0.0 elements=[0] payload=0 bytes"}},
		{"page2", []string{"05 16 01 00 00 01 00 00  00"}},
		{"get 0", []string{"people_count (0x004C): 12 [count16 0c00]"}},
		{"get 0 people_count", []string{"people_count (0x004C): 12"}},
		{"get 0 0x004F", []string{"Error: INVALID_PROPERTY"}},
		{"get 3", []string{"Error: INVALID_ELEMENT"}},
		{"get x", []string{"invalid element"}},
		{"desc 0", []string{"0x004C people_count", "count16"}},
		{"state", []string{"Bootstrap: READY", "Session:   console-test", "boot #1"}},
		{"bogus", []string{"Unknown command: bogus"}},
	}

	c, buf, _ := newTestConsole(t)
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			buf.Reset()
			if !c.Exec(tt.line) {
				t.Fatalf("Exec(%q) requested exit", tt.line)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("Exec(%q) output missing %q:\n%s", tt.line, w, out)
				}
			}
		})
	}
}

func TestConsoleLastBeforeGet(t *testing.T) {
	c, buf, _ := newTestConsole(t)

	c.Exec("last 0 people_count")
	if !strings.Contains(buf.String(), "No value yet") {
		t.Errorf("last output = %q, want no value", buf.String())
	}
}

func TestConsolePage2MatchesStack(t *testing.T) {
	c, buf, _ := newTestConsole(t)

	want, err := c.node.Stack.Page2()
	if err != nil {
		t.Fatalf("Page2() error = %v", err)
	}
	c.Exec("page2")
	if got := buf.String(); got != hex.Dump(want) {
		t.Errorf("page2 output = %q, want %q", got, hex.Dump(want))
	}
}

func TestConsoleLastAfterGet(t *testing.T) {
	c, buf, _ := newTestConsole(t)

	c.Exec("get 0 0x004C")
	buf.Reset()
	c.Exec("last 0 0x004C")

	if !strings.Contains(buf.String(), "people_count (0x004C): 12") {
		t.Errorf("last output = %q", buf.String())
	}
}

func TestConsoleSimAndQuit(t *testing.T) {
	c, _, sim := newTestConsole(t)

	c.Exec("sim start")
	if !sim.Running() {
		t.Error("sim start did not start the simulator")
	}
	c.Exec("sim stop")
	if sim.Running() {
		t.Error("sim stop did not stop the simulator")
	}

	for _, line := range []string{"quit", "exit", "q"} {
		if c.Exec(line) {
			t.Errorf("Exec(%q) should request exit", line)
		}
	}
	if !c.Exec("   ") {
		t.Error("blank line should not exit")
	}
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		in   string
		want sensor.PropertyID
		ok   bool
	}{
		{"people_count", sensor.PropertyPeopleCount, true},
		{"MAGNETIC_X", sensor.PropertyMagneticFieldX, true},
		{"0x004F", sensor.PropertyPresentAmbientTemperature, true},
		{"76", sensor.PropertyPeopleCount, true},
		{"0x10000", 0, false},
		{"humidity", 0, false},
	}
	for _, tt := range tests {
		got, err := parseProperty(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseProperty(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseProperty(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
