// Package interactive provides the interactive command-line interface
// for meshsense-node.
package interactive

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"gopkg.in/yaml.v3"

	"github.com/meshsense/meshsense-go/pkg/bootstrap"
	"github.com/meshsense/meshsense-go/pkg/persistence"
	"github.com/meshsense/meshsense-go/pkg/profile"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/service"
)

// Simulator controls the background query loop.
type Simulator interface {
	Start(ctx context.Context)
	Stop()
	Running() bool
}

// Node is what the console inspects.
type Node struct {
	Stack     *service.Stack
	Bootstrap *bootstrap.Sequence
	Settings  *persistence.SettingsStore
	Catalog   *profile.Catalog
	Simulator Simulator
}

// Console handles interactive mode for meshsense-node.
type Console struct {
	rl   *readline.Instance
	out  io.Writer
	node Node
	ctx  context.Context
}

// New creates the console. Call Attach before Run.
func New() (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "node> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{rl: rl, out: rl.Stdout()}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Attach sets the node the console operates on.
func (c *Console) Attach(n Node) {
	c.node = n
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()
	c.ctx = ctx

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if !c.Exec(line) {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the console should exit.
func (c *Console) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
	case "info", "i":
		c.cmdInfo()
	case "records", "r":
		c.cmdRecords()
	case "page2":
		c.cmdPage2()
	case "get", "g":
		c.cmdGet(args)
	case "desc", "d":
		c.cmdDesc(args)
	case "last":
		c.cmdLast(args)
	case "state", "s":
		c.cmdState()
	case "sim":
		c.cmdSim(args)
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Sensor Node Commands:
  Composition:
    info                    - Show the composition tree
    records                 - List registered profile records
    page2                   - Show records in Composition Data Page 2 layout

  Sensors:
    get <element> [prop]    - Query a sensor (all sensors if prop is omitted)
    desc <element>          - List sensor descriptors of an element
    last <element> <prop>   - Show the last value without querying

  Node:
    state                   - Show bootstrap and settings state
    sim start|stop          - Control the simulated query loop

  General:
    help                    - Show this help
    quit                    - Exit node

  Properties can be given as names (people_count) or IDs (0x004C).`)
}

func (c *Console) cmdInfo() {
	comp := c.node.Stack.Composition()
	if comp == nil {
		fmt.Fprintln(c.out, "No composition attached")
		return
	}
	data, err := yaml.Marshal(comp.Info())
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(c.out, string(data))
}

func (c *Console) cmdRecords() {
	records := c.node.Stack.Records()
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No profile records registered")
		return
	}
	for i, r := range records {
		name := fmt.Sprintf("0x%04X", r.ID)
		if c.node.Catalog != nil {
			name = c.node.Catalog.Name(r.ID)
		}
		fmt.Fprintf(c.out, "  [%d] %s (0x%04X) v%s elements=%v payload=%d bytes\n",
			i, name, r.ID, r.Version, r.ElementOffsets, r.PayloadLen())
	}
}

func (c *Console) cmdPage2() {
	data, err := c.node.Stack.Page2()
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(c.out, hex.Dump(data))
}

func (c *Console) cmdGet(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: get <element> [property]")
		return
	}
	element, err := parseElement(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	pid := sensor.PropertyProhibited
	if len(args) > 1 {
		if pid, err = parseProperty(args[1]); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
	}

	values, err := c.node.Stack.Get(c.context(), &sensor.MsgContext{Element: element}, pid)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %s (%v)\n", service.StatusOf(err), err)
		return
	}
	for _, d := range values {
		v, err := service.DecodeSensorData(d)
		if err != nil {
			fmt.Fprintf(c.out, "  %s: %x (%v)\n", sensor.PropertyID(d.PropertyID), d.Raw, err)
			continue
		}
		fmt.Fprintf(c.out, "  %s: %s [%s %x]\n", propertyLabel(d.PropertyID), v, d.Format, d.Raw)
	}
}

func (c *Console) cmdDesc(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: desc <element>")
		return
	}
	element, err := parseElement(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	descs, err := c.node.Stack.Descriptors(element)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(descs) == 0 {
		fmt.Fprintln(c.out, "No sensors on this element")
		return
	}
	for _, d := range descs {
		fmt.Fprintf(c.out, "  0x%04X %-16s %s\n", d.PropertyID, d.Name, strings.Join(d.Formats, ", "))
	}
}

func (c *Console) cmdLast(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: last <element> <property>")
		return
	}
	element, err := parseElement(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	pid, err := parseProperty(args[1])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	r, ok, err := c.node.Stack.Last(element, pid)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if !ok {
		fmt.Fprintln(c.out, "No value yet")
		return
	}
	fmt.Fprintf(c.out, "  %s: %s (%s ago)\n", propertyLabel(uint16(pid)), r.Value,
		time.Since(r.At).Round(time.Millisecond))
}

func (c *Console) cmdState() {
	if c.node.Bootstrap != nil {
		fmt.Fprintf(c.out, "Bootstrap: %s\n", c.node.Bootstrap.State())
	}
	fmt.Fprintf(c.out, "Session:   %s\n", c.node.Stack.SessionID())
	if comp := c.node.Stack.Composition(); comp != nil {
		fmt.Fprintf(c.out, "Elements:  %d (company 0x%04X)\n", comp.ElementCount(), comp.CompanyID())
	}
	if c.node.Settings != nil {
		if st := c.node.Settings.State(); st != nil {
			fmt.Fprintf(c.out, "Settings:  boot #%d at %s (%s)\n",
				st.BootCount, st.LastBootAt.Format(time.RFC3339), c.node.Settings.Path())
		} else {
			fmt.Fprintln(c.out, "Settings:  not initialized")
		}
	}
	if c.node.Simulator != nil {
		fmt.Fprintf(c.out, "Simulation: %v\n", c.node.Simulator.Running())
	}
}

func (c *Console) cmdSim(args []string) {
	if c.node.Simulator == nil || len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: sim start|stop")
		return
	}
	switch args[0] {
	case "start":
		c.node.Simulator.Start(c.context())
	case "stop":
		c.node.Simulator.Stop()
	default:
		fmt.Fprintln(c.out, "Usage: sim start|stop")
	}
}

func (c *Console) context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func parseElement(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid element %q", s)
	}
	return uint8(n), nil
}

// parseProperty accepts a sensor type name or a numeric property ID.
func parseProperty(s string) (sensor.PropertyID, error) {
	if t, ok := sensor.TypeByName(strings.ToLower(s)); ok {
		return t.ID, nil
	}
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid property %q", s)
	}
	return sensor.PropertyID(n), nil
}

func propertyLabel(id uint16) string {
	pid := sensor.PropertyID(id)
	if t, ok := sensor.TypeByID(pid); ok {
		return fmt.Sprintf("%s (%s)", t.Name, pid)
	}
	return pid.String()
}
