// Command meshsense-node runs a mesh sensor node against a loopback stack.
//
// The node is built from an embedded preset or a YAML configuration file,
// brought up by the bootstrap sequence and then served by an in-process
// stack that answers sensor queries.
//
// Usage:
//
//	meshsense-node [flags]
//
// Flags:
//
//	-preset string         Embedded node preset (default "occupancy")
//	-config string         Node configuration file (overrides -preset)
//	-log-level string      Log level: debug, info, warn, error (default "info")
//	-settings              Initialize the settings subsystem
//	-settings-path string  Settings state file (default "meshsense-node.json")
//	-protocol-log string   Write a CBOR protocol capture to this file
//	-metrics-addr string   Serve Prometheus metrics on this address
//	-seed uint             Random seed (0 picks one from the clock)
//	-range-policy string   Out-of-range handling: lenient or strict (default "lenient")
//	-strict-range          Shorthand for -range-policy strict
//	-simulate              Issue periodic queries against the node
//	-interval duration     Simulation query interval (default 2s)
//	-interactive           Start the interactive console
//	-read-log string       Print a protocol capture and exit
//	-address uint          Primary unicast address of the node (default 1)
//
// Examples:
//
//	# Reference occupancy node with a simulated query loop
//	meshsense-node -simulate -log-level debug
//
//	# Environment node with settings, metrics and a capture file
//	meshsense-node -preset environment -settings -metrics-addr :9102 -protocol-log node.mlog
//
//	# Inspect a capture
//	meshsense-node -read-log node.mlog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/meshsense/meshsense-go/cmd/meshsense-log/commands"
	"github.com/meshsense/meshsense-go/cmd/meshsense-node/interactive"
	"github.com/meshsense/meshsense-go/pkg/bootstrap"
	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/examples"
	"github.com/meshsense/meshsense-go/pkg/log"
	"github.com/meshsense/meshsense-go/pkg/metrics"
	"github.com/meshsense/meshsense-go/pkg/persistence"
	"github.com/meshsense/meshsense-go/pkg/profile"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/service"
	"github.com/meshsense/meshsense-go/pkg/version"
)

// Config holds the command line configuration.
type Config struct {
	Preset       string
	ConfigFile   string
	LogLevel     string
	Settings     bool
	SettingsPath string
	ProtocolLog  string
	MetricsAddr  string
	Seed         uint64
	RangePolicy  string
	StrictRange  bool
	Simulate     bool
	Interval     time.Duration
	Interactive  bool
	ReadLog      string
	Address      uint
}

var config Config

func init() {
	flag.StringVar(&config.Preset, "preset", examples.DefaultPreset, "Embedded node preset: "+strings.Join(examples.Presets(), ", "))
	flag.StringVar(&config.ConfigFile, "config", "", "Node configuration file (overrides -preset)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&config.Settings, "settings", false, "Initialize the settings subsystem")
	flag.StringVar(&config.SettingsPath, "settings-path", "meshsense-node.json", "Settings state file")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "Write a CBOR protocol capture to this file")
	flag.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9102)")
	flag.Uint64Var(&config.Seed, "seed", 0, "Random seed (0 picks one from the clock)")
	flag.StringVar(&config.RangePolicy, "range-policy", "lenient", "Out-of-range handling: lenient or strict")
	flag.BoolVar(&config.StrictRange, "strict-range", false, "Shorthand for -range-policy strict")
	flag.BoolVar(&config.Simulate, "simulate", false, "Issue periodic queries against the node")
	flag.DurationVar(&config.Interval, "interval", 2*time.Second, "Simulation query interval")
	flag.BoolVar(&config.Interactive, "interactive", false, "Start the interactive console")
	flag.StringVar(&config.ReadLog, "read-log", "", "Print a protocol capture and exit")
	flag.UintVar(&config.Address, "address", 0x0001, "Primary unicast address of the node")
}

func main() {
	flag.Parse()

	if config.ReadLog != "" {
		if err := commands.RunView(config.ReadLog, log.Filter{}, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	level, err := parseLevel(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}
	if _, err := rangePolicy(config); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	// The console owns the terminal; route log output through it.
	var (
		console *interactive.Console
		logOut  io.Writer = os.Stderr
	)
	if config.Interactive {
		console, err = interactive.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start console: %v\n", err)
			os.Exit(1)
		}
		logOut = console.Stderr()
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	if err := run(logger, console); err != nil {
		logger.Error("node failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, console *interactive.Console) error {
	logger.Info("meshsense node", "version", version.Current)

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	policy, err := rangePolicy(config)
	if err != nil {
		return err
	}
	factory := sensor.NewFactory(sensor.NewRandSource(seed), sensor.NewEncoder(policy, logger))

	node, err := loadNode(factory)
	if err != nil {
		return err
	}

	protocolLogger, closeCapture, err := protocolLogging(logger)
	if err != nil {
		return err
	}
	defer closeCapture()

	m := metrics.New()
	if config.MetricsAddr != "" {
		srv := metrics.NewServer(config.MetricsAddr, metrics.DefaultPath, m, logger)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Stop(ctx)
		}()
	}

	stack := service.NewStack(service.Config{
		Address:        uint16(config.Address),
		Logger:         logger,
		ProtocolLogger: protocolLogger,
		Metrics:        m,
	})

	catalog, err := profile.Default()
	if err != nil {
		return fmt.Errorf("profile catalog: %w", err)
	}

	settings := persistence.NewSettingsStore(config.SettingsPath)
	seq := bootstrap.New(bootstrap.Config{
		Node:            node,
		SettingsEnabled: config.Settings,
		Registrar:       stack,
		Settings:        settings,
		Checker:         catalog,
		Logger:          logger,
		ProtocolLogger:  protocolLogger,
		SessionID:       stack.SessionID(),
		Metrics:         m,
	})

	comp, err := seq.Run()
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	stack.Attach(comp)

	if st := settings.State(); st != nil {
		logger.Info("settings loaded", "bootCount", st.BootCount, "path", settings.Path())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := newSimulation(stack, logger, config.Interval)
	if config.Simulate {
		sim.Start(ctx)
	}

	if console != nil {
		console.Attach(interactive.Node{
			Stack:     stack,
			Bootstrap: seq,
			Settings:  settings,
			Catalog:   catalog,
			Simulator: sim,
		})
		console.Run(ctx, cancel)
	} else {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal", "signal", sig)
	}

	sim.Stop()
	logger.Info("shutting down")
	return nil
}

// loadNode reads the node configuration from -config or -preset.
func loadNode(factory *sensor.Factory) (composition.Config, error) {
	var (
		fc  *composition.FileConfig
		err error
	)
	if config.ConfigFile != "" {
		fc, err = composition.LoadFile(config.ConfigFile)
	} else {
		fc, err = examples.LoadPreset(config.Preset)
	}
	if err != nil {
		return composition.Config{}, err
	}
	return fc.Resolve(factory)
}

// protocolLogging returns the protocol event sink and a function closing it.
// Events always go to the slog logger at debug level and additionally to a
// capture file when -protocol-log is set.
func protocolLogging(logger *slog.Logger) (log.Logger, func(), error) {
	adapter := log.NewSlogAdapter(logger)
	if config.ProtocolLog == "" {
		return adapter, func() {}, nil
	}

	fileLogger, err := log.NewFileLogger(config.ProtocolLog)
	if err != nil {
		return nil, nil, fmt.Errorf("protocol log: %w", err)
	}
	closeFn := func() {
		if n := fileLogger.Dropped(); n > 0 {
			logger.Warn("protocol events dropped", "count", n)
		}
		_ = fileLogger.Close()
	}
	logger.Info("protocol capture enabled", "path", config.ProtocolLog)
	return log.NewMultiLogger(fileLogger, adapter), closeFn, nil
}

// rangePolicy resolves -range-policy, with -strict-range taking precedence.
func rangePolicy(cfg Config) (sensor.RangePolicy, error) {
	if cfg.StrictRange {
		return sensor.RangeStrict, nil
	}
	return sensor.ParseRangePolicy(strings.ToLower(cfg.RangePolicy))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
