package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/meshsense/meshsense-go/pkg/service"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

// simulatedSrc is the unicast address the simulated client queries from.
const simulatedSrc = 0x7F01

// simulation periodically sends encoded Get queries for every element of
// the attached composition through the stack.
type simulation struct {
	stack    *service.Stack
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	nextMsg uint32
}

func newSimulation(stack *service.Stack, logger *slog.Logger, interval time.Duration) *simulation {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &simulation{stack: stack, logger: logger, interval: interval}
}

// Start runs the query loop until ctx is done or Stop is called.
func (s *simulation) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	s.logger.Info("[SIM] simulation started", "interval", s.interval)
}

// Stop ends the query loop and waits for it to exit.
func (s *simulation) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("[SIM] simulation stopped")
}

// Running reports whether the query loop is active.
func (s *simulation) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *simulation) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick queries every element once for all of its sensors.
func (s *simulation) tick(ctx context.Context) {
	comp := s.stack.Composition()
	if comp == nil {
		return
	}

	for _, el := range comp.Elements() {
		s.nextMsg++
		req := &wire.Request{
			MessageID: s.nextMsg,
			Operation: wire.OpGet,
			Element:   el.Index(),
		}
		data, err := wire.EncodeRequest(req)
		if err != nil {
			s.logger.Error("[SIM] encode query", "error", err)
			return
		}

		out, err := s.stack.HandleQuery(ctx, simulatedSrc, data)
		if err != nil {
			s.logger.Error("[SIM] query failed", "element", el.Index(), "error", err)
			continue
		}
		resp, err := wire.DecodeResponse(out)
		if err != nil {
			s.logger.Error("[SIM] decode reply", "error", err)
			continue
		}

		if !resp.IsSuccess() {
			s.logger.Warn("[SIM] query rejected", "element", el.Index(), "status", resp.Status)
			continue
		}
		for _, v := range resp.Values {
			s.logger.Info("[SIM] reading",
				"element", el.Index(),
				"property", propertyName(v.PropertyID),
				"value", formatValue(v))
		}
	}
}
