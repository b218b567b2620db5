package service

import (
	"context"
	"fmt"
	"time"

	"github.com/meshsense/meshsense-go/pkg/log"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

// HandleQuery decodes a CBOR request from src, processes it and returns the
// encoded response. Only undecodable input yields an error; every decoded
// request gets a response.
func (s *Stack) HandleQuery(ctx context.Context, src uint16, data []byte) ([]byte, error) {
	req, err := wire.DecodeRequest(data)
	if err != nil {
		s.warnLog("dropping malformed query", "src", src, "error", err)
		s.logDecodeError(src, err)
		return nil, fmt.Errorf("decode query: %w", err)
	}

	resp := s.Handle(ctx, src, req)
	out, err := wire.EncodeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}

// Handle processes a decoded request.
func (s *Stack) Handle(ctx context.Context, src uint16, req *wire.Request) *wire.Response {
	start := time.Now()
	s.logQuery(src, req)

	s.mu.Lock()
	var resp *wire.Response
	switch req.Operation {
	case wire.OpGet:
		msg := &sensor.MsgContext{
			Src:     src,
			Dst:     s.cfg.Address + uint16(req.Element),
			Element: req.Element,
			TID:     req.MessageID,
		}
		values, err := s.get(ctx, msg, sensor.PropertyID(req.PropertyID))
		resp = &wire.Response{MessageID: req.MessageID, Status: StatusOf(err), Values: values}
	case wire.OpDescriptorGet:
		descs, err := s.descriptors(req.Element)
		resp = &wire.Response{MessageID: req.MessageID, Status: StatusOf(err), Descriptors: descs}
	default:
		resp = &wire.Response{MessageID: req.MessageID, Status: StatusOf(ErrUnsupported)}
	}
	s.mu.Unlock()

	s.logReply(src, req, resp, time.Since(start))
	return resp
}

func (s *Stack) logQuery(src uint16, req *wire.Request) {
	if s.cfg.ProtocolLogger == nil {
		return
	}
	op := req.Operation
	element := req.Element
	s.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Direction: log.DirectionIn,
		Layer:     log.LayerSensor,
		Category:  log.CategoryQuery,
		Src:       src,
		Element:   &element,
		Query: &log.QueryEvent{
			MessageID:  req.MessageID,
			Operation:  &op,
			PropertyID: req.PropertyID,
		},
	})
}

func (s *Stack) logReply(src uint16, req *wire.Request, resp *wire.Response, took time.Duration) {
	if s.cfg.ProtocolLogger == nil {
		return
	}
	status := resp.Status
	element := req.Element
	s.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Direction: log.DirectionOut,
		Layer:     log.LayerSensor,
		Category:  log.CategoryQuery,
		Src:       src,
		Element:   &element,
		Query: &log.QueryEvent{
			MessageID:      resp.MessageID,
			PropertyID:     req.PropertyID,
			Status:         &status,
			Values:         resp.Values,
			ProcessingTime: &took,
		},
	})
}

func (s *Stack) logDecodeError(src uint16, err error) {
	if s.cfg.ProtocolLogger == nil {
		return
	}
	s.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Direction: log.DirectionIn,
		Layer:     log.LayerWire,
		Category:  log.CategoryError,
		Src:       src,
		Error: &log.ErrorEventData{
			Layer:   log.LayerWire,
			Message: err.Error(),
			Code:    wire.StatusInvalidParameter.String(),
			Context: "decode query",
		},
	})
}
