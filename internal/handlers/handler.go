// SPDX-License-Identifier: GPL-3.0-or-later

// Package handlers implements one measurement kind each: dns, ping,
// traceroute, mtr, and http. Every handler follows the same shape —
// validate options, reject private destinations, drive the
// underlying tool, stream progress, enrich the final result — but the
// tool-invocation step differs: dns/ping/traceroute/mtr shell out via
// internal/procrun and parse text with internal/parsers, while http
// drives internal/httpmeasure directly.
package handlers

import (
	"context"
	"fmt"

	"github.com/netprobe-project/netprobe/internal/config"
	"github.com/netprobe-project/netprobe/internal/controlchannel"
	"github.com/netprobe-project/netprobe/internal/measurement"
)

// Session carries the per-request identifiers and the emitter a
// handler streams progress through while it runs.
type Session struct {
	MeasurementID string
	TestID        string
	Emitter       controlchannel.Emitter
	Config        config.Config
}

// Progress publishes an intermediate result snapshot. overwrite tells
// the orchestrator whether this progress event replaces the previous
// one (true, the common case for an incrementally-refined result) or
// should be appended to a log (false).
func (s *Session) Progress(body any, overwrite bool) error {
	return s.Emitter.Emit(controlchannel.EventMeasurementProgress, measurement.Progress{
		TestID:        s.TestID,
		MeasurementID: s.MeasurementID,
		Overwrite:     overwrite,
		Body:          body,
	})
}

// Handler runs one measurement kind to completion. It returns the
// final result body on success; on error the dispatcher is
// responsible for still emitting exactly one terminal result (see
// internal/dispatch), so a Handler is free to return an error without
// emitting anything itself.
type Handler func(ctx context.Context, session *Session, options map[string]any) (any, error)

// Registry maps a measurement kind to the handler that implements it.
type Registry map[measurement.Kind]Handler

// NewRegistry returns the registry wired with every measurement kind
// this module implements.
func NewRegistry() Registry {
	return Registry{
		measurement.KindDNS:        DNS,
		measurement.KindPing:       Ping,
		measurement.KindTraceroute: Traceroute,
		measurement.KindMTR:        MTR,
		measurement.KindHTTP:       HTTP,
	}
}

// wrapf wraps err with a handler-specific prefix, following the
// teacher's `fmt.Errorf("...: %w", err)` convention at every layer
// boundary.
func wrapf(kind, step string, err error) error {
	return fmt.Errorf("handlers: %s: %s: %w", kind, step, err)
}
