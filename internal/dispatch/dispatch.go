// SPDX-License-Identifier: GPL-3.0-or-later

// Package dispatch wires an inbound probe:measurement:request to the
// handler for its kind and guarantees exactly one terminal
// probe:measurement:result is emitted for it, no matter what goes
// wrong along the way. A handler panicking, a handler returning an
// error, or a request naming an unrecognized kind all surface as an
// ordinary result with a populated rawOutput rather than taking down
// the probe.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/netprobe-project/netprobe/internal/config"
	"github.com/netprobe-project/netprobe/internal/controlchannel"
	"github.com/netprobe-project/netprobe/internal/handlers"
	"github.com/netprobe-project/netprobe/internal/measurement"
)

// Dispatcher routes measurement requests to the registered handler for
// their kind and funnels every outcome, success, validation failure,
// or panic, into exactly one result event.
type Dispatcher struct {
	registry handlers.Registry
	emitter  controlchannel.Emitter
	logger   *slog.Logger
	config   config.Config
}

// New builds a [Dispatcher] using the default handler registry.
func New(emitter controlchannel.Emitter, cfg config.Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		registry: handlers.NewRegistry(),
		emitter:  emitter,
		logger:   logger,
		config:   cfg,
	}
}

// Dispatch runs req to completion and emits its terminal result. It
// never returns an error to the caller: failures are reported through
// the emitted result body's rawOutput field instead, matching how the
// orchestrator expects every request to be answered exactly once.
func (d *Dispatcher) Dispatch(ctx context.Context, req *measurement.Request) {
	body := d.run(ctx, req)
	envelope := measurement.Envelope{
		TestID:        req.TestID,
		MeasurementID: req.MeasurementID,
		Body:          body,
	}
	if err := d.emitter.Emit(controlchannel.EventMeasurementResult, envelope); err != nil {
		d.logger.Error("dispatch: failed to emit result",
			slog.String("measurementId", req.MeasurementID),
			slog.Any("error", err))
	}
}

// run recovers from a handler panic so that a bug in one measurement
// kind's tool-driving code can never take the whole probe down with
// it; the panic is reported as a normal, if unhelpful, result.
func (d *Dispatcher) run(ctx context.Context, req *measurement.Request) (body any) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch: handler panicked",
				slog.String("measurementId", req.MeasurementID),
				slog.Any("kind", req.Type()),
				slog.Any("panic", r))
			body = rawOutputOnly(fmt.Sprintf("internal error: %v", r))
		}
	}()

	kind := measurement.Kind(req.Type())
	handler, ok := d.registry[kind]
	if !ok {
		return rawOutputOnly(fmt.Sprintf("unsupported measurement type %q", kind))
	}

	session := &handlers.Session{
		MeasurementID: req.MeasurementID,
		TestID:        req.TestID,
		Emitter:       d.emitter,
		Config:        d.config,
	}
	result, err := handler(ctx, session, req.Options)
	if err != nil {
		d.logger.Warn("dispatch: handler returned an error",
			slog.String("measurementId", req.MeasurementID),
			slog.String("kind", string(kind)),
			slog.Any("error", err))
		return rawOutputOnly(err.Error())
	}
	return result
}

// Listen consumes requests off reqs, running each one concurrently on
// its own goroutine so that a slow traceroute never delays a ping
// queued right after it. It blocks until ctx is canceled or reqs is
// closed, then waits for every in-flight dispatch to finish before
// returning.
func (d *Dispatcher) Listen(ctx context.Context, reqs <-chan *measurement.Request) {
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-reqs:
			if !ok {
				return
			}
			wg.Add(1)
			go func(req *measurement.Request) {
				defer wg.Done()
				d.Dispatch(ctx, req)
			}(req)
		}
	}
}

// rawOutputBody is the minimal result body for a request that never
// reached a handler's normal success path. It has no kind-specific
// shape, since dispatch doesn't know which one would have applied.
type rawOutputBody struct {
	RawOutput string `json:"rawOutput"`
}

func rawOutputOnly(msg string) any {
	return rawOutputBody{RawOutput: msg}
}
