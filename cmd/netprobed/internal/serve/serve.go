// SPDX-License-Identifier: GPL-3.0-or-later

// Package serve implements the `netprobed serve` command.
package serve

import (
	"bufio"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/netprobe-project/netprobe/internal/config"
	"github.com/netprobe-project/netprobe/internal/controlchannel"
	"github.com/netprobe-project/netprobe/internal/dispatch"
	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/pkg/common/cliutils"
)

//go:embed README.md
var readme string

// NewCommand creates the `netprobed serve` [cliutils.Command].
func NewCommand() cliutils.Command {
	return command{}
}

type command struct{}

var _ cliutils.Command = command{}

// Help implements [cliutils.Command].
func (cmd command) Help(env cliutils.Environment, argv ...string) error {
	fmt.Fprintf(env.Stdout(), "%s\n", readme)
	return nil
}

// wireMessage is the envelope every line of the NDJSON stream carries,
// in both directions.
type wireMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Main implements [cliutils.Command]. It blocks until ctx is canceled
// (by climain's SIGINT handler) or stdin reaches EOF.
func (cmd command) Main(ctx context.Context, env cliutils.Environment, argv ...string) error {
	if cliutils.HelpRequested(argv...) {
		return cmd.Help(env, argv...)
	}

	logger := slog.New(slog.NewJSONHandler(env.Stderr(), nil))
	cfg := config.FromEnv()

	var mu sync.Mutex
	emit := controlchannel.EmitterFunc(func(name string, payload any) error {
		mu.Lock()
		defer mu.Unlock()
		return writeEvent(env.Stdout(), name, payload)
	})

	d := dispatch.New(emit, cfg, logger)
	if err := controlchannel.Ready(emit); err != nil {
		return fmt.Errorf("netprobed serve: cannot announce readiness: %w", err)
	}

	reqs := make(chan *measurement.Request)
	go readRequests(ctx, env.Stdin(), reqs, logger)
	d.Listen(ctx, reqs)
	return nil
}

// readRequests decodes the stdin event stream and forwards every
// well-formed probe:measurement:request onto reqs, closing reqs once
// stdin is exhausted or ctx is canceled. Malformed lines are logged
// and skipped rather than killing the whole stream.
func readRequests(ctx context.Context, stdin io.Reader, reqs chan<- *measurement.Request, logger *slog.Logger) {
	defer close(reqs)
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg wireMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			logger.Warn("netprobed serve: malformed event on stdin", slog.Any("error", err))
			continue
		}
		if msg.Event != controlchannel.EventMeasurementRequest {
			continue
		}
		var req measurement.Request
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			logger.Warn("netprobed serve: malformed measurement request", slog.Any("error", err))
			continue
		}
		select {
		case reqs <- &req:
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("netprobed serve: reading stdin", slog.Any("error", err))
	}
}

func writeEvent(w io.Writer, name string, payload any) error {
	line, err := json.Marshal(wireMessage{Event: name, Payload: mustMarshal(payload)})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", line)
	return err
}

// mustMarshal re-encodes payload as a [json.RawMessage] so wireMessage
// marshals it as a nested object rather than a doubly-escaped string.
func mustMarshal(payload any) json.RawMessage {
	raw, err := json.Marshal(payload)
	if err != nil {
		return json.RawMessage(`{"error":"failed to encode event payload"}`)
	}
	return raw
}
