// SPDX-License-Identifier: GPL-3.0-or-later

package handlers

import (
	"context"
	"net"
	"strconv"

	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/internal/parsers"
	"github.com/netprobe-project/netprobe/internal/procrun"
	"github.com/netprobe-project/netprobe/internal/validate"
)

// Ping runs a `ping` subprocess against the requested target and
// streams its per-packet output through [parsers.PingState].
func Ping(ctx context.Context, session *Session, options map[string]any) (any, error) {
	opts, err := validate.Ping(options)
	if err != nil {
		return nil, wrapf("ping", "validate", err)
	}
	if err := validate.CheckNotPrivate(ctx, &net.Resolver{}, opts.Target); err != nil {
		return &measurement.PingResult{RawOutput: err.Error()}, nil
	}

	var state parsers.PingState
	onChunk := func(chunk string, isFinal bool) {
		res := state.Feed(chunk, isFinal)
		if !isFinal {
			_ = session.Progress(pingResultBody(res), true)
		}
	}

	args := []string{"-c", strconv.Itoa(opts.Packets), opts.Target}
	runErr := procrun.RunWithTimeout(ctx, session.Config.SubprocessTimeout, onChunk, "ping", args...)
	final := state.Feed("", true)
	result := pingResultBody(final)
	if runErr != nil && result.ResolvedAddress == "" {
		result.RawOutput = runErr.Error()
	}
	return result, nil
}

func pingResultBody(res parsers.PingResult) *measurement.PingResult {
	return &measurement.PingResult{
		ResolvedAddress:  res.ResolvedAddress,
		ResolvedHostname: res.ResolvedHostname,
		Loss:             res.Loss,
		Min:              res.Min,
		Avg:              res.Avg,
		Max:              res.Max,
		Times:            res.Times,
		RawOutput:        res.RawOutput,
	}
}
