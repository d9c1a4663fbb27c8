// SPDX-License-Identifier: GPL-3.0-or-later

package handlers

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/internal/parsers"
	"github.com/netprobe-project/netprobe/internal/procrun"
	"github.com/netprobe-project/netprobe/internal/validate"
)

// MTR runs an `mtr --raw` subprocess against the requested target and
// streams its per-round output through [parsers.MTRState], enriching
// the final hop table the same way [Traceroute] does.
func MTR(ctx context.Context, session *Session, options map[string]any) (any, error) {
	opts, err := validate.MTR(options)
	if err != nil {
		return nil, wrapf("mtr", "validate", err)
	}
	if err := validate.CheckNotPrivate(ctx, &net.Resolver{}, opts.Target); err != nil {
		return &measurement.PathResult{RawOutput: err.Error()}, nil
	}

	var state parsers.MTRState
	onChunk := func(chunk string, isFinal bool) {
		res := state.Feed(chunk, isFinal)
		if !isFinal {
			_ = session.Progress(pathResultBody(res.RawOutput, "", "", res.Hops), true)
		}
	}

	args := mtrArgs(opts, session.Config.MTRInterval)
	runErr := procrun.RunWithTimeout(ctx, session.Config.SubprocessTimeout, onChunk, "mtr", args...)
	final := state.Feed("", true)

	enrichHopsInPlace(ctx, final.Hops)

	result := pathResultBody(final.RawOutput, resolveTargetAddress(ctx, opts.Target), "", final.Hops)
	if runErr != nil && len(result.Hops) == 0 {
		result.RawOutput = runErr.Error()
	}
	return result, nil
}

// resolveTargetAddress resolves target's first address for display
// purposes. mtr's raw output reports only hop addresses, never the
// destination itself, so the handler resolves it independently. An
// empty string is returned on failure; this is cosmetic, not fatal.
func resolveTargetAddress(ctx context.Context, target string) string {
	if ip := net.ParseIP(target); ip != nil {
		return ip.String()
	}
	addrs, err := (&net.Resolver{}).LookupHost(ctx, target)
	if err != nil || len(addrs) == 0 {
		return ""
	}
	return addrs[0]
}

func mtrArgs(opts *measurement.MTROptions, interval time.Duration) []string {
	args := []string{"--raw", "-n", "-c", strconv.Itoa(opts.Packets), "-i", strconv.FormatFloat(interval.Seconds(), 'f', -1, 64)}
	switch opts.Protocol {
	case "tcp":
		args = append(args, "--tcp")
	case "udp":
		args = append(args, "--udp")
	}
	args = append(args, "-P", opts.Port, opts.Target)
	return args
}
