// SPDX-License-Identifier: GPL-3.0-or-later

package handlers

import (
	"context"
	"net"
	"strings"

	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/internal/parsers"
	"github.com/netprobe-project/netprobe/internal/procrun"
	"github.com/netprobe-project/netprobe/internal/validate"
)

// DNS runs a `dig` subprocess against the requested name and streams
// its sectioned output through [parsers.DigState].
func DNS(ctx context.Context, session *Session, options map[string]any) (any, error) {
	opts, err := validate.DNS(options)
	if err != nil {
		return nil, wrapf("dns", "validate", err)
	}

	// The target is the name being queried, not a network peer this
	// process connects to; only a caller-supplied resolver is a real
	// destination worth checking.
	if opts.Query.Resolver != "" {
		host := opts.Query.Resolver
		if h, _, splitErr := net.SplitHostPort(host); splitErr == nil {
			host = h
		}
		if err := validate.CheckNotPrivate(ctx, &net.Resolver{}, host); err != nil {
			return &measurement.DNSResult{RawOutput: err.Error()}, nil
		}
	}

	var state parsers.DigState
	onChunk := func(chunk string, isFinal bool) {
		res := state.Feed(chunk, isFinal)
		if !isFinal {
			_ = session.Progress(digResultBody(res), true)
		}
	}

	args := digArgs(opts)
	runErr := procrun.RunWithTimeout(ctx, session.Config.SubprocessTimeout, onChunk, "dig", args...)
	final := state.Feed("", true)
	result := digResultBody(final)
	if runErr != nil && final.RawOutput == "" {
		result.RawOutput = runErr.Error()
	}
	return result, nil
}

func digArgs(opts *measurement.DNSOptions) []string {
	var args []string
	if opts.Query.Resolver != "" {
		args = append(args, "@"+opts.Query.Resolver)
	}
	args = append(args, "-p", opts.Query.Port)
	if strings.EqualFold(opts.Query.Protocol, "tcp") {
		args = append(args, "+tcp")
	}
	if opts.Trace {
		args = append(args, "+trace")
	}
	args = append(args, opts.Target, opts.Query.Type)
	return args
}

func digResultBody(res parsers.DigResult) *measurement.DNSResult {
	return &measurement.DNSResult{
		Answers:   res.Answers,
		Resolver:  res.Resolver,
		Timings:   measurement.DNSTimings{Total: res.QueryTime},
		RawOutput: res.RawOutput,
	}
}
