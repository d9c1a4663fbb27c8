// SPDX-License-Identifier: GPL-3.0-or-later

package handlers

import (
	"context"
	"net"
	"sync"

	"github.com/netprobe-project/netprobe/internal/enrich"
	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/internal/parsers"
	"github.com/netprobe-project/netprobe/internal/procrun"
	"github.com/netprobe-project/netprobe/internal/validate"
)

// hopEnrichConcurrency bounds how many concurrent ASN lookups a single
// path measurement issues.
const hopEnrichConcurrency = 8

// Traceroute runs a `traceroute` subprocess against the requested
// target and streams its per-hop output through
// [parsers.TracerouteState], enriching the final hop table with ASN
// and reverse-DNS data.
func Traceroute(ctx context.Context, session *Session, options map[string]any) (any, error) {
	opts, err := validate.Traceroute(options)
	if err != nil {
		return nil, wrapf("traceroute", "validate", err)
	}
	if err := validate.CheckNotPrivate(ctx, &net.Resolver{}, opts.Target); err != nil {
		return &measurement.PathResult{RawOutput: err.Error()}, nil
	}

	var state parsers.TracerouteState
	onChunk := func(chunk string, isFinal bool) {
		res := state.Feed(chunk, isFinal)
		if !isFinal {
			_ = session.Progress(pathResultBody(res.RawOutput, res.ResolvedAddress, res.ResolvedHostname, res.Hops), true)
		}
	}

	args := tracerouteArgs(opts)
	runErr := procrun.RunWithTimeout(ctx, session.Config.SubprocessTimeout, onChunk, "traceroute", args...)
	final := state.Feed("", true)

	enrichHopsInPlace(ctx, final.Hops)

	result := pathResultBody(final.RawOutput, final.ResolvedAddress, final.ResolvedHostname, final.Hops)
	if runErr != nil && result.ResolvedAddress == "" {
		result.RawOutput = runErr.Error()
	}
	return result, nil
}

func tracerouteArgs(opts *measurement.TracerouteOptions) []string {
	args := []string{"-n"}
	switch opts.Protocol {
	case "tcp":
		args = append(args, "-T")
	case "udp":
		// traceroute's default probe method.
	case "icmp":
		args = append(args, "-I")
	}
	args = append(args, "-p", opts.Port, opts.Target)
	return args
}

func pathResultBody(raw, addr, hostname string, hops []measurement.Hop) *measurement.PathResult {
	return &measurement.PathResult{
		ResolvedAddress:  addr,
		ResolvedHostname: hostname,
		Hops:             hops,
		RawOutput:        raw,
	}
}

// enrichHopsInPlace fills ASN and reverse-DNS data for every resolved
// hop, using the system resolver for both lookups.
func enrichHopsInPlace(ctx context.Context, hops []measurement.Hop) {
	resolver := &net.Resolver{}
	enrich.EnrichHops(ctx, resolver, hops, hopEnrichConcurrency)

	var wg sync.WaitGroup
	for i := range hops {
		if hops[i].ResolvedAddress == "" || hops[i].ResolvedHostname != "" {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hops[i].ResolvedHostname = enrich.ReverseDNS(ctx, resolver, hops[i].ResolvedAddress)
		}(i)
	}
	wg.Wait()
}
