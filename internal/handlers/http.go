// SPDX-License-Identifier: GPL-3.0-or-later

package handlers

import (
	"context"
	"net"

	"github.com/netprobe-project/netprobe/internal/httpmeasure"
	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/internal/netcore"
	"github.com/netprobe-project/netprobe/internal/validate"
)

// HTTP drives an outbound HTTP request directly, via
// [httpmeasure.Run]. Unlike the other kinds it never shells out to an
// external binary, so there is no incremental progress to stream: the
// round trip either completes or it doesn't.
func HTTP(ctx context.Context, session *Session, options map[string]any) (any, error) {
	opts, err := validate.HTTP(options)
	if err != nil {
		return nil, wrapf("http", "validate", err)
	}

	if err := validate.CheckNotPrivate(ctx, &net.Resolver{}, opts.Target); err != nil {
		return &measurement.HTTPResult{RawOutput: err.Error()}, nil
	}

	netx := netcore.NewNetwork()
	if opts.Query.Resolver != "" {
		netx.Resolver = &resolverAt{addr: opts.Query.Resolver}
	}

	// httpmeasure.Run only returns a Go error for a malformed request
	// (bad method/URL); a network-level failure comes back as a result
	// with rawOutput already shaped as "<message> - <code>".
	result, err := httpmeasure.Run(ctx, netx, opts, session.Config.HTTPBodyCapBytes)
	if err != nil {
		return &measurement.HTTPResult{RawOutput: err.Error()}, nil
	}
	return result, nil
}

// resolverAt resolves every lookup against a single fixed nameserver,
// used when a measurement requests a non-default resolver.
type resolverAt struct {
	addr string
}

func (r *resolverAt) LookupHost(ctx context.Context, host string) ([]string, error) {
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, r.addr)
		},
	}
	return resolver.LookupHost(ctx, host)
}
