// SPDX-License-Identifier: GPL-3.0-or-later

package httpmeasure

import (
	"context"
	"net"

	"github.com/netprobe-project/netprobe/internal/netcore"
)

// tracingResolver wraps a [netcore.Resolver] to record the DNS phase
// boundaries into pt.
type tracingResolver struct {
	inner netcore.Resolver
	pt    *phaseTimes
}

func (r *tracingResolver) LookupHost(ctx context.Context, domain string) ([]string, error) {
	r.pt.mark(&r.pt.dnsStart)
	addrs, err := r.inner.LookupHost(ctx, domain)
	r.pt.mark(&r.pt.dnsEnd)
	return addrs, err
}

// tracingDial wraps a [netcore.DialContextFunc] to record the TCP
// connect phase boundaries into pt.
func tracingDial(inner netcore.DialContextFunc, pt *phaseTimes) netcore.DialContextFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		pt.mark(&pt.tcpStart)
		conn, err := inner(ctx, network, address)
		pt.mark(&pt.tcpEnd)
		return conn, err
	}
}
