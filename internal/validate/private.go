// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"context"
	"errors"
	"net"
)

// ErrPrivateDestination is returned when target is, or resolves to, an
// address in private address space.
var ErrPrivateDestination = errors.New("Private IP ranges are not allowed")

// Resolver is the minimal interface the private-address filter needs.
// *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// CheckNotPrivate enforces the safety policy described in spec §4.2:
// a literal target is checked directly; a hostname is resolved and
// its first returned address is checked. This mirrors the upstream
// implementation's known limitation of checking only the first
// resolved address of a multi-homed hostname.
func CheckNotPrivate(ctx context.Context, resolver Resolver, target string) error {
	if ip := net.ParseIP(target); ip != nil {
		if isPrivate(ip) {
			return ErrPrivateDestination
		}
		return nil
	}
	addrs, err := resolver.LookupHost(ctx, target)
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return errors.New("no addresses returned for target")
	}
	ip := net.ParseIP(addrs[0])
	if ip == nil {
		return errors.New("resolver returned an unparseable address")
	}
	if isPrivate(ip) {
		return ErrPrivateDestination
	}
	return nil
}

// isPrivate reports whether ip falls in RFC1918, loopback, link-local,
// unique-local, multicast, or other reserved ranges.
func isPrivate(ip net.IP) bool {
	return ip.IsPrivate() ||
		ip.IsLoopback() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified() ||
		isReserved(ip)
}

// reservedBlocks are ranges [net.IP.IsPrivate] does not already cover:
// IETF protocol assignments, documentation/test ranges, benchmarking,
// and the legacy "this host" /8.
var reservedBlocks = mustParseCIDRs(
	"0.0.0.0/8",
	"192.0.0.0/24",
	"192.0.2.0/24",
	"198.18.0.0/15",
	"198.51.100.0/24",
	"203.0.113.0/24",
	"240.0.0.0/4",
	"100.64.0.0/10", // carrier-grade NAT (RFC 6598)
	"2001:db8::/32",
)

func isReserved(ip net.IP) bool {
	for _, block := range reservedBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, ipnet, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		out = append(out, ipnet)
	}
	return out
}
