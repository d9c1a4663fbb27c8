// SPDX-License-Identifier: GPL-3.0-or-later

package enrich

import (
	"context"
	"strings"
	"time"
)

// PTRResolver is the minimal interface reverse-DNS lookups need.
// *net.Resolver satisfies it.
type PTRResolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// DefaultReverseDNSTimeout bounds how long a single PTR lookup is
// allowed to hold up hop enrichment; intermediate routers frequently
// have no PTR record at all, and public resolvers can take seconds to
// give up on that lookup.
const DefaultReverseDNSTimeout = 2 * time.Second

// ReverseDNS resolves addr's hostname via PTR lookup, bounded by
// DefaultReverseDNSTimeout regardless of the parent context's own
// deadline. An empty string (not an error) is returned when the
// address has no PTR record, matching the "absent -> empty string"
// convention used throughout the result model.
func ReverseDNS(ctx context.Context, resolver PTRResolver, addr string) string {
	ctx, cancel := context.WithTimeout(ctx, DefaultReverseDNSTimeout)
	defer cancel()

	names, err := resolver.LookupAddr(ctx, addr)
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}
