// SPDX-License-Identifier: GPL-3.0-or-later

// Package enrich adds ASN and reverse-DNS context to measurement
// results after the underlying tool has run, by issuing its own small
// DNS lookups against public infrastructure (Team Cymru's whois-over-DNS
// mirror, and the stub resolver for PTR records).
package enrich

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/netprobe-project/netprobe/internal/measurement"
)

// TXTResolver is the minimal interface ASN lookups need. *net.Resolver
// satisfies it.
type TXTResolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// LookupASN resolves the origin ASN(s) announcing addr using Team
// Cymru's DNS-based whois mirror: a TXT query against a name built
// from the address's octets/nibbles reversed under origin.asn.cymru.com
// (or origin6.asn.cymru.com for IPv6) returns a pipe-separated record
// whose first field is a space-separated list of AS numbers.
func LookupASN(ctx context.Context, resolver TXTResolver, addr string) ([]int, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return nil, errors.New("enrich: not an IP address")
	}
	name, err := cymruQueryName(ip)
	if err != nil {
		return nil, err
	}
	records, err := resolver.LookupTXT(ctx, name)
	if err != nil {
		return nil, err
	}
	var asns []int
	seen := make(map[int]bool)
	for _, record := range records {
		fields := strings.Split(record, "|")
		if len(fields) == 0 {
			continue
		}
		for _, part := range strings.Fields(fields[0]) {
			n, err := strconv.Atoi(part)
			if err != nil || seen[n] {
				continue
			}
			seen[n] = true
			asns = append(asns, n)
		}
	}
	return asns, nil
}

func cymruQueryName(ip net.IP) (string, error) {
	if v4 := ip.To4(); v4 != nil {
		return strconv.Itoa(int(v4[3])) + "." + strconv.Itoa(int(v4[2])) + "." +
			strconv.Itoa(int(v4[1])) + "." + strconv.Itoa(int(v4[0])) +
			".origin.asn.cymru.com", nil
	}
	v6 := ip.To16()
	if v6 == nil {
		return "", errors.New("enrich: unrecognized IP address family")
	}
	var nibbles []string
	for i := len(v6) - 1; i >= 0; i-- {
		nibbles = append(nibbles, strconv.FormatUint(uint64(v6[i]&0x0f), 16))
		nibbles = append(nibbles, strconv.FormatUint(uint64(v6[i]>>4), 16))
	}
	return strings.Join(nibbles, ".") + ".origin6.asn.cymru.com", nil
}

// EnrichHops fills the ASN field of every hop that has a resolved
// address, fanning the lookups out across at most concurrency workers
// so a slow or unresponsive path element never serializes the whole
// traceroute/mtr report. Lookup failures are silently skipped: ASN
// enrichment is best-effort and must never fail the measurement.
func EnrichHops(ctx context.Context, resolver TXTResolver, hops []measurement.Hop, concurrency int) {
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i := range hops {
		if hops[i].ResolvedAddress == "" {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			asns, err := LookupASN(ctx, resolver, hops[i].ResolvedAddress)
			if err != nil {
				return
			}
			hops[i].ASN = asns
		}(i)
	}
	wg.Wait()
}
