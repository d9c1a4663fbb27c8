// SPDX-License-Identifier: GPL-3.0-or-later

package parsers

import (
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/netprobe-project/netprobe/internal/measurement"
)

// hopNumberRe matches the leading hop index of a traceroute line, e.g.
// " 3  203.0.113.1 (203.0.113.1)  15.234 ms  15.123 ms  15.001 ms".
var hopNumberRe = regexp.MustCompile(`^\s*(\d+)\s+(.*)$`)

// hopAddrParenRe matches a parenthesized address token following a
// hostname, e.g. "(203.0.113.1)".
var hopAddrParenRe = regexp.MustCompile(`^\(([0-9a-fA-F:.]+)\)$`)

// hopRTTRe matches a single RTT sample, e.g. "15.234".
var hopRTTRe = regexp.MustCompile(`^([\d.]+)$`)

// tracerouteHeaderRe matches traceroute's banner line, e.g.
// "traceroute to example.com (93.184.216.34), 30 hops max, 60 byte packets".
var tracerouteHeaderRe = regexp.MustCompile(`^traceroute to\s+(\S+)\s+\(([0-9a-fA-F:.]+)\)`)

// TracerouteState is the incremental parser state for `traceroute` output.
type TracerouteState struct {
	split     LineSplitter
	raw       strings.Builder
	target    string
	addr      string
	hops      []measurement.Hop
	firstSeen map[string]int
	finalized bool
}

// TracerouteResult is the rendering returned after each
// [TracerouteState.Feed] call.
type TracerouteResult struct {
	RawOutput        string
	ResolvedAddress  string
	ResolvedHostname string
	Hops             []measurement.Hop
}

// Feed advances the parser with a new chunk of stdout, see [DigState.Feed]
// for the contract.
func (s *TracerouteState) Feed(chunk string, isFinal bool) TracerouteResult {
	lines := s.split.Feed(chunk)
	if isFinal {
		lines = append(lines, s.split.Flush()...)
	}
	if !s.finalized {
		for _, line := range lines {
			s.consume(line)
		}
	}
	if isFinal {
		s.finalized = true
	}
	return TracerouteResult{
		RawOutput:        s.raw.String(),
		ResolvedAddress:  s.addr,
		ResolvedHostname: s.target,
		Hops:             s.hops,
	}
}

func (s *TracerouteState) consume(line string) {
	if s.raw.Len() > 0 {
		s.raw.WriteByte('\n')
	}
	s.raw.WriteString(line)

	if s.target == "" {
		if m := tracerouteHeaderRe.FindStringSubmatch(line); m != nil {
			s.target, s.addr = m[1], m[2]
			return
		}
	}
	m := hopNumberRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	hopNum, err := strconv.Atoi(m[1])
	if err != nil {
		return
	}
	hop := parseHopFields(fields(m[2]))
	if hop.ResolvedAddress != "" {
		hop.Duplicate = s.markDuplicate(hopNum, hop.ResolvedAddress)
	}
	for len(s.hops) < hopNum {
		s.hops = append(s.hops, measurement.Hop{ASN: []int{}, Timings: []measurement.HopTiming{}})
	}
	s.hops[hopNum-1] = hop
}

// markDuplicate records the first hop index at which addr was seen
// and reports whether hopNum is a later, different hop answering from
// the same address (e.g. ECMP routing).
func (s *TracerouteState) markDuplicate(hopNum int, addr string) bool {
	if s.firstSeen == nil {
		s.firstSeen = map[string]int{}
	}
	first, seen := s.firstSeen[addr]
	if !seen {
		s.firstSeen[addr] = hopNum
		return false
	}
	return first != hopNum
}

// parseHopFields parses the tokens following the hop index: an
// optional "name (addr)" pair, or a bare address as `traceroute -n`
// prints it, followed by a sequence of either "<float> ms" pairs or
// "*" timeouts.
func parseHopFields(tokens []string) measurement.Hop {
	hop := measurement.Hop{ASN: []int{}, Timings: []measurement.HopTiming{}}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "*":
			hop.Timings = append(hop.Timings, measurement.HopTiming{})
		case i+1 < len(tokens) && hopAddrParenRe.MatchString(tokens[i+1]):
			am := hopAddrParenRe.FindStringSubmatch(tokens[i+1])
			if hop.ResolvedAddress == "" {
				hop.ResolvedHostname, hop.ResolvedAddress = tok, am[1]
			}
			i++
		case net.ParseIP(tok) != nil && (i+1 == len(tokens) || tokens[i+1] != "ms"):
			if hop.ResolvedAddress == "" {
				hop.ResolvedAddress = tok
			}
		case hopRTTRe.MatchString(tok):
			if i+1 < len(tokens) && tokens[i+1] == "ms" {
				v, err := strconv.ParseFloat(tok, 64)
				if err == nil {
					hop.Timings = append(hop.Timings, measurement.HopTiming{RTT: &v})
				}
				i++
			}
		}
	}
	return hop
}
