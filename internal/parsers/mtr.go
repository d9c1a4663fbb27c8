// SPDX-License-Identifier: GPL-3.0-or-later

package parsers

import (
	"math"
	"strconv"
	"strings"

	"github.com/netprobe-project/netprobe/internal/measurement"
)

// MTRState is the incremental parser state for `mtr --raw` output. The
// raw report emits one event per line:
//
//	h <hop> <addr>       a host responded at this hop
//	p <hop> <usec>       a round-trip sample for this hop, in microseconds
//	d <hop> <hostname>   the reverse-DNS hostname for this hop's host
type MTRState struct {
	split     LineSplitter
	raw       strings.Builder
	hops      []measurement.Hop
	firstSeen map[string]int
	finalized bool
}

// MTRResult is the rendering returned after each [MTRState.Feed] call.
type MTRResult struct {
	RawOutput string
	Hops      []measurement.Hop
}

// Feed advances the parser with a new chunk of stdout, see [DigState.Feed]
// for the contract.
func (s *MTRState) Feed(chunk string, isFinal bool) MTRResult {
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
		for i := range s.hops {
			s.hops[i].Stats = computeHopStats(s.hops[i].Timings)
		}
	}
	return MTRResult{
		RawOutput: s.raw.String(),
		Hops:      s.hops,
	}
}

func (s *MTRState) consume(line string) {
	if s.raw.Len() > 0 {
		s.raw.WriteByte('\n')
	}
	s.raw.WriteString(line)

	cols := fields(line)
	if len(cols) < 3 {
		return
	}
	hopNum, err := strconv.Atoi(cols[1])
	if err != nil || hopNum < 1 {
		return
	}
	s.ensureHop(hopNum)
	hop := &s.hops[hopNum-1]

	switch cols[0] {
	case "h":
		if hop.ResolvedAddress == "" {
			hop.ResolvedAddress = cols[2]
			s.markDuplicate(hopNum, cols[2])
		}
	case "d":
		if hop.ResolvedHostname == "" {
			hop.ResolvedHostname = cols[2]
		}
	case "p":
		usec, err := strconv.ParseFloat(cols[2], 64)
		if err != nil {
			return
		}
		ms := usec / 1000.0
		hop.Timings = append(hop.Timings, measurement.HopTiming{RTT: &ms})
	}
}

// markDuplicate records the first hop index at which addr was seen
// and flags hopNum as a duplicate if addr already appeared at an
// earlier index (e.g. ECMP routing answering from the same host at
// more than one hop).
func (s *MTRState) markDuplicate(hopNum int, addr string) {
	if s.firstSeen == nil {
		s.firstSeen = map[string]int{}
	}
	first, seen := s.firstSeen[addr]
	if !seen {
		s.firstSeen[addr] = hopNum
		return
	}
	if first != hopNum {
		s.hops[hopNum-1].Duplicate = true
	}
}

func (s *MTRState) ensureHop(hopNum int) {
	for len(s.hops) < hopNum {
		s.hops = append(s.hops, measurement.Hop{ASN: []int{}, Timings: []measurement.HopTiming{}})
	}
}

// computeHopStats derives the summary statistics mtr prints in its
// report view from the raw per-probe timing samples.
func computeHopStats(timings []measurement.HopTiming) measurement.HopStats {
	var samples []float64
	for _, t := range timings {
		if t.RTT != nil {
			samples = append(samples, *t.RTT)
		}
	}
	stats := measurement.HopStats{Count: len(timings)}
	if len(timings) > 0 {
		stats.Loss = 100 * float64(len(timings)-len(samples)) / float64(len(timings))
	}
	if len(samples) == 0 {
		return stats
	}
	stats.Min, stats.Max = samples[0], samples[0]
	var sum float64
	for _, v := range samples {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Avg = sum / float64(len(samples))

	var sqDiff, jitterSum float64
	for i, v := range samples {
		d := v - stats.Avg
		sqDiff += d * d
		if i > 0 {
			jitterSum += math.Abs(v - samples[i-1])
		}
	}
	stats.StDev = math.Sqrt(sqDiff / float64(len(samples)))
	if len(samples) > 1 {
		stats.JAvg = jitterSum / float64(len(samples)-1)
	}
	return stats
}
