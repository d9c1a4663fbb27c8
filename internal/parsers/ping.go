// SPDX-License-Identifier: GPL-3.0-or-later

package parsers

import (
	"regexp"
	"strconv"
	"strings"
)

// pingHeaderRe matches ping's banner line, e.g.
// "PING example.com (93.184.216.34) 56(84) bytes of data."
var pingHeaderRe = regexp.MustCompile(`^PING\s+(\S+)\s+\(([0-9a-fA-F:.]+)\)`)

// pingReplyRe matches a per-packet reply line, e.g.
// "64 bytes from 93.184.216.34: icmp_seq=1 ttl=56 time=12.3 ms"
var pingReplyRe = regexp.MustCompile(`icmp_seq=\d+.*time[=<]([\d.]+)\s*ms`)

// pingLossRe matches the transmit/receive summary line.
var pingLossRe = regexp.MustCompile(`([\d.]+)%\s+packet loss`)

// pingRTTRe matches the trailing min/avg/max/mdev statistics line.
var pingRTTRe = regexp.MustCompile(`=\s*([\d.]+)/([\d.]+)/([\d.]+)(?:/([\d.]+))?\s*ms`)

// PingState is the incremental parser state for `ping` output.
type PingState struct {
	split     LineSplitter
	raw       strings.Builder
	host      string
	addr      string
	times     []float64
	loss      float64
	min       float64
	avg       float64
	max       float64
	finalized bool
}

// PingResult is the rendering returned after each [PingState.Feed] call.
type PingResult struct {
	RawOutput        string
	ResolvedAddress  string
	ResolvedHostname string
	Loss             float64
	Min              float64
	Avg              float64
	Max              float64
	Times            []float64
}

// Feed advances the parser with a new chunk of stdout, see [DigState.Feed]
// for the contract.
func (s *PingState) Feed(chunk string, isFinal bool) PingResult {
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
	return PingResult{
		RawOutput:        s.raw.String(),
		ResolvedAddress:  s.addr,
		ResolvedHostname: s.host,
		Loss:             s.loss,
		Min:              s.min,
		Avg:              s.avg,
		Max:              s.max,
		Times:            s.times,
	}
}

func (s *PingState) consume(line string) {
	if s.raw.Len() > 0 {
		s.raw.WriteByte('\n')
	}
	s.raw.WriteString(line)

	if m := pingHeaderRe.FindStringSubmatch(line); m != nil {
		s.host, s.addr = m[1], m[2]
		return
	}
	if m := pingReplyRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			s.times = append(s.times, v)
		}
		return
	}
	if m := pingLossRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			s.loss = v
		}
		return
	}
	if m := pingRTTRe.FindStringSubmatch(line); m != nil {
		s.min, _ = strconv.ParseFloat(m[1], 64)
		s.avg, _ = strconv.ParseFloat(m[2], 64)
		s.max, _ = strconv.ParseFloat(m[3], 64)
		return
	}
	// Unrecognized lines (DUP!, timeouts, platform-specific banners) are
	// preserved verbatim in rawOutput only.
}
