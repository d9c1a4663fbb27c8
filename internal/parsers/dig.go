// SPDX-License-Identifier: GPL-3.0-or-later

package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/netprobe-project/netprobe/internal/measurement"
)

// sectionHeaderRe matches dig's `;; <NAME> SECTION:` delimiter lines.
var sectionHeaderRe = regexp.MustCompile(`^;;\s+(\w+)\s+SECTION:$`)

// queryTimeRe matches dig's `;; Query time: N msec` line.
var queryTimeRe = regexp.MustCompile(`^;;\s+Query time:\s+(\d+)\s+msec$`)

// serverRe matches dig's `;; SERVER: ...` line.
var serverRe = regexp.MustCompile(`^;;\s+SERVER:\s+(\S+)$`)

// DigState is the incremental parser state for `dig` output. The zero
// value is ready to use.
type DigState struct {
	split       LineSplitter
	raw         strings.Builder
	answers     []measurement.DNSAnswer
	resolver    string
	queryTimeMs int
	inSection   string
	finalized   bool
}

// DigResult is the textual rendering returned alongside the updated
// state after each [DigState.Feed] call.
type DigResult struct {
	RawOutput string
	Answers   []measurement.DNSAnswer
	Resolver  string
	QueryTime int
}

// Feed advances the parser with a new chunk of stdout and returns the
// rendering reflecting all input consumed so far, including this
// chunk. When isFinal is true, any buffered partial line is flushed;
// calling Feed with isFinal=true again afterwards is a no-op on state
// beyond re-returning the same rendering.
func (s *DigState) Feed(chunk string, isFinal bool) DigResult {
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
	return DigResult{
		RawOutput: s.raw.String(),
		Answers:   s.answers,
		Resolver:  s.resolver,
		QueryTime: s.queryTimeMs,
	}
}

func (s *DigState) consume(line string) {
	if s.raw.Len() > 0 {
		s.raw.WriteByte('\n')
	}
	s.raw.WriteString(line)

	trimmed := strings.TrimSpace(line)

	if m := sectionHeaderRe.FindStringSubmatch(trimmed); m != nil {
		s.inSection = m[1]
		return
	}
	if m := queryTimeRe.FindStringSubmatch(trimmed); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			s.queryTimeMs = n
		}
		return
	}
	if m := serverRe.FindStringSubmatch(trimmed); m != nil {
		s.resolver = m[1]
		return
	}
	if trimmed == "" {
		s.inSection = ""
		return
	}
	if strings.HasPrefix(trimmed, ";") {
		// Comment/header/footer line outside a section: preserved in
		// rawOutput above, nothing else to do.
		return
	}
	// Records outside any section only occur in `+trace` output, where
	// dig prints every step of the referral chain without section
	// headers; they are collected in the order dig prints them.
	if s.inSection == "ANSWER" || s.inSection == "" {
		if ans, ok := parseRecordLine(trimmed); ok {
			s.answers = append(s.answers, ans)
		}
	}
	// Lines in QUESTION/AUTHORITY/ADDITIONAL sections (or unrecognized
	// lines anywhere) are preserved verbatim in rawOutput but do not
	// contribute structured answers, per spec.
}

// parseRecordLine parses one whitespace-separated resource record
// line of the form "name ttl class type value...".
func parseRecordLine(line string) (measurement.DNSAnswer, bool) {
	cols := fields(line)
	if len(cols) < 5 {
		return measurement.DNSAnswer{}, false
	}
	ttl, err := strconv.Atoi(cols[1])
	if err != nil {
		return measurement.DNSAnswer{}, false
	}
	ans := measurement.DNSAnswer{
		Name:  cols[0],
		TTL:   ttl,
		Class: cols[2],
		Type:  cols[3],
	}
	switch ans.Type {
	case "SOA", "TXT":
		ans.Value = strings.Join(cols[4:], " ")
	case "MX":
		if len(cols) < 6 {
			return measurement.DNSAnswer{}, false
		}
		priority, err := strconv.Atoi(cols[4])
		if err != nil {
			return measurement.DNSAnswer{}, false
		}
		ans.Value = measurement.MXValue{Priority: priority, Server: cols[5]}
	default:
		ans.Value = cols[len(cols)-1]
	}
	return ans, true
}
