// SPDX-License-Identifier: GPL-3.0-or-later

// Package parsers implements the streaming output parsers shared by
// every subprocess-backed handler (dig, ping, traceroute, mtr).
//
// Each parser is a pure function of (prior state, new chunk, isFinal)
// -> (new state, textual rendering): safe to call on arbitrary chunk
// boundaries, idempotent on repeated final flushes, and tolerant of
// unrecognized lines (preserved verbatim rather than dropped).
package parsers

import "strings"

// LineSplitter accumulates raw bytes across chunk boundaries and
// yields complete lines as they become available. A trailing partial
// line is held until either a newline arrives or Flush is called.
type LineSplitter struct {
	buf strings.Builder
}

// Feed appends chunk to the internal buffer and returns the complete
// lines it now contains, without their trailing newline.
func (s *LineSplitter) Feed(chunk string) []string {
	s.buf.WriteString(chunk)
	content := s.buf.String()
	lines := strings.Split(content, "\n")
	// The last element is either "" (content ended in \n) or a partial
	// line; keep it buffered either way.
	s.buf.Reset()
	s.buf.WriteString(lines[len(lines)-1])
	return lines[:len(lines)-1]
}

// Flush returns whatever partial line remains buffered, if any, and
// clears the buffer. Call this once, when isFinal is true.
func (s *LineSplitter) Flush() []string {
	rest := s.buf.String()
	s.buf.Reset()
	if rest == "" {
		return nil
	}
	return []string{rest}
}

// fields splits a line on whitespace, like strings.Fields, but is
// named locally so parser files read uniformly.
func fields(line string) []string {
	return strings.Fields(line)
}
