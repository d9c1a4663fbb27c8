// SPDX-License-Identifier: GPL-3.0-or-later

package parsers_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/netprobe-project/netprobe/internal/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTracerouteOutput = `traceroute to example.com (93.184.216.34), 30 hops max, 60 byte packets
 1  192.168.1.1 (192.168.1.1)  1.123 ms  1.045 ms  0.987 ms
 2  10.0.0.1 (10.0.0.1)  5.234 ms  5.123 ms  5.001 ms
 3  * * *
 4  203.0.113.1 (203.0.113.1)  15.234 ms  15.123 ms  15.001 ms
`

func TestTracerouteStateFeedWholeInput(t *testing.T) {
	var s parsers.TracerouteState
	res := s.Feed(sampleTracerouteOutput, true)

	assert.Equal(t, "example.com", res.ResolvedHostname)
	assert.Equal(t, "93.184.216.34", res.ResolvedAddress)
	require.Len(t, res.Hops, 4)

	assert.Equal(t, "192.168.1.1", res.Hops[0].ResolvedAddress)
	require.Len(t, res.Hops[0].Timings, 3)
	require.NotNil(t, res.Hops[0].Timings[0].RTT)
	assert.Equal(t, 1.123, *res.Hops[0].Timings[0].RTT)

	require.Len(t, res.Hops[2].Timings, 3)
	assert.Nil(t, res.Hops[2].Timings[0].RTT)
	assert.Equal(t, "", res.Hops[2].ResolvedAddress)

	assert.Equal(t, "203.0.113.1", res.Hops[3].ResolvedAddress)
}

const sampleTracerouteOutputWithECMP = `traceroute to example.com (93.184.216.34), 30 hops max, 60 byte packets
 1  192.168.1.1 (192.168.1.1)  1.123 ms  1.045 ms  0.987 ms
 2  10.0.0.1 (10.0.0.1)  5.234 ms  5.123 ms  5.001 ms
 3  10.0.0.1 (10.0.0.1)  5.345 ms  5.256 ms  5.198 ms
`

func TestTracerouteStateFlagsRepeatedAddressAsDuplicate(t *testing.T) {
	var s parsers.TracerouteState
	res := s.Feed(sampleTracerouteOutputWithECMP, true)

	require.Len(t, res.Hops, 3)
	assert.False(t, res.Hops[0].Duplicate)
	assert.False(t, res.Hops[1].Duplicate)

	// Hop 3 answers from the same address as hop 2 (e.g. ECMP routing):
	// it is flagged as a duplicate of the earlier hop.
	assert.Equal(t, "10.0.0.1", res.Hops[2].ResolvedAddress)
	assert.True(t, res.Hops[2].Duplicate)
}

func TestTracerouteStateArbitraryChunking(t *testing.T) {
	var whole parsers.TracerouteState
	want := whole.Feed(sampleTracerouteOutput, true)

	var chunked parsers.TracerouteState
	offsets := []int{5, 60, 90, 130, len(sampleTracerouteOutput) - 8}
	prev := 0
	var got parsers.TracerouteResult
	for _, off := range offsets {
		if off <= prev || off >= len(sampleTracerouteOutput) {
			continue
		}
		got = chunked.Feed(sampleTracerouteOutput[prev:off], false)
		prev = off
	}
	got = chunked.Feed(sampleTracerouteOutput[prev:], true)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chunked feed diverged from whole-input feed (-want +got):\n%s", diff)
	}
}

func TestTracerouteStateIdempotentFinalFlush(t *testing.T) {
	var s parsers.TracerouteState
	first := s.Feed(sampleTracerouteOutput, true)
	second := s.Feed("", true)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second final flush diverged from first (-first +second):\n%s", diff)
	}
}
