// SPDX-License-Identifier: GPL-3.0-or-later

package measurement

import "github.com/bassosimone/runtimex"

// HopTiming is one probe's RTT sample for a hop. RTT is nil (omitted)
// when the probe timed out.
type HopTiming struct {
	RTT *float64 `json:"rtt,omitempty"`
}

// HopStats summarizes a hop's RTT samples.
type HopStats struct {
	Min   float64 `json:"min"`
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
	StDev float64 `json:"stDev"`
	JAvg  float64 `json:"jAvg"`
	Loss  float64 `json:"loss"`
	Count int     `json:"count"`
}

// Hop is one router on a path, indexed from the probe outward
// starting at 1.
type Hop struct {
	ResolvedAddress  string      `json:"resolvedAddress,omitempty"`
	ResolvedHostname string      `json:"resolvedHostname,omitempty"`
	ASN              []int       `json:"asn"`
	Timings          []HopTiming `json:"timings"`
	Stats            HopStats    `json:"stats"`
	Duplicate        bool        `json:"duplicate"`
}

// NewDenseHops returns a slice of n zero-valued hops with non-nil ASN
// and Timings slices. Hop i belongs at index i-1, the same layout the
// parsers' own hop tables use.
//
// count must be >= 0; the function asserts this invariant holds
// because a negative hop count indicates a parser bug, not bad input.
func NewDenseHops(count int) []Hop {
	runtimex.Assert(count >= 0, "measurement: negative hop count")
	hops := make([]Hop, count)
	for i := range hops {
		hops[i].ASN = []int{}
		hops[i].Timings = []HopTiming{}
	}
	return hops
}
