// SPDX-License-Identifier: GPL-3.0-or-later

// Package measurement defines the data model shared by every handler:
// inbound options, outbound result envelopes, and the hop/TLS views
// nested inside traceroute, MTR, and HTTP results.
package measurement

// Kind identifies a measurement kind.
type Kind string

// Supported measurement kinds.
const (
	KindDNS        Kind = "dns"
	KindPing       Kind = "ping"
	KindTraceroute Kind = "traceroute"
	KindMTR        Kind = "mtr"
	KindHTTP       Kind = "http"
)

// Request is an inbound measurement request.
//
// The dispatcher never mutates a [Request]; handlers operate on a
// validated, normalized copy produced by the validation layer.
type Request struct {
	// MeasurementID is the opaque identifier assigned by the orchestrator.
	MeasurementID string `json:"measurementId"`

	// TestID is the opaque identifier of the overall test this
	// measurement belongs to.
	TestID string `json:"testId"`

	// Options carries the kind-dependent option bundle. Its shape is
	// validated by the kind's own schema in package validate.
	Options map[string]any `json:"measurement"`
}

// Type returns the value of the "type" field, or "" if missing or
// not a string.
func (r *Request) Type() string {
	v, _ := r.Options["type"].(string)
	return v
}

// DNSQuery carries the DNS-specific query sub-bundle.
type DNSQuery struct {
	Type     string `json:"type"`
	Resolver string `json:"resolver"`
	Protocol string `json:"protocol"`
	Port     string `json:"port"`
}

// DNSOptions is the normalized option bundle for a DNS measurement.
type DNSOptions struct {
	Target string   `json:"target"`
	Query  DNSQuery `json:"query"`
	Trace  bool     `json:"trace"`
}

// PingOptions is the normalized option bundle for a ping measurement.
type PingOptions struct {
	Target  string `json:"target"`
	Packets int    `json:"packets"`
}

// TracerouteOptions is the normalized option bundle for a traceroute
// measurement.
type TracerouteOptions struct {
	Target   string `json:"target"`
	Protocol string `json:"protocol"`
	Port     string `json:"port"`
}

// MTROptions is the normalized option bundle for an MTR measurement.
type MTROptions struct {
	Target   string `json:"target"`
	Protocol string `json:"protocol"`
	Port     string `json:"port"`
	Packets  int    `json:"packets"`
}

// HTTPQuery carries the HTTP-specific query sub-bundle.
type HTTPQuery struct {
	Method   string            `json:"method"`
	Protocol string            `json:"protocol"`
	Path     string            `json:"path"`
	Query    string            `json:"query"`
	Headers  map[string]string `json:"headers"`
	Resolver string            `json:"resolver"`
}

// HTTPOptions is the normalized option bundle for an HTTP measurement.
type HTTPOptions struct {
	Target string    `json:"target"`
	Query  HTTPQuery `json:"query"`
}
