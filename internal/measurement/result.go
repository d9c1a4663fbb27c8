// SPDX-License-Identifier: GPL-3.0-or-later

package measurement

// DNSAnswer is one record in a DNS result's answer section.
type DNSAnswer struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	TTL   int    `json:"ttl"`
	Class string `json:"class"`
	Value any    `json:"value"`
}

// MXValue is the structured value of an MX answer.
type MXValue struct {
	Priority int    `json:"priority"`
	Server   string `json:"server"`
}

// DNSTimings carries the DNS result's timing breakdown.
type DNSTimings struct {
	Total int `json:"total"` // milliseconds, as reported by dig
}

// DNSResult is the result body for a DNS measurement.
type DNSResult struct {
	Answers   []DNSAnswer `json:"answers"`
	Resolver  string      `json:"resolver"`
	Timings   DNSTimings  `json:"timings"`
	RawOutput string      `json:"rawOutput"`
}

// PingResult is the result body for a ping measurement.
type PingResult struct {
	ResolvedAddress  string    `json:"resolvedAddress"`
	ResolvedHostname string    `json:"resolvedHostname"`
	Loss             float64   `json:"loss"`
	Min              float64   `json:"min"`
	Avg              float64   `json:"avg"`
	Max              float64   `json:"max"`
	Times            []float64 `json:"times"`
	RawOutput        string    `json:"rawOutput"`
}

// PathResult is the result body shared by traceroute and MTR
// measurements: a resolved destination plus a dense hop table.
type PathResult struct {
	ResolvedAddress  string `json:"resolvedAddress"`
	ResolvedHostname string `json:"resolvedHostname"`
	Hops             []Hop  `json:"hops"`
	RawOutput        string `json:"rawOutput"`
}

// HTTPTimings is the timing breakdown for an HTTP measurement: each
// field is the duration of that phase in milliseconds, and Total is
// the whole request from start to end.
type HTTPTimings struct {
	DNS       float64 `json:"dns"`
	TCP       float64 `json:"tcp"`
	TLS       float64 `json:"tls"`
	FirstByte float64 `json:"firstByte"`
	Download  float64 `json:"download"`
	Total     float64 `json:"total"`
}

// HTTPResult is the result body for an HTTP measurement.
type HTTPResult struct {
	ResolvedAddress string             `json:"resolvedAddress"`
	StatusCode      int                `json:"statusCode"`
	Headers         map[string]string  `json:"headers"`
	RawHeaders      string             `json:"rawHeaders"`
	RawBody         string             `json:"rawBody"`
	Timings         HTTPTimings        `json:"timings"`
	TLS             TLSCertificateView `json:"tls"`
	RawOutput       string             `json:"rawOutput"`
}

// Envelope is the terminal or progress result emitted by a handler.
// Body holds one of the *Result types above, kept as `any` because the
// shape is kind-dependent and the dispatcher never inspects it.
type Envelope struct {
	TestID        string `json:"testId"`
	MeasurementID string `json:"measurementId"`
	Body          any    `json:"result"`
}

// Progress is the progress event emitted mid-measurement.
type Progress struct {
	TestID        string `json:"testId"`
	MeasurementID string `json:"measurementId"`
	Overwrite     bool   `json:"overwrite"`
	Body          any    `json:"result"`
}
