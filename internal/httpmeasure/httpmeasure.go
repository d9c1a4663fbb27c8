// SPDX-License-Identifier: GPL-3.0-or-later

// Package httpmeasure executes the HTTP measurement kind: unlike the
// other kinds, it never shells out to an external binary and instead
// drives an outbound [*http.Client] request directly, timing each
// phase of the underlying connection and inspecting the TLS
// certificate the server presented.
package httpmeasure

import (
	"bytes"
	"context"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/netprobe-project/netprobe/internal/errclass"
	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/internal/netcore"
	"github.com/netprobe-project/netprobe/pkg/common/closepool"
	"github.com/netprobe-project/netprobe/pkg/common/dialonce"
	"github.com/netprobe-project/netprobe/pkg/common/httpconntrace"
	"github.com/netprobe-project/netprobe/pkg/common/httpslog"
	"golang.org/x/net/http2"
)

// DefaultBodyCapBytes is the number of bytes of response body we will
// buffer before truncating, absent an override from configuration.
const DefaultBodyCapBytes = 10 * 1024 * 1024

// phaseTimes records the timestamps needed to split a request's
// duration into dns/tcp/tls/firstByte/download phases. All fields are
// protected by mu because the dial-related ones are written from the
// transport's dialing goroutine while firstByte is written from the
// trace callback, which net/http may invoke concurrently with it.
type phaseTimes struct {
	mu               sync.Mutex
	dnsStart, dnsEnd time.Time
	tcpStart, tcpEnd time.Time
	dialEnd          time.Time
	firstByte        time.Time
}

func (p *phaseTimes) mark(set *time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	*set = time.Now()
}

// Run performs a single HTTP(S) request per opts and returns the
// populated result. netx supplies the dial pipeline; it applies no
// address filtering of its own, so the private-address check on
// opts.Target is the caller's job. bodyCap caps how much of the
// response body is buffered into RawBody.
func Run(ctx context.Context, netx *netcore.Network, opts *measurement.HTTPOptions, bodyCap int64) (*measurement.HTTPResult, error) {
	if bodyCap <= 0 {
		bodyCap = DefaultBodyCapBytes
	}

	pt := &phaseTimes{}
	pool := &closepool.Pool{}
	defer pool.Close()

	local := *netx
	local.Resolver = &tracingResolver{inner: netx.Resolver, pt: pt}
	local.DialContextFunc = tracingDial(netx.DialContextFunc, pt)
	if opts.Query.Protocol == "http2" {
		// The transport's own ALPN setup does not reach a custom TLS
		// dialer, so h2 is offered through the dialer's config instead.
		tc := netx.TLSConfig.Clone()
		tc.NextProtos = []string{"h2", "http/1.1"}
		local.TLSConfig = tc
	}

	// A measurement is one round trip against one resolved address: the
	// private-address filter only ever sees opts.Target, so a dialer
	// that redials elsewhere (a second connection attempt net/http
	// decides to make on its own) would reach an address the filter
	// never got a chance to reject. dialonce turns that into a loud
	// failure instead of a silent, unvetted connection.
	transport := &http.Transport{
		DialContext: dialonce.Wrap(func(ctx context.Context, network, address string) (net.Conn, error) {
			conn, err := local.DialContext(ctx, network, address)
			pt.mark(&pt.dialEnd)
			if conn != nil {
				pool.Add(conn)
			}
			return conn, err
		}),
		DialTLSContext: dialonce.Wrap(func(ctx context.Context, network, address string) (net.Conn, error) {
			conn, err := local.DialTLSContext(ctx, network, address)
			pt.mark(&pt.dialEnd)
			if conn != nil {
				pool.Add(conn)
			}
			return conn, err
		}),
		ForceAttemptHTTP2: opts.Query.Protocol == "http2",
	}
	if opts.Query.Protocol == "http2" {
		_ = http2.ConfigureTransport(transport)
	}

	client := &http.Client{
		Transport: transport,
		// A redirect response is itself the measurement result, not a
		// cue to keep chasing Location headers through hosts the
		// private-address filter never saw.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	url := buildURL(opts)
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(opts.Query.Method), url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("httpmeasure: cannot build request: %w", err)
	}
	for key, value := range opts.Query.Headers {
		req.Header.Set(key, value)
	}

	trace := &httptrace.ClientTrace{
		GotFirstResponseByte: func() { pt.mark(&pt.firstByte) },
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	start := time.Now()
	httpslog.MaybeLogRoundTripStart(netx.Logger, netip.AddrPort{}, opts.Query.Protocol, netip.AddrPort{}, req, start)
	resp, endpoints, err := httpconntrace.Do(client, req)
	if err != nil {
		end := time.Now()
		httpslog.MaybeLogRoundTripDone(netx.Logger, netip.AddrPort{}, opts.Query.Protocol, netip.AddrPort{}, req, nil, err, start, end)
		return networkFailureResult(pt, start, end, err), nil
	}
	defer resp.Body.Close()

	body, _, readErr := readCapped(resp.Body, bodyCap)
	end := time.Now()
	httpslog.MaybeLogRoundTripDone(netx.Logger, endpoints.LocalAddr, opts.Query.Protocol, endpoints.RemoteAddr, req, resp, nil, start, end)
	if readErr != nil && len(body) == 0 {
		return networkFailureResult(pt, start, end, readErr), nil
	}

	var resolvedAddress string
	if endpoints.RemoteAddr.IsValid() {
		resolvedAddress = endpoints.RemoteAddr.Addr().String()
	}

	result := &measurement.HTTPResult{
		ResolvedAddress: resolvedAddress,
		StatusCode:      resp.StatusCode,
		Headers:         flattenHeaders(resp.Header),
		RawHeaders:      renderRawHeaders(resp),
		RawBody:         string(body),
		Timings:         computeTimings(pt, start, end, opts.Query.Protocol != "http"),
		TLS:             extractTLS(resp, netx.TLSConfig.RootCAs),
	}
	result.RawOutput = buildRawOutput(req.Method, resp, string(body))
	return result, nil
}

// networkFailureResult shapes a round-trip or body-read error as a
// result rather than a Go error: rawOutput carries the error message
// and its errclass label, joined by " - ".
func networkFailureResult(pt *phaseTimes, start, end time.Time, err error) *measurement.HTTPResult {
	return &measurement.HTTPResult{
		Headers:   map[string]string{},
		Timings:   computeTimings(pt, start, end, false),
		RawOutput: fmt.Sprintf("%s - %s", err.Error(), errclass.New(err)),
	}
}

func buildURL(opts *measurement.HTTPOptions) string {
	scheme := opts.Query.Protocol
	if scheme == "http2" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s%s", scheme, opts.Target, opts.Query.Path)
	if q := strings.TrimPrefix(opts.Query.Query, "?"); q != "" {
		url += "?" + q
	}
	return url
}

// buildRawOutput renders the status-line-plus-headers view for methods
// that carry no meaningful body (HEAD, OPTIONS), or the raw response
// body otherwise.
func buildRawOutput(method string, resp *http.Response, body string) string {
	switch method {
	case http.MethodHead, http.MethodOptions:
		var b strings.Builder
		fmt.Fprintf(&b, "%s %d", protoLabel(resp.Proto), resp.StatusCode)
		for name, values := range resp.Header {
			if strings.HasPrefix(name, ":") {
				continue
			}
			for _, v := range values {
				fmt.Fprintf(&b, "\n%s: %s", name, v)
			}
		}
		return b.String()
	default:
		return body
	}
}

// protoLabel normalizes net/http's protocol string ("HTTP/2.0") to the
// bare major-version form ("HTTP/2"); "HTTP/1.1" passes through
// unchanged.
func protoLabel(proto string) string {
	return strings.TrimSuffix(proto, ".0")
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func renderRawHeaders(resp *http.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %s\n", resp.Proto, resp.StatusCode, http.StatusText(resp.StatusCode))
	for name, values := range resp.Header {
		// HTTP/2 pseudo-headers like ":status" never appear in
		// resp.Header (net/http strips them before we see it), but we
		// defensively skip anything starting with ':' in case a future
		// transport surfaces them.
		if strings.HasPrefix(name, ":") {
			continue
		}
		for _, v := range values {
			fmt.Fprintf(&b, "%s: %s\n", name, v)
		}
	}
	return b.String()
}

func readCapped(r io.Reader, capBytes int64) (data []byte, truncated bool, err error) {
	limited := io.LimitReader(r, capBytes+1)
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, limited); err != nil {
		return buf.Bytes(), false, err
	}
	if int64(buf.Len()) > capBytes {
		return buf.Bytes()[:capBytes], true, nil
	}
	return buf.Bytes(), false, nil
}

func computeTimings(pt *phaseTimes, start, end time.Time, isTLS bool) measurement.HTTPTimings {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	var dns, tcp, tls, firstByte, download float64
	if !pt.dnsStart.IsZero() && !pt.dnsEnd.IsZero() {
		dns = msSince(pt.dnsStart, pt.dnsEnd)
	}
	if !pt.tcpStart.IsZero() && !pt.tcpEnd.IsZero() {
		tcp = msSince(pt.tcpStart, pt.tcpEnd)
	}
	if isTLS && !pt.tcpEnd.IsZero() && !pt.dialEnd.IsZero() {
		tls = msSince(pt.tcpEnd, pt.dialEnd)
	}

	connReady := pt.dialEnd
	if connReady.IsZero() {
		connReady = start
	}
	total := msSince(start, end)
	if !pt.firstByte.IsZero() {
		firstByte = msSince(connReady, pt.firstByte)
		download = msSince(pt.firstByte, end)
	} else {
		download = total - dns - tcp - tls
	}
	return measurement.HTTPTimings{
		DNS:       dns,
		TCP:       tcp,
		TLS:       tls,
		FirstByte: firstByte,
		Download:  download,
		Total:     total,
	}
}

func msSince(start, end time.Time) float64 {
	return float64(end.Sub(start)) / float64(time.Millisecond)
}

// extractTLS inspects the certificate the server presented. roots is
// the root pool the connection itself trusted (nil means the system
// pool), so authorization reflects the same trust decision the TLS
// handshake already made rather than a second, independent one.
func extractTLS(resp *http.Response, roots *x509.CertPool) measurement.TLSCertificateView {
	if resp.TLS == nil || len(resp.TLS.PeerCertificates) == 0 {
		return measurement.TLSCertificateView{}
	}
	view := measurement.NewTLSCertificateView()
	cert := resp.TLS.PeerCertificates[0]
	view.CreatedAt = cert.NotBefore
	view.ExpiresAt = cert.NotAfter
	view.Subject = certName(cert.Subject.CommonName, cert.Subject.Organization, cert.Subject.Country, cert.DNSNames)
	issuer := resp.TLS.PeerCertificates[len(resp.TLS.PeerCertificates)-1]
	view.Issuer = certName(issuer.Subject.CommonName, issuer.Subject.Organization, issuer.Subject.Country, nil)

	intermediates := x509.NewCertPool()
	for _, c := range resp.TLS.PeerCertificates[1:] {
		intermediates.AddCert(c)
	}
	if _, err := cert.Verify(x509.VerifyOptions{
		DNSName:       resp.Request.URL.Hostname(),
		Intermediates: intermediates,
		Roots:         roots,
	}); err != nil {
		view.AuthorizationError = err.Error()
	} else {
		view.Authorized = true
	}
	return view
}

func certName(cn string, org, country, alt []string) measurement.CertName {
	name := measurement.CertName{CN: cn, Alt: renderSANs(alt)}
	if len(org) > 0 {
		name.O = org[0]
	}
	if len(country) > 0 {
		name.C = country[0]
	}
	return name
}

// renderSANs renders DNS subject alternative names the way the raw
// subjectAltName extension text lists them, e.g. "DNS:example.com,
// DNS:*.example.com".
func renderSANs(dnsNames []string) string {
	tagged := make([]string, len(dnsNames))
	for i, name := range dnsNames {
		tagged[i] = "DNS:" + name
	}
	return strings.Join(tagged, ", ")
}
