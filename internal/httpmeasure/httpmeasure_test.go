// SPDX-License-Identifier: GPL-3.0-or-later

package httpmeasure_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"

	"github.com/netprobe-project/netprobe/internal/httpmeasure"
	"github.com/netprobe-project/netprobe/internal/measurement"
	"github.com/netprobe-project/netprobe/internal/netcore"
	"github.com/netprobe-project/netprobe/internal/testcerts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"
)

func TestRunPlainHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Probe", "yes")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	netx := netcore.NewNetwork()
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "http", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, "yes", res.Headers["X-Probe"])
	assert.Equal(t, "hello", res.RawBody)
	assert.False(t, res.TLS.Present())
	assert.Greater(t, res.Timings.Total, 0.0)
}

func TestRunHTTPSUntrustedCert(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secure"))
	}))
	defer ts.Close()

	netx := netcore.NewNetwork()
	netx.TLSConfig.InsecureSkipVerify = true
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "https", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, "secure", res.RawBody)
	require.True(t, res.TLS.Present())
	assert.False(t, res.TLS.Authorized)
	assert.NotEmpty(t, res.TLS.AuthorizationError)
	assert.Greater(t, res.Timings.TLS, 0.0)
}

func TestRunHTTPSTrustedCert(t *testing.T) {
	pki, cert := testcerts.Localhost(t.TempDir())
	ts := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secure"))
	}))
	ts.TLS = testcerts.ServerConfig(cert)
	ts.StartTLS()
	defer ts.Close()

	netx := netcore.NewNetwork()
	netx.TLSConfig = pki.TrustingConfig()
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "https", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	require.True(t, res.TLS.Present())
	assert.True(t, res.TLS.Authorized)
	assert.Empty(t, res.TLS.AuthorizationError)
}

func TestRunDoesNotFollowRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("redirect target was dialed, but the measurement should have stopped at the redirect")
	}))
	defer target.Close()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://"+target.Listener.Addr().String()+"/", http.StatusFound)
	}))
	defer ts.Close()

	netx := netcore.NewNetwork()
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "http", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.NotEmpty(t, res.Headers["Location"])
}

func TestRunRawOutputGetUsesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Test", "abc")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("400 Bad Request"))
	}))
	defer ts.Close()

	netx := netcore.NewNetwork()
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "http", Path: "/400"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "abc", res.Headers["Test"])
	assert.Equal(t, "400 Bad Request", res.RawBody)
	assert.Equal(t, "400 Bad Request", res.RawOutput)
}

func TestRunRawOutputHeadUsesStatusLineAndHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Test", "abc")
		w.Header()["Date"] = nil // suppress the automatic Date header
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	netx := netcore.NewNetwork()
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "head", Protocol: "http", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Empty(t, res.RawBody)
	assert.Equal(t, "HTTP/1.1 200\nTest: abc", res.RawOutput)
}

func TestRunRawOutputHTTP2UsesStatusLineAndSubjectAlt(t *testing.T) {
	pki := testcerts.New(t.TempDir())
	cert := pki.NewCert("defllc.com", []string{"defllc.com", "*.defllc.com"}, nil)

	ts := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Test", "abc")
		w.Header()["Date"] = nil // suppress the automatic Date header
		w.WriteHeader(http.StatusOK)
	}))
	ts.TLS = testcerts.ServerConfig(cert)
	require.NoError(t, http2.ConfigureServer(ts.Config, &http2.Server{}))
	ts.TLS.NextProtos = append([]string{"h2"}, ts.TLS.NextProtos...)
	ts.StartTLS()
	defer ts.Close()

	netx := netcore.NewNetwork()
	netx.TLSConfig.InsecureSkipVerify = true
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "head", Protocol: "http2", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/2 200\nTest: abc", res.RawOutput)
	require.True(t, res.TLS.Present())
	assert.Equal(t, "DNS:defllc.com, DNS:*.defllc.com", res.TLS.Subject.Alt)
}

func TestRunWithQueryString(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
	}))
	defer ts.Close()

	netx := netcore.NewNetwork()
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "http", Path: "/", Query: "a=b&c=d"},
	}

	_, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, "a=b&c=d", gotQuery)
}

func TestRunNetworkFailureShapesResult(t *testing.T) {
	netx := netcore.NewNetwork()
	netx.DialContextFunc = func(ctx context.Context, network, address string) (net.Conn, error) {
		return nil, &net.OpError{Op: "dial", Net: network, Err: syscall.ECONNREFUSED}
	}
	opts := &measurement.HTTPOptions{
		Target: "127.0.0.1:1",
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "http", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.StatusCode)
	assert.Empty(t, res.Headers)
	assert.False(t, res.TLS.Present())
	assert.Contains(t, res.RawOutput, " - ECONNREFUSED")
}

func TestRunBodyTruncation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 100))
	}))
	defer ts.Close()

	netx := netcore.NewNetwork()
	opts := &measurement.HTTPOptions{
		Target: ts.Listener.Addr().String(),
		Query:  measurement.HTTPQuery{Method: "GET", Protocol: "http", Path: "/"},
	}

	res, err := httpmeasure.Run(context.Background(), netx, opts, 10)
	require.NoError(t, err)
	assert.Len(t, res.RawBody, 10)
	assert.NotEmpty(t, res.RawOutput)
}
