// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package httpconntrace provides a way to trace the local and remote endpoints
used by an HTTP connection while performing an [*http.Client] request.

Internally, we use [net/http/httptrace] to collect the connection [*Endpoints].

Operationally, you need to use [Do] where you would otherwise call
[*http.Client.Do] method. The [*Endpoints] are returned along with the response.

Collecting the connection [*Endpoints] is important to map the HTTP response
with the connection that actually serviced the request.
*/
package httpconntrace

import (
	"net"
	"net/http"
	"net/http/httptrace"
	"net/netip"
	"sync"
)

// Endpoints contains the connection endpoints extacted by [Do].
type Endpoints struct {
	// LocalAddr is the local address of the connection.
	LocalAddr netip.AddrPort

	// RemoteAddr is the remote address of the connection.
	RemoteAddr netip.AddrPort
}

// Do performs an HTTP request using [*http.Client.Do] and uses [net/http/httptrace] to
// extract the local and remote [*Endpoints] used by the connection.
//
// Any [*httptrace.ClientTrace] already attached to req's context is composed with
// the one this function installs, so callers that need their own trace hooks (e.g.
// to time request phases) can attach them to req before calling Do and still get
// theirs invoked alongside this function's GotConn hook.
//
// req's own deadline and cancellation are preserved: the context used for the
// request is derived from req.Context(), not a fresh background one.
//
// Note that this function assumes we're using TCP and casts the connection addresses
// to [*net.TCPAddr] to extract the endpoints. If the we're not using TCP, the returned
// [*Endpoint] will contain zero initialized (i.e., invalid) addresses.
//
// We return *Endpoints rather than Endpoints because the structure is larger than 32 bytes
// and could possibly be further extended in the future to include additional fields.
func Do(client *http.Client, req *http.Request) (*http.Response, *Endpoints, error) {
	// Prepare to collect info in a goroutine-safe way.
	var (
		laddr netip.AddrPort
		mu    sync.Mutex
		raddr netip.AddrPort
	)

	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			mu.Lock()
			defer mu.Unlock()
			if addr, ok := info.Conn.LocalAddr().(*net.TCPAddr); ok {
				laddr = addr.AddrPort()
			}
			if addr, ok := info.Conn.RemoteAddr().(*net.TCPAddr); ok {
				raddr = addr.AddrPort()
			}
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	// Perform the request
	resp, err := client.Do(req)

	// Gather the local and remote endpoints while holding the mutex
	// to avoid data-racing with the tracing goroutine.
	mu.Lock()
	epnts := &Endpoints{LocalAddr: laddr, RemoteAddr: raddr}
	mu.Unlock()

	// Return the results to the caller.
	return resp, epnts, err
}
