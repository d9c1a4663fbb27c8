// SPDX-License-Identifier: GPL-3.0-or-later

// Package netcore is netprobe's core networking library.
//
// It provides the dial pipeline shared by every handler that needs to
// establish TCP or TLS connections (currently the HTTP handler), built
// on top of [nop]'s composable connect/observe/handshake primitives.
package netcore

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/bassosimone/nop"
	"github.com/bassosimone/runtimex"
	"github.com/netprobe-project/netprobe/internal/errclass"
)

// Resolver is a [*net.Resolver]-like abstraction.
type Resolver interface {
	LookupHost(ctx context.Context, domain string) ([]string, error)
}

// DialContextFunc is the function for creating new [net.Conn] instances.
type DialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

type dialerAdapter struct {
	fx DialContextFunc
}

var _ nop.Dialer = dialerAdapter{}

// DialContext implements [nop.Dialer].
func (d dialerAdapter) DialContext(ctx context.Context, network string, address string) (net.Conn, error) {
	return d.fx(ctx, network, address)
}

// Network allows creating network connections.
//
// Use [NewNetwork] to construct.
type Network struct {
	// DialContextFunc is the function for creating a new conn.
	//
	// [NewNetwork] initializes this to [*net.Dialer]'s DialContext method.
	DialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

	// Logger is the logger to use.
	//
	// [NewNetwork] initializes this using a JSON slogger writing to [os.Stderr].
	Logger *slog.Logger

	// TLSConfig is the TLS config to use.
	//
	// [NewNetwork] initializes this to an empty [*tls.Config], which
	// means the system's root CA pool is used.
	TLSConfig *tls.Config

	// Resolver is the resolver to use for turning hostnames into addresses.
	//
	// [NewNetwork] initializes this using a zero-initialized [*net.Resolver].
	Resolver Resolver

	// TimeNow is the function to get the current time.
	//
	// [NewNetwork] initializes this to [time.Now].
	TimeNow func() time.Time
}

// NewNetwork creates a new [*Network] with default values.
func NewNetwork() *Network {
	return &Network{
		DialContextFunc: (&net.Dialer{}).DialContext,
		Logger:          slog.New(slog.NewJSONHandler(os.Stderr, nil)),
		TLSConfig:       &tls.Config{},
		Resolver:        &net.Resolver{},
		TimeNow:         time.Now,
	}
}

// newNopConfig creates a new [*nop.Config] instance.
func (nx *Network) newNopConfig() *nop.Config {
	return &nop.Config{
		Dialer:        dialerAdapter{nx.DialContextFunc},
		ErrClassifier: nop.ErrClassifierFunc(errclass.New),
		TimeNow:       nx.TimeNow,
	}
}

// DialContext establishes a new TCP [net.Conn].
func (nx *Network) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	config := nx.newNopConfig()
	return nx.dial(ctx, address, nop.Compose3(
		nop.NewConnectFunc(config, network, nx.Logger),
		nop.NewCancelWatchFunc(),
		nop.NewObserveConnFunc(config, nx.Logger),
	))
}

// DialTLSContext establishes a new TLS [net.Conn] over TCP.
func (nx *Network) DialTLSContext(ctx context.Context, network, address string) (net.Conn, error) {
	config := nx.newNopConfig()
	tc := nx.TLSConfig.Clone()
	if host, _, err := net.SplitHostPort(address); err == nil && tc.ServerName == "" {
		tc.ServerName = host
	}
	return nx.dial(ctx, address, nop.Compose5(
		nop.NewConnectFunc(config, network, nx.Logger),
		nop.NewCancelWatchFunc(),
		nop.NewObserveConnFunc(config, nx.Logger),
		nop.NewTLSHandshakeFunc(config, tc, nx.Logger),
		tlsConnAdapter{},
	))
}

// pipeline is the generic pipeline used to create a new [net.Conn].
type pipeline nop.Func[netip.AddrPort, net.Conn]

// tlsConnAdapter adapts [nop.TLSConn] to be a [net.Conn].
type tlsConnAdapter struct{}

// Call implements [nop.Func].
func (tlsConnAdapter) Call(ctx context.Context, conn nop.TLSConn) (net.Conn, error) {
	return conn, nil
}

// dial is the internal function used for dialing.
func (nx *Network) dial(ctx context.Context, address string, pipe pipeline) (net.Conn, error) {
	// Unpack the network endpoint.
	domain, port, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}

	// If the domain is already a literal address, skip resolution.
	addrs := []string{domain}
	if net.ParseIP(domain) == nil {
		addrs, err = nx.Resolver.LookupHost(ctx, domain)
		if err != nil {
			return nil, err
		}
	}
	runtimex.Assert(len(addrs) >= 1, "netcore: resolver returned zero addresses")

	// Attempt dialing with each address in turn.
	var errv []error
	for _, addr := range addrs {
		epnt, err := netip.ParseAddrPort(net.JoinHostPort(addr, port))
		if err != nil {
			errv = append(errv, err)
			continue
		}
		conn, err := pipe.Call(ctx, epnt)
		if err != nil {
			errv = append(errv, err)
			continue
		}
		return conn, nil
	}
	return nil, errors.Join(errv...)
}
