// SPDX-License-Identifier: GPL-3.0-or-later

// Package testcerts generates self-signed certificates with custom
// subject alternative names for use in TLS-dependent tests, without
// touching the network or a real certificate authority. It wraps
// pkitest, the same PKI fixture library the rest of the ecosystem
// uses for its own TLS-backed integration tests.
package testcerts

import (
	"crypto/tls"
	"crypto/x509"
	"net"

	"github.com/bassosimone/pkitest"
)

// PKI is a self-contained certificate authority for tests. Every
// certificate it mints chains back to the same root, so a client
// configured with [PKI.TrustingConfig] trusts every server cert this
// PKI produces, not just one pinned leaf.
type PKI struct {
	pki *pkitest.PKI
}

// New creates a [PKI] persisting its root material under datadir
// (typically [testing.T.TempDir]).
func New(datadir string) *PKI {
	return &PKI{pki: pkitest.MustNewPKI(datadir)}
}

// NewCert mints a certificate for commonName, valid for dnsNames and
// ipAddrs, signed by this PKI's root.
func (p *PKI) NewCert(commonName string, dnsNames []string, ipAddrs []net.IP) *tls.Certificate {
	return p.pki.MustNewCert(&pkitest.SelfSignedCertConfig{
		CommonName:   commonName,
		DNSNames:     dnsNames,
		IPAddrs:      ipAddrs,
		Organization: []string{"netprobe test fixtures"},
	})
}

// CertPool returns the root pool backing this PKI.
func (p *PKI) CertPool() *x509.CertPool {
	return p.pki.CertPool()
}

// TrustingConfig returns a [*tls.Config] whose root pool trusts every
// certificate this PKI mints, the way a client pinned to the probe's
// test fixture root would be configured.
func (p *PKI) TrustingConfig() *tls.Config {
	return &tls.Config{RootCAs: p.CertPool()}
}

// ServerConfig returns a [*tls.Config] presenting cert, suitable for
// [net/http/httptest.Server.TLS].
func ServerConfig(cert *tls.Certificate) *tls.Config {
	return &tls.Config{Certificates: []tls.Certificate{*cert}}
}

// Localhost is the shape every httptest-backed measurement test
// needs: a PKI and a leaf certificate valid for 127.0.0.1, ::1, and
// localhost.
func Localhost(datadir string) (*PKI, *tls.Certificate) {
	pki := New(datadir)
	cert := pki.NewCert("localhost", []string{"localhost"}, []net.IP{
		net.ParseIP("127.0.0.1"),
		net.ParseIP("::1"),
	})
	return pki, cert
}
