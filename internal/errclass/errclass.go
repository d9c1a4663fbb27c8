// SPDX-License-Identifier: GPL-3.0-or-later

// Package errclass classifies network errors into short categorical
// labels suitable for structured logging and result diagnostics.
package errclass

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"os"
	"strings"
	"syscall"
)

// Well-known classification labels.
const (
	ETIMEDOUT      = "ETIMEDOUT"
	ECONNREFUSED   = "ECONNREFUSED"
	ECONNRESET     = "ECONNRESET"
	EHOSTUNREACH   = "EHOSTUNREACH"
	ENETUNREACH    = "ENETUNREACH"
	EADDRNOTAVAIL  = "EADDRNOTAVAIL"
	ECANCELED      = "ECANCELED"
	EDNSNODATA     = "EDNSNODATA"
	EDNSNOTFOUND   = "EDNSNOTFOUND"
	ETLSCERT       = "ETLSCERTIFICATE"
	EGENERICTLS    = "ETLSHANDSHAKE"
	EEOF           = "EEOF"
	EUNKNOWN       = "EUNKNOWN"
)

// New classifies err into one of the labels above.
//
// It returns the empty string when err is nil, matching the contract
// expected by [nop.ErrClassifierFunc].
func New(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return EDNSNOTFOUND
		}
		return EDNSNODATA
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return ETLSCERT
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return ETLSCERT
	}
	var certInvalidErr x509.CertificateInvalidError
	if errors.As(err, &certInvalidErr) {
		return ETLSCERT
	}

	if errors.Is(err, context.Canceled) {
		return ECANCELED
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ETIMEDOUT
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ETIMEDOUT:
			return ETIMEDOUT
		case syscall.ECONNREFUSED:
			return ECONNREFUSED
		case syscall.ECONNRESET:
			return ECONNRESET
		case syscall.EHOSTUNREACH:
			return EHOSTUNREACH
		case syscall.ENETUNREACH:
			return ENETUNREACH
		case syscall.EADDRNOTAVAIL:
			return EADDRNOTAVAIL
		}
	}

	// Fall back to substring matching for errors that do not wrap a
	// syscall.Errno (e.g. errors synthesized by the stdlib's TLS stack).
	switch s := err.Error(); {
	case strings.Contains(s, "i/o timeout"):
		return ETIMEDOUT
	case strings.Contains(s, "connection refused"):
		return ECONNREFUSED
	case strings.Contains(s, "connection reset"):
		return ECONNRESET
	case strings.Contains(s, "tls:"), strings.Contains(s, "certificate"):
		return EGENERICTLS
	case strings.Contains(s, "EOF"):
		return EEOF
	default:
		return EUNKNOWN
	}
}
