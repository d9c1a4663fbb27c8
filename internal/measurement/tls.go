// SPDX-License-Identifier: GPL-3.0-or-later

package measurement

import (
	"encoding/json"
	"time"
)

// CertName carries the subset of an X.509 name's fields a measurement
// result reports, plus the raw subjectAltName extension text.
type CertName struct {
	CN  string `json:"CN,omitempty"`
	O   string `json:"O,omitempty"`
	C   string `json:"C,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// TLSCertificateView is the TLS certificate introspection attached to
// an HTTP result. The zero value marshals to an empty JSON object,
// which is what a plain-HTTP response (no certificate) reports.
type TLSCertificateView struct {
	present bool

	Authorized         bool      `json:"authorized"`
	AuthorizationError string    `json:"authorizationError,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	ExpiresAt          time.Time `json:"expiresAt"`
	Issuer             CertName  `json:"issuer"`
	Subject            CertName  `json:"subject"`
}

// NewTLSCertificateView marks the view as present so it serializes as
// a full object rather than `{}`.
func NewTLSCertificateView() TLSCertificateView {
	return TLSCertificateView{present: true}
}

// MarshalJSON implements [json.Marshaler].
func (v TLSCertificateView) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("{}"), nil
	}
	type alias TLSCertificateView
	return json.Marshal(alias(v))
}

// Present reports whether this view carries certificate data.
func (v TLSCertificateView) Present() bool {
	return v.present
}
