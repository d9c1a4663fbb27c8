// SPDX-License-Identifier: GPL-3.0-or-later

// Package validate implements the schema validation and private-address
// filtering every handler runs before it touches the network.
//
// On validation failure, handlers abort before any network activity and
// report the offending field; see [*InvalidOptionsError].
package validate

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"github.com/netprobe-project/netprobe/internal/measurement"
)

// InvalidOptionsError reports a schema or bounds violation in an
// inbound option bundle. Field names the offending key.
type InvalidOptionsError struct {
	Field string
	Err   error
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Field, e.Err)
}

func (e *InvalidOptionsError) Unwrap() error { return e.Err }

func invalid(field string, format string, args ...any) *InvalidOptionsError {
	return &InvalidOptionsError{Field: field, Err: fmt.Errorf(format, args...)}
}

// target validates and normalizes the shared "target" field.
func target(opts map[string]any) (string, error) {
	raw, ok := opts["target"].(string)
	if !ok || raw == "" {
		return "", invalid("target", "missing or empty")
	}
	// Punycode-normalize so downstream resolution and logging see a
	// consistent ASCII form, matching what the system resolver expects.
	norm, err := idna.Lookup.ToASCII(raw)
	if err != nil {
		// Not every target is a DNS name (it may be an IP literal);
		// idna rejects those, so fall back to the raw string.
		norm = raw
	}
	return norm, nil
}

func str(opts map[string]any, field, def string) string {
	if v, ok := opts[field].(string); ok && v != "" {
		return v
	}
	return def
}

func nestedStr(opts map[string]any, parent, field, def string) string {
	if p, ok := opts[parent].(map[string]any); ok {
		if v, ok := p[field].(string); ok && v != "" {
			return v
		}
	}
	return def
}

func intInRange(opts map[string]any, field string, def, min, max int) (int, error) {
	v, ok := opts[field]
	if !ok {
		return def, nil
	}
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		n = int(t)
	default:
		return 0, invalid(field, "must be a number")
	}
	if n < min || n > max {
		return 0, invalid(field, "must be in range [%d,%d], got %d", min, max, n)
	}
	return n, nil
}

func oneOf(opts map[string]any, field, def string, allowed ...string) (string, error) {
	v := strings.ToLower(str(opts, field, def))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", invalid(field, "must be one of %v, got %q", allowed, v)
}

func nestedOneOf(opts map[string]any, parent, field, def string, allowed ...string) (string, error) {
	v := strings.ToLower(nestedStr(opts, parent, field, def))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", invalid(parent+"."+field, "must be one of %v, got %q", allowed, v)
}

// DNS validates and normalizes DNS options.
func DNS(opts map[string]any) (*measurement.DNSOptions, error) {
	t, err := target(opts)
	if err != nil {
		return nil, err
	}
	queryType := strings.ToUpper(nestedStr(opts, "query", "type", "A"))
	if _, ok := dns.StringToType[queryType]; !ok {
		return nil, invalid("query.type", "unsupported DNS query type %q", queryType)
	}
	protocol, err := nestedOneOf(opts, "query", "protocol", "udp", "udp", "tcp")
	if err != nil {
		return nil, err
	}
	port := nestedStr(opts, "query", "port", "53")
	resolver := nestedStr(opts, "query", "resolver", "")
	trace, _ := opts["trace"].(bool)
	return &measurement.DNSOptions{
		Target: t,
		Query: measurement.DNSQuery{
			Type:     queryType,
			Resolver: resolver,
			Protocol: protocol,
			Port:     port,
		},
		Trace: trace,
	}, nil
}

// Ping validates and normalizes ping options.
func Ping(opts map[string]any) (*measurement.PingOptions, error) {
	t, err := target(opts)
	if err != nil {
		return nil, err
	}
	packets, err := intInRange(opts, "packets", 4, 1, 16)
	if err != nil {
		return nil, err
	}
	return &measurement.PingOptions{Target: t, Packets: packets}, nil
}

// Traceroute validates and normalizes traceroute options.
func Traceroute(opts map[string]any) (*measurement.TracerouteOptions, error) {
	t, err := target(opts)
	if err != nil {
		return nil, err
	}
	protocol, err := oneOf(opts, "protocol", "icmp", "icmp", "tcp", "udp")
	if err != nil {
		return nil, err
	}
	port := str(opts, "port", "33434")
	return &measurement.TracerouteOptions{Target: t, Protocol: protocol, Port: port}, nil
}

// MTR validates and normalizes MTR options. Packets defaults to 3.
func MTR(opts map[string]any) (*measurement.MTROptions, error) {
	t, err := target(opts)
	if err != nil {
		return nil, err
	}
	protocol, err := oneOf(opts, "protocol", "icmp", "icmp", "tcp", "udp")
	if err != nil {
		return nil, err
	}
	port := str(opts, "port", "33434")
	packets, err := intInRange(opts, "packets", 3, 1, 16)
	if err != nil {
		return nil, err
	}
	return &measurement.MTROptions{
		Target:   t,
		Protocol: protocol,
		Port:     port,
		Packets:  packets,
	}, nil
}

// HTTP validates and normalizes HTTP options.
func HTTP(opts map[string]any) (*measurement.HTTPOptions, error) {
	t, err := target(opts)
	if err != nil {
		return nil, err
	}
	method, err := nestedOneOf(opts, "query", "method", "get", "get", "head", "options")
	if err != nil {
		return nil, err
	}
	protocol, err := nestedOneOf(opts, "query", "protocol", "http", "http", "https", "http2")
	if err != nil {
		return nil, err
	}
	path := nestedStr(opts, "query", "path", "/")
	if !strings.HasPrefix(path, "/") {
		return nil, invalid("query.path", "must start with /, got %q", path)
	}
	query := nestedStr(opts, "query", "query", "")
	resolver := nestedStr(opts, "query", "resolver", "")
	headers := map[string]string{}
	if q, ok := opts["query"].(map[string]any); ok {
		if raw, ok := q["headers"].(map[string]any); ok {
			for k, v := range raw {
				if s, ok := v.(string); ok {
					headers[k] = s
				}
			}
		}
	}
	return &measurement.HTTPOptions{
		Target: t,
		Query: measurement.HTTPQuery{
			Method:   strings.ToUpper(method),
			Protocol: protocol,
			Path:     path,
			Query:    query,
			Headers:  headers,
			Resolver: resolver,
		},
	}, nil
}
