// SPDX-License-Identifier: GPL-3.0-or-later

// Package config reads the handful of environment variables that tune
// the probe's runtime behavior. There is no config file: every
// setting has a documented default and an environment variable
// override, preferring flags/env over config files for a small number
// of operational knobs.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every environment-tunable setting the handlers and
// entrypoint consult.
type Config struct {
	// MTRInterval is the delay between mtr probe rounds. Production
	// defaults to 1s; NODE_ENV=development shortens it so local runs
	// finish quickly.
	MTRInterval time.Duration

	// HTTPBodyCapBytes caps how much of an HTTP response body the
	// http handler buffers into the result before truncating.
	HTTPBodyCapBytes int64

	// SubprocessTimeout bounds how long a single dig/ping/traceroute/mtr
	// invocation is allowed to run before it is forcibly killed.
	SubprocessTimeout time.Duration
}

const (
	defaultMTRIntervalProd = time.Second
	defaultMTRIntervalDev  = 100 * time.Millisecond
	defaultHTTPBodyCap     = 10 * 1024 * 1024
	defaultSubprocessCap   = 30 * time.Second
)

// FromEnv builds a [Config] from the process environment, the way
// operators are expected to tune a deployed probe: no config file to
// keep in sync, just a few env vars with safe defaults.
func FromEnv() Config {
	cfg := Config{
		MTRInterval:       defaultMTRIntervalProd,
		HTTPBodyCapBytes:  defaultHTTPBodyCap,
		SubprocessTimeout: defaultSubprocessCap,
	}
	if os.Getenv("NODE_ENV") == "development" {
		cfg.MTRInterval = defaultMTRIntervalDev
	}
	if v, ok := parseEnvInt64("NETPROBE_HTTP_BODY_CAP_BYTES"); ok {
		cfg.HTTPBodyCapBytes = v
	}
	if v, ok := parseEnvDuration("NETPROBE_SUBPROCESS_TIMEOUT"); ok {
		cfg.SubprocessTimeout = v
	}
	return cfg
}

func parseEnvInt64(name string) (int64, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseEnvDuration(name string) (time.Duration, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
