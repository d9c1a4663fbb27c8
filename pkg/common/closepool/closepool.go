// SPDX-License-Identifier: GPL-3.0-or-later

// Package closepool collects [io.Closer] instances created while
// performing an operation (typically network connections established
// by a dialer) so the caller can close them all at once with a single
// deferred call, regardless of how many connections the operation
// itself ended up opening.
package closepool

import (
	"io"
	"sync"
)

// Pool is a goroutine-safe collection of closers. The zero value is
// ready to use.
type Pool struct {
	mu      sync.Mutex
	closers []io.Closer
}

// Add registers c for closing when Close is called.
func (p *Pool) Add(c io.Closer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closers = append(p.closers, c)
}

// Close closes every registered closer and clears the pool, so a
// second call is a harmless no-op. It returns the first non-nil error
// encountered, after attempting to close every closer regardless.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var first error
	for _, c := range p.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	p.closers = nil
	return first
}
