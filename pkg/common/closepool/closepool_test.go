// SPDX-License-Identifier: GPL-3.0-or-later

package closepool_test

import (
	"errors"
	"testing"

	"github.com/netprobe-project/netprobe/pkg/common/closepool"
	"github.com/stretchr/testify/assert"
)

type fakeCloser struct {
	closed bool
	err    error
}

func (c *fakeCloser) Close() error {
	c.closed = true
	return c.err
}

func TestPoolClosesEverything(t *testing.T) {
	var pool closepool.Pool
	a, b := &fakeCloser{}, &fakeCloser{}
	pool.Add(a)
	pool.Add(b)

	assert.NoError(t, pool.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestPoolReturnsFirstError(t *testing.T) {
	var pool closepool.Pool
	boom := errors.New("boom")
	pool.Add(&fakeCloser{err: boom})
	pool.Add(&fakeCloser{})

	assert.ErrorIs(t, pool.Close(), boom)
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	var pool closepool.Pool
	c := &fakeCloser{}
	pool.Add(c)
	assert.NoError(t, pool.Close())
	assert.NoError(t, pool.Close())
}
