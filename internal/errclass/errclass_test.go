// SPDX-License-Identifier: GPL-3.0-or-later

package errclass_test

import (
	"context"
	"errors"
	"syscall"
	"testing"

	"github.com/netprobe-project/netprobe/internal/errclass"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, "", errclass.New(nil))
	})

	t.Run("context canceled", func(t *testing.T) {
		assert.Equal(t, errclass.ECANCELED, errclass.New(context.Canceled))
	})

	t.Run("context deadline exceeded", func(t *testing.T) {
		assert.Equal(t, errclass.ETIMEDOUT, errclass.New(context.DeadlineExceeded))
	})

	t.Run("wrapped errno", func(t *testing.T) {
		err := errors.Join(errors.New("dial tcp: "), syscall.ECONNREFUSED)
		assert.Equal(t, errclass.ECONNREFUSED, errclass.New(err))
	})

	t.Run("unknown error falls back to substring match", func(t *testing.T) {
		assert.Equal(t, errclass.EUNKNOWN, errclass.New(errors.New("something weird")))
	})
}
