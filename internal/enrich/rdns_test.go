// SPDX-License-Identifier: GPL-3.0-or-later

package enrich_test

import (
	"context"
	"errors"
	"testing"

	"github.com/netprobe-project/netprobe/internal/enrich"
	"github.com/stretchr/testify/assert"
)

type stubPTRResolver struct {
	names []string
	err   error
}

func (s stubPTRResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	return s.names, s.err
}

func TestReverseDNS(t *testing.T) {
	t.Run("returns the first name with the trailing dot stripped", func(t *testing.T) {
		r := stubPTRResolver{names: []string{"example.com."}}
		assert.Equal(t, "example.com", enrich.ReverseDNS(context.Background(), r, "93.184.216.34"))
	})

	t.Run("returns empty string on lookup failure", func(t *testing.T) {
		r := stubPTRResolver{err: errors.New("no PTR record")}
		assert.Equal(t, "", enrich.ReverseDNS(context.Background(), r, "10.0.0.1"))
	})

	t.Run("returns empty string when no names are returned", func(t *testing.T) {
		r := stubPTRResolver{}
		assert.Equal(t, "", enrich.ReverseDNS(context.Background(), r, "10.0.0.1"))
	})
}
