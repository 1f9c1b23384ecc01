//go:build linux

package proc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadSummary(t *testing.T) {
	s := ReadSummary(context.Background())

	assert.Positive(t, s.Uptime)
	assert.GreaterOrEqual(t, s.Load1, 0.0)
	assert.InDelta(t, 50, s.MemUsedPercent, 50)
}
