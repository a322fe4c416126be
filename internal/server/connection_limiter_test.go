package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionLimits_GlobalCap(t *testing.T) {
	limits := NewConnectionLimits(2, 10, 1000, 1000)

	ok, _ := limits.Acquire("10.0.0.1")
	require.True(t, ok)
	ok, _ = limits.Acquire("10.0.0.2")
	require.True(t, ok)

	ok, reason := limits.Acquire("10.0.0.3")
	assert.False(t, ok)
	assert.Equal(t, LimitReasonGlobal, reason)

	limits.Release("10.0.0.1")
	ok, _ = limits.Acquire("10.0.0.3")
	assert.True(t, ok)
}

func TestConnectionLimits_PerIPCap(t *testing.T) {
	limits := NewConnectionLimits(100, 2, 1000, 1000)

	ok, _ := limits.Acquire("10.0.0.1")
	require.True(t, ok)
	ok, _ = limits.Acquire("10.0.0.1")
	require.True(t, ok)

	ok, reason := limits.Acquire("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, LimitReasonPerIP, reason)

	// A different IP is unaffected.
	ok, _ = limits.Acquire("10.0.0.2")
	assert.True(t, ok)
}

func TestConnectionLimits_PerIPRejectionRollsBackGlobal(t *testing.T) {
	limits := NewConnectionLimits(2, 1, 1000, 1000)

	ok, _ := limits.Acquire("10.0.0.1")
	require.True(t, ok)

	// Second acquire for the same IP fails on the per-IP cap; the global
	// slot it grabbed must be returned.
	ok, reason := limits.Acquire("10.0.0.1")
	require.False(t, ok)
	require.Equal(t, LimitReasonPerIP, reason)

	ok, _ = limits.Acquire("10.0.0.2")
	assert.True(t, ok)
	ok, _ = limits.Acquire("10.0.0.3")
	assert.True(t, ok, "global slot leaked by the rolled-back acquire")
}

func TestConnectionLimits_Rate(t *testing.T) {
	limits := NewConnectionLimits(100, 100, 1, 2)

	ok, _ := limits.Acquire("10.0.0.1")
	require.True(t, ok)
	ok, _ = limits.Acquire("10.0.0.1")
	require.True(t, ok)

	ok, reason := limits.Acquire("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, LimitReasonRate, reason)
}

func TestConnectionLimits_ReleaseUnknownIPIsSafe(t *testing.T) {
	limits := NewConnectionLimits(10, 10, 1000, 1000)
	assert.NotPanics(t, func() { limits.Release("10.9.9.9") })
}
