package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/v2g-advisor/core/metrics"
)

func TestInfluxSinkFallbackOnUnreachableServer(t *testing.T) {
	sink := NewInfluxSinkWithFallback("http://127.0.0.1:1", "token", "org", "bucket")
	_, isNop := sink.(coremetrics.NopSink)
	require.True(t, isNop, "unreachable influx must fall back to NopSink")
}

func TestInfluxSinkTrimsWritePath(t *testing.T) {
	sink := NewInfluxSink("http://localhost:8086/api/v2/write", "token", "org", "bucket")
	require.NotNil(t, sink)
	sink.Close()
}

func TestRound3(t *testing.T) {
	require.Equal(t, 1.235, round3(1.23456))
	require.Equal(t, -2.5, round3(-2.5001))
}
