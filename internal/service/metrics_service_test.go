package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceSnapshotAggregatesGatewayCalls(t *testing.T) {
	m := NewMetricsService()

	m.ObserveGatewayCall("get_availability_hours", 10*time.Millisecond)
	m.ObserveGatewayCall("get_schedule_entries", 30*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.GatewayCallCount)
	assert.InDelta(t, 20.0, snap.AverageGatewayCallMs, 1e-9)
}

func TestMetricsServiceNilReceiverIsSafe(t *testing.T) {
	var m *MetricsService

	m.ObserveGatewayCall("get_people", time.Millisecond)
	m.ObserveHTTPRequest("GET", "/status", 200, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.Zero(t, m.Snapshot().GatewayCallCount)
}
