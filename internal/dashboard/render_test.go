package dashboard

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/NomadCrew/trcs2-health/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, v View) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, v))
	return buf.String()
}

func baseView(state State) View {
	return View{AppName: "TRCS2", Environment: "development", Version: "1.0.0", State: state}
}

func TestRender_Header(t *testing.T) {
	out := render(t, baseView(State{}))

	assert.Contains(t, out, "TRCS2 Health Dashboard")
	assert.Contains(t, out, "Environment: development | Version: 1.0.0")
}

func TestRender_Initial(t *testing.T) {
	out := render(t, baseView(State{Loading: true}))

	assert.Contains(t, out, "Loading health data...")
	assert.NotContains(t, out, "Status:")
	assert.NotContains(t, out, "Error:")
}

func TestRender_Card(t *testing.T) {
	ms := int64(3)
	data := &types.HealthCheckResponse{
		Status:    types.HealthStatusDegraded,
		Timestamp: "2026-10-14T09:30:05.000Z",
		Uptime:    5999,
		Details: &types.HealthDetails{
			Memory:   &types.MemoryInfo{HeapUsedMB: 950, HeapTotalMB: 1000, HeapPercentage: 95},
			System:   &types.SystemInfo{Platform: "linux", CPUs: 8, TotalMemoryMB: 16384, FreeMemoryMB: 8192},
			Database: &types.DatabaseInfo{Connected: true, ResponseTimeMs: &ms},
			Cache:    &types.DatabaseInfo{Connected: false},
		},
	}

	out := render(t, baseView(State{Data: data}))

	assert.Contains(t, out, "Status: DEGRADED")
	assert.Contains(t, out, "Last Updated: 2026-10-14 09:30:05 UTC")
	assert.Contains(t, out, "Uptime: 5s")
	assert.Contains(t, out, "Heap Used: 950 MB")
	assert.Contains(t, out, "Heap Total: 1000 MB")
	assert.Contains(t, out, "Heap Usage: 95%")
	assert.Contains(t, out, "Platform: linux")
	assert.Contains(t, out, "CPUs: 8")
	assert.Contains(t, out, "Total Memory: 16384 MB")
	assert.Contains(t, out, "Free Memory: 8192 MB")
	assert.Contains(t, out, "Response Time: 3 ms")
	assert.Contains(t, out, "Connected: no")
	assert.NotContains(t, out, "Loading")
	assert.NotContains(t, out, "\033[")
}

func TestRender_NoDetailsOmitsBlocks(t *testing.T) {
	data := &types.HealthCheckResponse{Status: types.HealthStatusHealthy, Timestamp: "2026-10-14T09:30:05.000Z", Uptime: 999}

	out := render(t, baseView(State{Data: data}))

	assert.Contains(t, out, "Status: HEALTHY")
	assert.Contains(t, out, "Uptime: 0s")
	assert.NotContains(t, out, "Memory Usage")
	assert.NotContains(t, out, "System Info")
}

func TestRender_ErrorWithStaleData(t *testing.T) {
	data := &types.HealthCheckResponse{Status: types.HealthStatusHealthy, Timestamp: "2026-10-14T09:30:05.000Z", Uptime: 5000}

	out := render(t, baseView(State{Loading: true, Err: "health check failed: 503", Data: data}))

	assert.Contains(t, out, "Loading health data...")
	assert.Contains(t, out, "Error: health check failed: 503")
	assert.Contains(t, out, "Status: HEALTHY")
	assert.Less(t, strings.Index(out, "Error:"), strings.Index(out, "Status:"))
}

func TestRender_FetchedAt(t *testing.T) {
	data := &types.HealthCheckResponse{Status: types.HealthStatusHealthy, Timestamp: "not-a-time"}
	fetched := time.Date(2026, 10, 14, 9, 31, 0, 0, time.UTC)

	out := render(t, baseView(State{Data: data, LastUpdated: fetched}))

	assert.Contains(t, out, "Last Updated: not-a-time")
	assert.Contains(t, out, "Fetched at 2026-10-14 09:31:00 UTC")
}

func TestRender_Colors(t *testing.T) {
	tests := []struct {
		status types.HealthStatus
		color  string
		label  string
	}{
		{types.HealthStatusHealthy, ansiGreen, "HEALTHY"},
		{types.HealthStatusDegraded, ansiYellow, "DEGRADED"},
		{types.HealthStatusUnhealthy, ansiRed, "UNHEALTHY"},
		{types.HealthStatus("mystery"), ansiGrey, "MYSTERY"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			v := baseView(State{Data: &types.HealthCheckResponse{Status: tt.status}})
			v.Color = true

			out := render(t, v)

			assert.Contains(t, out, tt.color+tt.label+ansiReset)
			assert.Equal(t, tt.color, StatusColor(tt.status))
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	v := baseView(State{Err: "boom", Data: &types.HealthCheckResponse{Status: types.HealthStatusHealthy, Uptime: 42000}})

	assert.Equal(t, render(t, v), render(t, v))
}
