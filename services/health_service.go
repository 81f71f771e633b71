package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/NomadCrew/trcs2-health/types"
	"go.uber.org/zap"
)

const (
	bytesPerMB = 1024 * 1024
	percentage = 100

	// DefaultHeapThresholdPercent is the readiness threshold used when none is configured.
	DefaultHeapThresholdPercent = 90
	defaultDependencyTimeout    = 2 * time.Second

	// timestampLayout matches ISO-8601 with millisecond precision in UTC.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// HealthServiceInterface is the capability set the endpoint layer depends on.
type HealthServiceInterface interface {
	GetHealthStatus(ctx context.Context) types.HealthCheckResponse
	GetLivenessStatus(ctx context.Context) types.HealthCheckResponse
	GetReadinessStatus(ctx context.Context) types.HealthCheckResponse
	GetStartupStatus(ctx context.Context) types.HealthCheckResponse
}

// LivenessCheck replaces the default liveness policy. Returning an error
// reports the process as UNHEALTHY.
type LivenessCheck func(ctx context.Context) error

// HealthService evaluates process health on demand. The only state it keeps
// is the start time captured at construction.
type HealthService struct {
	startTime         time.Time
	now               func() time.Time
	heapThreshold     int
	memory            MemoryReader
	system            SystemReader
	database          DependencyProbe
	cache             DependencyProbe
	dependencyTimeout time.Duration
	liveness          LivenessCheck
	metrics           *healthMetrics
	log               *zap.SugaredLogger
}

// HealthServiceOption configures a HealthService.
type HealthServiceOption func(*HealthService)

// WithClock sets the time source. The start time is read from it.
func WithClock(now func() time.Time) HealthServiceOption {
	return func(h *HealthService) {
		h.now = now
	}
}

func WithMemoryReader(r MemoryReader) HealthServiceOption {
	return func(h *HealthService) {
		h.memory = r
	}
}

func WithSystemReader(r SystemReader) HealthServiceOption {
	return func(h *HealthService) {
		h.system = r
	}
}

// WithDatabaseProbe enables the database connectivity check in the startup probe.
func WithDatabaseProbe(p DependencyProbe) HealthServiceOption {
	return func(h *HealthService) {
		h.database = p
	}
}

// WithCacheProbe enables the cache connectivity check in the startup probe.
func WithCacheProbe(p DependencyProbe) HealthServiceOption {
	return func(h *HealthService) {
		h.cache = p
	}
}

func WithDependencyTimeout(d time.Duration) HealthServiceOption {
	return func(h *HealthService) {
		if d > 0 {
			h.dependencyTimeout = d
		}
	}
}

func WithLivenessCheck(check LivenessCheck) HealthServiceOption {
	return func(h *HealthService) {
		h.liveness = check
	}
}

// NewHealthService creates a HealthService. heapThresholdPercent outside
// 1..100 falls back to DefaultHeapThresholdPercent.
func NewHealthService(heapThresholdPercent int, opts ...HealthServiceOption) *HealthService {
	if heapThresholdPercent <= 0 || heapThresholdPercent > percentage {
		heapThresholdPercent = DefaultHeapThresholdPercent
	}

	h := &HealthService{
		now:               time.Now,
		heapThreshold:     heapThresholdPercent,
		memory:            RuntimeMemoryReader{},
		system:            HostSystemReader{},
		dependencyTimeout: defaultDependencyTimeout,
		metrics:           newHealthMetrics(),
		log:               logger.GetLogger().Named("health"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startTime = h.now()
	return h
}

// StartTime returns the instant the service was constructed.
func (h *HealthService) StartTime() time.Time {
	return h.startTime
}

// GetHealthStatus reports that the process is alive.
func (h *HealthService) GetHealthStatus(ctx context.Context) types.HealthCheckResponse {
	resp := h.newResponse(types.HealthStatusHealthy)
	h.record("health", resp)
	return resp
}

// GetLivenessStatus reports whether the process is running and not deadlocked.
func (h *HealthService) GetLivenessStatus(ctx context.Context) types.HealthCheckResponse {
	status := types.HealthStatusHealthy
	if h.liveness != nil {
		if err := h.liveness(ctx); err != nil {
			h.log.Errorw("Liveness check failed", "error", err)
			status = types.HealthStatusUnhealthy
		}
	}

	resp := h.newResponse(status)
	h.record("live", resp)
	return resp
}

// GetReadinessStatus reports memory pressure. Heap usage at or above the
// threshold is DEGRADED.
func (h *HealthService) GetReadinessStatus(ctx context.Context) types.HealthCheckResponse {
	heap := h.memory.ReadHeap()
	memory := memoryInfo(heap)

	status := types.HealthStatusHealthy
	if memory.HeapPercentage >= h.heapThreshold {
		status = types.HealthStatusDegraded
		h.log.Warnw("Heap usage at or above readiness threshold",
			"heapPercentage", memory.HeapPercentage,
			"threshold", h.heapThreshold)
	}

	resp := h.newResponse(status)
	resp.Details = &types.HealthDetails{Memory: &memory}

	h.metrics.heapPercent.Set(float64(memory.HeapPercentage))
	h.record("ready", resp)
	return resp
}

// GetStartupStatus reports host information and, when configured, the
// connectivity of the database and cache.
func (h *HealthService) GetStartupStatus(ctx context.Context) types.HealthCheckResponse {
	snapshot, err := h.system.ReadSystem(ctx)
	if err != nil {
		h.log.Warnw("Failed to read host memory", "error", err)
	}

	details := &types.HealthDetails{
		System: &types.SystemInfo{
			Platform:      snapshot.Platform,
			CPUs:          snapshot.CPUs,
			TotalMemoryMB: toMB(snapshot.TotalMemory),
			FreeMemoryMB:  toMB(snapshot.FreeMemory),
		},
	}

	var wg sync.WaitGroup
	if h.database != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			details.Database = h.pingDependency(ctx, "database", h.database)
		}()
	}
	if h.cache != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			details.Cache = h.pingDependency(ctx, "cache", h.cache)
		}()
	}
	wg.Wait()

	status := types.HealthStatusHealthy
	if (details.Database != nil && !details.Database.Connected) ||
		(details.Cache != nil && !details.Cache.Connected) {
		status = types.HealthStatusDegraded
	}

	resp := h.newResponse(status)
	resp.Details = details
	h.record("startup", resp)
	return resp
}

func (h *HealthService) pingDependency(ctx context.Context, name string, probe DependencyProbe) *types.DatabaseInfo {
	pingCtx, cancel := context.WithTimeout(ctx, h.dependencyTimeout)
	defer cancel()

	start := h.now()
	err := probe.Ping(pingCtx)
	elapsed := h.now().Sub(start).Milliseconds()

	if err != nil {
		h.log.Errorw("Dependency health check failed", "dependency", name, "error", err)
		h.metrics.dependencyUp.WithLabelValues(name).Set(0)
		return &types.DatabaseInfo{Connected: false}
	}

	h.metrics.dependencyUp.WithLabelValues(name).Set(1)
	return &types.DatabaseInfo{Connected: true, ResponseTimeMs: &elapsed}
}

func (h *HealthService) newResponse(status types.HealthStatus) types.HealthCheckResponse {
	now := h.now()
	return types.HealthCheckResponse{
		Status:    status,
		Timestamp: now.UTC().Format(timestampLayout),
		Uptime:    h.uptimeMs(now),
	}
}

func (h *HealthService) uptimeMs(now time.Time) int64 {
	uptime := now.Sub(h.startTime).Milliseconds()
	if uptime < 0 {
		return 0
	}
	return uptime
}

func (h *HealthService) record(probe string, resp types.HealthCheckResponse) {
	h.metrics.checks.WithLabelValues(probe, string(resp.Status)).Inc()
	h.metrics.uptime.Set(float64(resp.Uptime) / 1000)
}

// memoryInfo converts heap stats to whole megabytes and a percentage in [0,100].
func memoryInfo(heap HeapStats) types.MemoryInfo {
	info := types.MemoryInfo{
		HeapUsedMB:  toMB(heap.Used),
		HeapTotalMB: toMB(heap.Total),
	}
	if heap.Total == 0 {
		return info
	}

	pct := int(math.Round(float64(heap.Used) / float64(heap.Total) * percentage))
	switch {
	case pct < 0:
		pct = 0
	case pct > percentage:
		pct = percentage
	}
	info.HeapPercentage = pct
	return info
}

func toMB(bytes uint64) int64 {
	return int64(math.Round(float64(bytes) / bytesPerMB))
}
