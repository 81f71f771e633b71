package types

// HealthStatus is the coarse state reported by every health endpoint.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// IsValid reports whether s is one of the known statuses.
func (s HealthStatus) IsValid() bool {
	switch s {
	case HealthStatusHealthy, HealthStatusDegraded, HealthStatusUnhealthy:
		return true
	}
	return false
}

// HealthCheckResponse is the JSON body returned by /health, /health/live,
// /health/ready and /health/startup.
type HealthCheckResponse struct {
	Status    HealthStatus `json:"status" example:"healthy"`
	Timestamp string       `json:"timestamp" example:"2026-10-14T09:30:00.000Z"`
	// Uptime is the number of milliseconds since the process started.
	Uptime  int64          `json:"uptime" example:"5000"`
	Details *HealthDetails `json:"details,omitempty"`
}

type HealthDetails struct {
	Memory   *MemoryInfo   `json:"memory,omitempty"`
	System   *SystemInfo   `json:"system,omitempty"`
	Database *DatabaseInfo `json:"database,omitempty"`
	Cache    *DatabaseInfo `json:"cache,omitempty"`
}

type MemoryInfo struct {
	HeapUsedMB     int64 `json:"heapUsedMB"`
	HeapTotalMB    int64 `json:"heapTotalMB"`
	HeapPercentage int   `json:"heapPercentage"`
}

type SystemInfo struct {
	Platform      string `json:"platform"`
	CPUs          int    `json:"cpus"`
	TotalMemoryMB int64  `json:"totalMemoryMB"`
	FreeMemoryMB  int64  `json:"freeMemoryMB"`
}

// DatabaseInfo describes the connectivity of an external dependency.
type DatabaseInfo struct {
	Connected      bool   `json:"connected"`
	ResponseTimeMs *int64 `json:"responseTimeMs,omitempty"`
}
