package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// healthMetrics holds the prometheus collectors updated on every evaluation.
type healthMetrics struct {
	checks       *prometheus.CounterVec
	heapPercent  prometheus.Gauge
	uptime       prometheus.Gauge
	dependencyUp *prometheus.GaugeVec
}

// Singleton pattern for metrics (avoid double registration in tests).
var (
	hmInstance        *healthMetrics
	hmOnce            sync.Once
	hmDefaultRegistry = prometheus.DefaultRegisterer
)

func newHealthMetrics() *healthMetrics {
	hmOnce.Do(func() {
		hmInstance = &healthMetrics{
			checks: promauto.With(hmDefaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "health_checks_total",
				Help: "Number of health evaluations by probe and resulting status",
			}, []string{"probe", "status"}),
			heapPercent: promauto.With(hmDefaultRegistry).NewGauge(prometheus.GaugeOpts{
				Name: "health_heap_usage_percent",
				Help: "Heap usage percentage observed by the last readiness evaluation",
			}),
			uptime: promauto.With(hmDefaultRegistry).NewGauge(prometheus.GaugeOpts{
				Name: "health_uptime_seconds",
				Help: "Process uptime observed by the last evaluation",
			}),
			dependencyUp: promauto.With(hmDefaultRegistry).NewGaugeVec(prometheus.GaugeOpts{
				Name: "health_dependency_up",
				Help: "1 if the dependency answered the last startup ping, 0 otherwise",
			}, []string{"dependency"}),
		}
	})
	return hmInstance
}

// resetHealthMetricsForTesting swaps in a fresh registry so that each test
// observes its own counters. Only call from tests.
func resetHealthMetricsForTesting() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	hmDefaultRegistry = reg
	hmInstance = nil
	hmOnce = sync.Once{}
	return reg
}
