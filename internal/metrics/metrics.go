// Package metrics holds Prometheus instruments shared across the backend.
// All collectors register with the global registry, so importing this
// package anywhere is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SoftDeleteTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_soft_delete_total",
			Help: "Records moved from the active store to the archive.",
		}, []string{"entity"})

	RestoreTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_restore_total",
			Help: "Records moved back from the archive to the active store.",
		}, []string{"entity"})

	PurgeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_purge_total",
			Help: "Archive records removed permanently.",
		}, []string{"entity"})

	LifecycleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_errors_total",
			Help: "Lifecycle sequences that failed mid-flight, by operation.",
		}, []string{"entity", "op"})

	GeneratorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_calls_total",
			Help: "External generator and search calls, by collaborator and outcome.",
		}, []string{"collaborator", "outcome"})
)

func init() {
	prometheus.MustRegister(
		SoftDeleteTotal,
		RestoreTotal,
		PurgeTotal,
		LifecycleErrors,
		GeneratorCalls,
	)
}
