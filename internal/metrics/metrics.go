// Package metrics exposes Prometheus counters for secret store operations.
// Registration is lazy: hosts that never call Init pay nothing, and the
// Record functions degrade to no-ops.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal        *prometheus.CounterVec
	operationRetriesTotal  *prometheus.CounterVec
	reauthenticationsTotal prometheus.Counter

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// Init registers all Prometheus metrics with the default registry.
// This should be called once at startup if metrics are enabled.
func Init() {
	metricsOnce.Do(func() {
		operationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaultstore_operations_total",
				Help: "Total number of secret store operations by outcome",
			},
			[]string{"operation", "status"},
		)

		operationRetriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaultstore_operation_retries_total",
				Help: "Total number of operations retried after re-authentication",
			},
			[]string{"operation"},
		)

		reauthenticationsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vaultstore_reauthentications_total",
				Help: "Total number of session re-authentications",
			},
		)

		metricsRegistered = true
	})
}

// RecordOperation records the terminal outcome of one logical operation.
func RecordOperation(operation, status string) {
	if !metricsRegistered || operationsTotal == nil {
		return
	}
	operationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordRetry records an operation retry triggered by a stale session.
func RecordRetry(operation string) {
	if !metricsRegistered || operationRetriesTotal == nil {
		return
	}
	operationRetriesTotal.WithLabelValues(operation).Inc()
}

// RecordReauthentication records a session being replaced after initial setup.
func RecordReauthentication() {
	if !metricsRegistered || reauthenticationsTotal == nil {
		return
	}
	reauthenticationsTotal.Inc()
}

// IsRegistered returns whether metrics have been initialized.
func IsRegistered() bool {
	return metricsRegistered
}
