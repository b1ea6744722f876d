package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	reconcileRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_runs_total",
			Help: "Total number of reconciliation runs by outcome.",
		},
		[]string{"outcome"},
	)
	deltasPushedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_deltas_pushed_total",
			Help: "Deltas successfully pushed to the remote catalog, by field.",
		},
		[]string{"field"},
	)
	pushErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reconcile_push_errors_total",
			Help: "Remote push failures recorded across all runs.",
		},
	)
	recordsUpsertedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_records_upserted_total",
			Help: "Local rows written during the overwrite phase, by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(reconcileRunsTotal)
	prometheus.MustRegister(deltasPushedTotal)
	prometheus.MustRegister(pushErrorsTotal)
	prometheus.MustRegister(recordsUpsertedTotal)
}

func RecordRun(outcome string) {
	reconcileRunsTotal.WithLabelValues(outcome).Inc()
}

func AddDeltasPushed(field string, count int) {
	if count > 0 {
		deltasPushedTotal.WithLabelValues(field).Add(float64(count))
	}
}

func AddPushErrors(count int) {
	if count > 0 {
		pushErrorsTotal.Add(float64(count))
	}
}

func AddRecordsUpserted(kind string, count int) {
	if count > 0 {
		recordsUpsertedTotal.WithLabelValues(kind).Add(float64(count))
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
