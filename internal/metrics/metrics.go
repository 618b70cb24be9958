// Package metrics exposes Prometheus counters for pipeline runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts finished pipeline runs by outcome.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provision_pipeline_runs_total",
		Help: "Pipeline runs by outcome.",
	}, []string{"outcome"})

	// StageFailures counts failures by the stage they occurred in.
	StageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provision_pipeline_stage_failures_total",
		Help: "Pipeline failures by stage.",
	}, []string{"stage"})
)

// ObserveResult records one finished run.
func ObserveResult(failedStage string) {
	if failedStage == "" {
		RunsTotal.WithLabelValues("success").Inc()
		return
	}
	RunsTotal.WithLabelValues("failure").Inc()
	StageFailures.WithLabelValues(failedStage).Inc()
}
