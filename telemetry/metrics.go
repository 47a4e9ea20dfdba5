// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package telemetry registers the validator's Prometheus collectors: one
// gauge/counter/histogram per cycle stage named in the specification, plus
// a MultiGatherer so the HTTP /metrics endpoint can compose them with the
// registries of other subsystems.
package telemetry

import (
	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Registry is a registerer that can also be scraped.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// NewRegistry returns a fresh, unpopulated registry.
func NewRegistry() Registry {
	return prometheus.NewRegistry()
}

// MultiGatherer fans a single Gather() call out across named sub-gatherers,
// letting each subsystem own its own registry while still exposing one
// /metrics surface.
type MultiGatherer interface {
	prometheus.Gatherer
	Register(name string, gatherer prometheus.Gatherer) error
}

type multiGatherer struct {
	gatherers map[string]prometheus.Gatherer
}

// NewMultiGatherer returns an empty MultiGatherer.
func NewMultiGatherer() MultiGatherer {
	return &multiGatherer{gatherers: make(map[string]prometheus.Gatherer)}
}

func (mg *multiGatherer) Register(name string, gatherer prometheus.Gatherer) error {
	if _, ok := mg.gatherers[name]; ok {
		return prometheus.AlreadyRegisteredError{}
	}
	mg.gatherers[name] = gatherer
	return nil
}

func (mg *multiGatherer) Gather() ([]*dto.MetricFamily, error) {
	var result []*dto.MetricFamily
	for _, g := range mg.gatherers {
		families, err := g.Gather()
		if err != nil {
			return nil, err
		}
		result = append(result, families...)
	}
	return result, nil
}

// Metrics is the validator's set of cycle-level collectors, one field per
// stage of the reconcile/score/publish loop.
type Metrics struct {
	CyclesTotal          prometheus.Counter
	CycleErrorsTotal     *prometheus.CounterVec
	CycleDurationSeconds prometheus.Histogram

	SubmissionsResolvedTotal    prometheus.Counter
	SubmissionsRejectedTotal    *prometheus.CounterVec
	MetricFetchErrorsTotal      *prometheus.CounterVec
	AIFilteredObservationsTotal prometheus.Counter

	ActiveMinersGauge   prometheus.Gauge
	EligibleMinersGauge *prometheus.GaugeVec

	WeightsPublishedTotal    prometheus.Counter
	WeightPublishErrorsTotal prometheus.Counter
	LastPublishUnixSeconds   prometheus.Gauge

	// CycleDurationAverage mirrors the teacher's poll-duration Averager
	// (consensus polls track an EWMA of completion time the same way): a
	// running average the cycle histogram above doesn't give you directly.
	CycleDurationAverage metric.Averager
}

// NewMetrics constructs and registers every collector under namespace. All
// registrations share one call so a single Register failure aborts cleanly.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cycles_total", Help: "Completed reconcile/score/publish cycles.",
		}),
		CycleErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cycle_errors_total", Help: "Cycle-level errors by stage.",
		}, []string{"stage"}),
		CycleDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "cycle_duration_seconds", Help: "Wall time of a full cycle.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
		SubmissionsResolvedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "submissions_resolved_total", Help: "Submissions discovered from peer commitments.",
		}),
		SubmissionsRejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "submissions_rejected_total", Help: "Submissions rejected by reason.",
		}, []string{"reason"}),
		MetricFetchErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "metric_fetch_errors_total", Help: "Metric acquisition failures by kind.",
		}, []string{"kind"}),
		AIFilteredObservationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "ai_filtered_observations_total", Help: "Stored observations that failed the signature or ai_score validity gate.",
		}),
		ActiveMinersGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "active_miners", Help: "Miners observed within the active window.",
		}),
		EligibleMinersGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "eligible_miners", Help: "Miners eligible for weight on the last publish, by path.",
		}, []string{"path"}),
		WeightsPublishedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "weights_published_total", Help: "Successful on-chain weight publications.",
		}),
		WeightPublishErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "weight_publish_errors_total", Help: "Failed on-chain weight publications.",
		}),
		LastPublishUnixSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_publish_unix_seconds", Help: "Unix time of the last successful weight publication.",
		}),
	}

	collectors := []prometheus.Collector{
		m.CyclesTotal, m.CycleErrorsTotal, m.CycleDurationSeconds,
		m.SubmissionsResolvedTotal, m.SubmissionsRejectedTotal, m.MetricFetchErrorsTotal,
		m.AIFilteredObservationsTotal, m.ActiveMinersGauge, m.EligibleMinersGauge,
		m.WeightsPublishedTotal, m.WeightPublishErrorsTotal, m.LastPublishUnixSeconds,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	avg, err := metric.NewAverager(namespace+"_cycle_duration_avg", "Running average of cycle wall time.", reg)
	if err != nil {
		return nil, err
	}
	m.CycleDurationAverage = avg

	return m, nil
}
