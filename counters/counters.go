/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

// Package counters aggregates prometheus collectors into the flat name to value map served by GetCounters
package counters

import (
	"strings"

	e "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
)

// Aggregator owns a prometheus registry and flattens it into counters
type Aggregator struct {
	registry *prometheus.Registry
	logger   *zerolog.Logger
}

// NewAggregator creates an Aggregator with an empty registry
func NewAggregator(logger *zerolog.Logger) *Aggregator {
	return &Aggregator{
		registry: prometheus.NewRegistry(),
		logger:   logger,
	}
}

// Registry returns the underlying registry, used to expose the collectors over HTTP
func (a *Aggregator) Registry() *prometheus.Registry {
	return a.registry
}

// Register adds the given collectors to the registry
func (a *Aggregator) Register(collectors ...prometheus.Collector) error {
	for _, c := range collectors {
		if err := a.registry.Register(c); err != nil {
			return e.Wrap(err, "could not register collector")
		}
	}
	return nil
}

// GetCounters gathers every registered collector. Counters, gauges and untyped metrics map to their truncated
// value, summaries and histograms to their sample count and sum. Keys are the metric name followed by the label
// values in label name order, joined by dots
func (a *Aggregator) GetCounters() map[string]int64 {
	counters := make(map[string]int64)
	families, err := a.registry.Gather()
	if err != nil && a.logger != nil {
		a.logger.Warn().Msgf("could not gather all counters: %v", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := counterKey(mf.GetName(), m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				counters[key] = int64(m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				counters[key] = int64(m.GetGauge().GetValue())
			case dto.MetricType_UNTYPED:
				counters[key] = int64(m.GetUntyped().GetValue())
			case dto.MetricType_SUMMARY:
				counters[key+".count"] = int64(m.GetSummary().GetSampleCount())
				counters[key+".sum"] = int64(m.GetSummary().GetSampleSum())
			case dto.MetricType_HISTOGRAM:
				counters[key+".count"] = int64(m.GetHistogram().GetSampleCount())
				counters[key+".sum"] = int64(m.GetHistogram().GetSampleSum())
			}
		}
	}
	return counters
}

func counterKey(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, 0, len(labels)+1)
	parts = append(parts, name)
	for _, l := range labels {
		parts = append(parts, l.GetValue())
	}
	return strings.Join(parts, ".")
}
