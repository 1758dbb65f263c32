package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// UpstreamMetrics records marketplace API calls and the listings they yield.
// It satisfies the adapters' CallRecorder interface.
type UpstreamMetrics struct {
	callsTotal     *Counter
	callDuration   *Histogram
	listingsServed *Counter
}

// NewUpstreamMetrics creates the upstream instrument set on meter.
func NewUpstreamMetrics(meter metric.Meter) (*UpstreamMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	callsTotal, err := NewCounter(
		meter,
		"shoprank_upstream_call_total",
		"Total number of marketplace API calls by outcome",
		"{call}",
	)
	if err != nil {
		return nil, err
	}

	callDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "shoprank_upstream_call_duration_seconds",
		Description: "Marketplace API call latency in seconds",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	listingsServed, err := NewCounter(
		meter,
		"shoprank_listings_served_total",
		"Total number of listings returned to clients",
		"{listing}",
	)
	if err != nil {
		return nil, err
	}

	return &UpstreamMetrics{
		callsTotal:     callsTotal,
		callDuration:   callDuration,
		listingsServed: listingsServed,
	}, nil
}

// RecordUpstreamCall counts one upstream call. Calls that never reached the
// network (elapsed == 0) are counted but not timed.
func (m *UpstreamMetrics) RecordUpstreamCall(ctx context.Context, platform, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.callsTotal.Inc(ctx, AttrPlatform.String(platform), AttrOutcome.String(outcome))
	if elapsed > 0 {
		m.callDuration.RecordDuration(ctx, elapsed, AttrPlatform.String(platform), AttrOutcome.String(outcome))
	}
}

// RecordListingsServed counts listings returned for a platform and category.
func (m *UpstreamMetrics) RecordListingsServed(ctx context.Context, platform, category string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.listingsServed.Add(ctx, int64(count), AttrPlatform.String(platform), AttrCategory.String(category))
}
