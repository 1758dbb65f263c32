package ecommerce

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Upstream call outcomes reported to a CallRecorder
const (
	CallOutcomeOK          = "ok"
	CallOutcomeFallback    = "fallback"
	CallOutcomeError       = "error"
	CallOutcomeConfigError = "config_error"
)

// CallRecorder receives one record per upstream call
type CallRecorder interface {
	RecordUpstreamCall(ctx context.Context, platform, outcome string, elapsed time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordUpstreamCall(context.Context, string, string, time.Duration) {}

// adapterOptions holds the collaborators shared by every adapter
type adapterOptions struct {
	httpClient *http.Client
	logger     *zap.Logger
	recorder   CallRecorder
	now        func() time.Time
}

// AdapterOption is a functional option for adapter construction
type AdapterOption func(*adapterOptions)

// WithHTTPClient sets the outbound HTTP client
func WithHTTPClient(client *http.Client) AdapterOption {
	return func(o *adapterOptions) {
		o.httpClient = client
	}
}

// WithLogger sets the adapter logger
func WithLogger(logger *zap.Logger) AdapterOption {
	return func(o *adapterOptions) {
		o.logger = logger
	}
}

// WithCallRecorder sets the metrics sink for upstream calls
func WithCallRecorder(recorder CallRecorder) AdapterOption {
	return func(o *adapterOptions) {
		o.recorder = recorder
	}
}

// WithClock overrides the time source used for signatures and timings
func WithClock(now func() time.Time) AdapterOption {
	return func(o *adapterOptions) {
		o.now = now
	}
}

func newAdapterOptions(opts []AdapterOption) adapterOptions {
	o := adapterOptions{
		logger:   zap.NewNop(),
		recorder: noopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = NewHTTPClient(0)
	}
	return o
}
