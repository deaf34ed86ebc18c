// Package metrics exposes prometheus instrumentation for store calls and
// view activations.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/store"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	storeCalls    *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
	activations   *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		storeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billed",
			Name:      "store_calls_total",
			Help:      "Remote store calls by operation and result (ok, client or server).",
		}, []string{"op", "result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "billed",
			Name:      "store_call_duration_seconds",
			Help:      "Latency of remote store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billed",
			Name:      "view_activations_total",
			Help:      "View activations by view name.",
		}, []string{"view"}),
	}

	reg.MustRegister(m.storeCalls, m.storeDuration, m.activations)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveActivation counts one view activation. A nil receiver is a no-op.
func (m *Metrics) ObserveActivation(view string) {
	if m == nil {
		return
	}
	m.activations.WithLabelValues(view).Inc()
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = store.ClassOf(err).String()
	}
	m.storeCalls.WithLabelValues(op, result).Inc()
	m.storeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Instrument wraps s so every call is counted and timed. A nil store stays
// nil. When s signs users in, the result does too.
func (m *Metrics) Instrument(s store.Store) store.Store {
	if s == nil || m == nil {
		return s
	}

	base := &instrumented{s: s, m: m}
	if auth, ok := s.(store.Authenticator); ok {
		return &instrumentedAuth{instrumented: base, auth: auth}
	}
	return base
}

type instrumented struct {
	s store.Store
	m *Metrics
}

func (i *instrumented) Bills() store.Bills {
	return &instrumentedBills{b: i.s.Bills(), m: i.m}
}

type instrumentedAuth struct {
	*instrumented
	auth store.Authenticator
}

func (i *instrumentedAuth) Login(ctx context.Context, email, password string) (token string, err error) {
	defer func(start time.Time) { i.m.observe("login", start, err) }(time.Now())
	return i.auth.Login(ctx, email, password)
}

type instrumentedBills struct {
	b store.Bills
	m *Metrics
}

func (i *instrumentedBills) List(ctx context.Context) (bills []bill.Bill, err error) {
	defer func(start time.Time) { i.m.observe("list", start, err) }(time.Now())
	return i.b.List(ctx)
}

func (i *instrumentedBills) Create(ctx context.Context, req store.CreateRequest) (created *store.Created, err error) {
	defer func(start time.Time) { i.m.observe("create", start, err) }(time.Now())
	return i.b.Create(ctx, req)
}

func (i *instrumentedBills) Update(ctx context.Context, key string, b bill.Bill) (updated *bill.Bill, err error) {
	defer func(start time.Time) { i.m.observe("update", start, err) }(time.Now())
	return i.b.Update(ctx, key, b)
}
