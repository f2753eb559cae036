package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	KindOrder   = "order"
	KindProduct = "product"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersFetched     prometheus.Counter
	OrdersFiltered    prometheus.Counter
	OrdersInvalid     prometheus.Counter
	EventsDelivered   *prometheus.CounterVec
	DeliveryLatency   prometheus.Histogram
	FetchPages        prometheus.Counter
	ReportPublishErrs prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	fetched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_orders_fetched_total",
		Help: "Orders returned by the order source",
	})
	filtered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_orders_filtered_total",
		Help: "Orders skipped because of a non-qualifying financial status",
	})
	invalid := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_orders_invalid_total",
		Help: "Orders skipped because required fields are missing",
	})
	delivered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_events_delivered_total",
		Help: "Track calls by event kind and outcome",
	}, []string{"kind", "outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_delivery_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	pages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_fetch_pages_total",
	})
	publishErrs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_report_publish_errors_total",
	})

	r.MustRegister(fetched, filtered, invalid, delivered, latency, pages, publishErrs)

	return &Registry{
		reg:               r,
		OrdersFetched:     fetched,
		OrdersFiltered:    filtered,
		OrdersInvalid:     invalid,
		EventsDelivered:   delivered,
		DeliveryLatency:   latency,
		FetchPages:        pages,
		ReportPublishErrs: publishErrs,
	}
}

func (r *Registry) Delivered(kind string, success bool) {
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeFailure
	}

	r.EventsDelivered.WithLabelValues(kind, outcome).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
