// Package metrics exposes the Prometheus collectors shared by the router,
// the domain handlers and the external-call clients.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type hotelMetrics struct {
	intents       *prometheus.CounterVec
	handlerErrors *prometheus.CounterVec
	externalCalls *prometheus.HistogramVec
}

var (
	hotelMetricsOnce sync.Once
	hotelMetricsInst *hotelMetrics
)

func global() *hotelMetrics {
	hotelMetricsOnce.Do(func() {
		hotelMetricsInst = newHotelMetrics()
	})
	return hotelMetricsInst
}

func newHotelMetrics() *hotelMetrics {
	return &hotelMetrics{
		intents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "router",
			Name:      "intents_total",
			Help:      "Messages routed, labeled by classified intent",
		}, []string{"intent"}),
		handlerErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "handler",
			Name:      "errors_total",
			Help:      "Handler operations that returned an error, labeled by handler and error code",
		}, []string{"handler", "code"}),
		externalCalls: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hotel",
			Subsystem: "external",
			Name:      "call_seconds",
			Help:      "Latency of calls to external collaborators",
			Buckets:   prometheus.DefBuckets,
		}, []string{"call"}),
	}
}

// IntentRouted counts one routed message.
func IntentRouted(intent string) {
	global().intents.WithLabelValues(intent).Inc()
}

// HandlerError counts one failed handler operation.
func HandlerError(handler, code string) {
	global().handlerErrors.WithLabelValues(handler, code).Inc()
}

// TimeExternalCall starts a timer for an external call; invoke the returned
// func when the call returns.
func TimeExternalCall(call string) func() {
	start := time.Now()
	observer := global().externalCalls.WithLabelValues(call)
	return func() {
		observer.Observe(time.Since(start).Seconds())
	}
}
