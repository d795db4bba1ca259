package api

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once
	metricsErr  error

	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiInflight        *prometheus.GaugeVec
	apiRetriesTotal    *prometheus.CounterVec

	introspectionCacheTotal *prometheus.CounterVec
)

// RegisterMetrics inicializa las métricas del cliente en el registry indicado
// (nil => DefaultRegisterer). Es idempotente: duplicados se ignoran.
func RegisterMetrics(registry prometheus.Registerer) error {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authlete_api_requests_total",
			Help: "Número total de llamadas al backend por operación y status",
		}, []string{"op", "status"})

		apiRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authlete_api_request_duration_seconds",
			Help:    "Latencia de las llamadas al backend",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"})

		apiInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "authlete_api_inflight_requests",
			Help: "Llamadas en vuelo por operación",
		}, []string{"op"})

		apiRetriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authlete_api_retries_total",
			Help: "Reintentos ejecutados por operación",
		}, []string{"op"})

		introspectionCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authlete_introspection_cache_total",
			Help: "Resultados del cache de introspección",
		}, []string{"result"}) // result: hit|miss

		for _, c := range []prometheus.Collector{
			apiRequestsTotal,
			apiRequestDuration,
			apiInflight,
			apiRetriesTotal,
			introspectionCacheTotal,
		} {
			if err := registerCollector(registry, c); err != nil {
				metricsErr = err
				return
			}
		}
	})
	return metricsErr
}

// registerCollector registra el collector, ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

func recordRequest(op string, status int, elapsed time.Duration) {
	if apiRequestsTotal == nil || apiRequestDuration == nil {
		return
	}
	apiRequestsTotal.WithLabelValues(op, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func recordRetry(op string) {
	if apiRetriesTotal != nil {
		apiRetriesTotal.WithLabelValues(op).Inc()
	}
}

func recordCache(result string) {
	if introspectionCacheTotal != nil {
		introspectionCacheTotal.WithLabelValues(result).Inc()
	}
}

func inflightInc(op string) {
	if apiInflight != nil {
		apiInflight.WithLabelValues(op).Inc()
	}
}

func inflightDec(op string) {
	if apiInflight != nil {
		apiInflight.WithLabelValues(op).Dec()
	}
}
