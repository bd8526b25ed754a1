package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Enrichment Prometheus metrics. Standalone package to avoid import
// cycles between the providers/session packages and HTTP.

var (
	ProviderFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idbridge_provider_fetch_total",
		Help: "Llamadas salientes a APIs de providers, por resultado (ok|error)",
	}, []string{"provider", "outcome"})

	CacheReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idbridge_cache_reads_total",
		Help: "Lecturas cache-aside (hit|miss)",
	}, []string{"result"})

	PopulateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "idbridge_session_populate_latency_ms",
		Help:    "Latencia de Populate de sesión en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// Register registers the enrichment metrics on the given registry (or
// default if nil). AlreadyRegistered is tolerated so tests can call it
// repeatedly.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{ProviderFetches, CacheReads, PopulateLatency} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
