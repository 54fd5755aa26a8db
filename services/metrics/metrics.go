package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProviderRequests counts upstream provider API calls by operation and result.
var ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vaders_provider_requests_total",
	Help: "Provider API requests by operation and result.",
}, []string{"op", "result"})

// Logins counts login attempts against the provider.
var Logins = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vaders_logins_total",
	Help: "Provider login attempts by result.",
}, []string{"result"})

// Catalogs is the number of catalogs populated by the last build pass.
var Catalogs = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "vaders_catalogs",
	Help: "Number of populated channel catalogs.",
})
