package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics incremented by the HTTP layer.
type Metrics struct {
	ItinerariesCreated prometheus.Counter
	ItemsCreated       prometheus.Counter
	PhotosAdded        prometheus.Counter
	RoutesCreated      prometheus.Counter
	SyncFailures       prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ItinerariesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripvault_itineraries_created_total",
			Help: "Total number of itineraries created",
		}),
		ItemsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripvault_items_created_total",
			Help: "Total number of itinerary items created",
		}),
		PhotosAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripvault_photos_added_total",
			Help: "Total number of photos added to items",
		}),
		RoutesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripvault_routes_created_total",
			Help: "Total number of routes created",
		}),
		SyncFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tripvault_aggregate_sync_failures_total",
			Help: "Mutations where the standalone write stuck but the embedded-copy write failed",
		}),
	}
}
