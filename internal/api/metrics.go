package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics counts the economy's traffic on a private registry so the
// default Go collectors stay out of the scrape.
type metrics struct {
	registry *prometheus.Registry

	sessionsStarted prometheus.Counter
	clicks          prometheus.Counter
	clicksRejected  prometheus.Counter
	purchases       *prometheus.CounterVec
	collections     prometheus.Counter
	wagers          *prometheus.CounterVec
	grants          prometheus.Counter
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &metrics{
		registry: registry,
		sessionsStarted: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "klicks",
			Name:      "sessions_started_total",
			Help:      "Play sessions created.",
		}),
		clicks: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "klicks",
			Name:      "clicks_total",
			Help:      "Accepted clicks.",
		}),
		clicksRejected: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "klicks",
			Name:      "clicks_rejected_total",
			Help:      "Clicks rejected by the cooldown.",
		}),
		purchases: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "klicks",
			Name:      "purchases_total",
			Help:      "Completed purchases by catalog.",
		}, []string{"catalog"}),
		collections: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "klicks",
			Name:      "income_collections_total",
			Help:      "Passive income collections.",
		}),
		wagers: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "klicks",
			Name:      "wagers_total",
			Help:      "Settled wagers by outcome.",
		}, []string{"outcome"}),
		grants: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "klicks",
			Name:      "admin_grants_total",
			Help:      "Admin grants applied.",
		}),
	}
}
