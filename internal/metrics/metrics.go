// Package metrics exposes Prometheus counters for the discovery engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SpinsTotal counts successful spins by discovery mode.
	SpinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spindle_spins_total",
		Help: "Successful album spins by discovery mode.",
	}, []string{"mode"})

	// NoCandidatesTotal counts spins that found nothing to pick.
	NoCandidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spindle_no_candidates_total",
		Help: "Spin requests that produced an empty candidate set, by mode.",
	}, []string{"mode"})

	// ListensTotal counts confirmed listens.
	ListensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spindle_listens_total",
		Help: "Confirmed listened spins.",
	})

	// TrophiesAwardedTotal counts newly awarded trophies.
	TrophiesAwardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spindle_trophies_awarded_total",
		Help: "Trophies newly awarded to users.",
	})
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
