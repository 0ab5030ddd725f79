package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CollaboratorCalls counts outbound calls to external collaborators by
// outcome. Collaborators are "product_lookup" and "generate_text"; outcomes
// are "ok", "miss" (lookup only), "error".
var CollaboratorCalls = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "smartpantry_collaborator_calls_total",
		Help: "Outbound collaborator calls by collaborator and outcome.",
	},
	[]string{"collaborator", "outcome"},
)

// FallbacksTotal counts the times an AI-backed estimate degraded to its
// deterministic fallback.
var FallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "smartpantry_fallbacks_total",
		Help: "Deterministic fallbacks taken after a collaborator failure.",
	},
	[]string{"component"},
)
