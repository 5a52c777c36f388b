package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabboard_document_loads_total",
		Help: "Successful whole-document loads by backend.",
	}, []string{"backend"})

	loadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabboard_document_load_failures_total",
		Help: "Failed whole-document loads by backend.",
	}, []string{"backend"})

	saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabboard_document_saves_total",
		Help: "Successful whole-document saves by backend.",
	}, []string{"backend"})

	saveFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabboard_document_save_failures_total",
		Help: "Failed whole-document saves by backend.",
	}, []string{"backend"})

	fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabboard_gateway_fallbacks_total",
		Help: "Times the fallback gateway diverted an operation to the secondary backend.",
	}, []string{"op"})
)
