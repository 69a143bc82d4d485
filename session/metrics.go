package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var transitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "foodhub_session",
		Name:      "transitions_total",
		Help:      "Actions applied to session state, by kind.",
	},
	[]string{"kind"},
)
