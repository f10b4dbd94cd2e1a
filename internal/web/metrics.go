package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run metrics
var (
	runsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yamusic_runs_started_total",
			Help: "Total number of download runs started",
		},
	)

	runsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yamusic_runs_finished_total",
			Help: "Total number of download runs finished, by status",
		},
		[]string{"status"},
	)

	tracksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yamusic_tracks_processed_total",
			Help: "Total number of tracks processed, by outcome",
		},
		[]string{"outcome"},
	)

	bytesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yamusic_bytes_received_total",
			Help: "Total audio bytes received from the service",
		},
	)
)
