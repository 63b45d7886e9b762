package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// EditionReads counts window reads by where the editions came from:
	// cache, store, or empty.
	EditionReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspaper_edition_reads_total",
			Help: "Total number of edition window reads",
		},
		[]string{"view", "source"},
	)

	BookmarkSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspaper_bookmark_saves_total",
			Help: "Total number of bookmark attempts by outcome",
		},
		[]string{"outcome"},
	)

	PlaybackResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspaper_playback_resolutions_total",
			Help: "Total number of playback resolutions by mode",
		},
		[]string{"mode"},
	)
)
