package dashtec

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const statusMalformed = "malformed_response"

var searchRequestCount = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "validator_stats",
		Subsystem: "dashtec",
		Name:      "request_total",
		Help:      "Total number of dashtec search requests",
	},
	[]string{"status"},
)

var searchRequestDurationMillis = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "validator_stats",
		Subsystem: "dashtec",
		Name:      "request_duration_millis",
		Help:      "Duration of dashtec search requests in milliseconds",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000},
	},
	[]string{"status"},
)

func observeSearch(status string, t0 time.Time) {
	searchRequestCount.WithLabelValues(status).Inc()
	searchRequestDurationMillis.WithLabelValues(status).Observe(float64(time.Since(t0).Milliseconds()))
}

func observeSearchCode(statusCode int, t0 time.Time) {
	observeSearch(strconv.Itoa(statusCode), t0)
}

func observeSearchErr(err error, t0 time.Time) {
	observeSearch(errorToStatus(err), t0)
}

func errorToStatus(err error) string {
	status := "unknown_error"
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			status = "timeout"
		} else {
			status = "connection_refused"
		}
	}
	return status
}
