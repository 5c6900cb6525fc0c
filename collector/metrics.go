package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

var recordCount = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "validator_stats",
		Subsystem: "collector",
		Name:      "records_total",
		Help:      "Total number of report records by lookup outcome",
	},
	[]string{"outcome"},
)

func observeRecord(r Record) {
	recordCount.WithLabelValues(outcome(r)).Inc()
}

func outcome(r Record) string {
	switch {
	case !r.HasError():
		return outcomeFound
	case r.Index == NotFound:
		return outcomeNotFound
	default:
		return outcomeError
	}
}
