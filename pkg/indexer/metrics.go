package indexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	housesIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housesearch_indexed_total",
		Help: "The total number of successful house reindex operations",
	})
	housesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housesearch_removed_total",
		Help: "The total number of successful house unindex operations",
	})
	changeRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housesearch_retries_total",
		Help: "The total number of change messages re-published after a failure",
	})
	retriesExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housesearch_retries_exhausted_total",
		Help: "The total number of changes dropped after exceeding the retry bound",
	})
	malformedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housesearch_malformed_messages_total",
		Help: "The total number of change messages that could not be decoded",
	})
)
