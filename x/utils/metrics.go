package utils

import (
	"strconv"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Labels to use for partitioning processed messages.
	requestLabels = []string{"path", "op", "code"}

	// Labels to use for partitioning processing latencies.
	latencyLabels = []string{"path", "op"}
)

// Metrics is a decorator that instruments message processing with
// prometheus counters and latency histograms.
type Metrics struct {
	// Counts of processed messages.
	Requests *prometheus.CounterVec

	// Latencies of processing a message.
	Latencies *prometheus.HistogramVec
}

var _ weave.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator. Collectors are registered with
// given registerer, if one is provided.
func NewMetrics(namespace string, reg prometheus.Registerer) Metrics {
	m := Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "How many messages were processed, partitioned by path, operation and result code.",
			},
			requestLabels,
		),
		Latencies: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "message_duration_seconds",
				Help:      "How long processing a message takes, partitioned by path and operation.",
			},
			latencyLabels,
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Latencies)
	}
	return m
}

// Check counts and times the check of a message.
func (m Metrics) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	path := weave.GetPath(tx)
	timer := prometheus.NewTimer(m.Latencies.WithLabelValues(path, "check"))
	res, err := next.Check(ctx, store, tx)
	timer.ObserveDuration()
	m.count(path, "check", err)
	return res, err
}

// Deliver counts and times the delivery of a message.
func (m Metrics) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	path := weave.GetPath(tx)
	timer := prometheus.NewTimer(m.Latencies.WithLabelValues(path, "deliver"))
	res, err := next.Deliver(ctx, store, tx)
	timer.ObserveDuration()
	m.count(path, "deliver", err)
	return res, err
}

func (m Metrics) count(path, op string, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.Requests.WithLabelValues(path, op, strconv.FormatUint(uint64(code), 10)).Inc()
}
