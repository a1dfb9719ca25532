// Package metrics exports client lifecycle events to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/quic-go/qclient"
	"github.com/quic-go/qclient/logging"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "qclient"

func getIPVersion(addr net.Addr) string {
	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return ""
	}
	if udpAddr.IP.To4() != nil {
		return "ipv4"
	}
	return "ipv6"
}

var (
	connectAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "connect_attempts_total",
			Help:      "Sessions created",
		},
	)
	statelessRejects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "stateless_rejects_total",
			Help:      "Sessions replaced after a stateless reject",
		},
	)
	requestsReplayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "requests_replayed_total",
			Help:      "Requests resent after a stateless reject",
		},
	)
	requestsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "unconfirmed_requests_dropped_total",
			Help:      "Requests no longer needed for replay after handshake confirmation",
		},
	)
	connectResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "connects_total",
			Help:      "Results of Connect",
		},
		[]string{"result"},
	)
	hellosPerConnect = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "connect_client_hellos",
			Help:      "Client hellos sent for one Connect",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		},
	)
	connectDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "connect_duration_seconds",
			Help:      "Duration of Connect",
			Buckets:   prometheus.ExponentialBuckets(0.001, 1.3, 35),
		},
	)
	migrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "socket_migrations_total",
			Help:      "Socket Migrations",
		},
		[]string{"ip_version"},
	)
	readLoopYields = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "read_loop_yields_total",
			Help:      "Times the packet reader yielded to other work",
		},
	)
	readErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "read_errors_total",
			Help:      "Socket read errors",
		},
	)
	disconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "disconnects_total",
			Help:      "Disconnects",
		},
	)
)

// NewClientTracer creates a new tracer using the default Prometheus registerer.
func NewClientTracer() *logging.ClientTracer {
	return NewClientTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewClientTracerWithRegisterer creates a new tracer using a given Prometheus registerer.
// A tracer should be used for a single client.
func NewClientTracerWithRegisterer(registerer prometheus.Registerer) *logging.ClientTracer {
	for _, c := range [...]prometheus.Collector{
		connectAttempts,
		statelessRejects,
		requestsReplayed,
		requestsDropped,
		connectResults,
		hellosPerConnect,
		connectDuration,
		migrations,
		readLoopYields,
		readErrors,
		disconnects,
	} {
		if err := registerer.Register(c); err != nil {
			if ok := errors.As(err, &prometheus.AlreadyRegisteredError{}); !ok {
				panic(err)
			}
		}
	}

	var startTime time.Time
	observeConnect := func(result string, hellos int) {
		connectResults.WithLabelValues(result).Inc()
		hellosPerConnect.Observe(float64(hellos))
		if !startTime.IsZero() {
			connectDuration.Observe(time.Since(startTime).Seconds())
			startTime = time.Time{}
		}
	}
	return &logging.ClientTracer{
		StartedConnectAttempt: func(attempt int, _ logging.ConnectionID, _ []logging.Version) {
			if attempt == 0 || startTime.IsZero() {
				startTime = time.Now()
			}
			connectAttempts.Inc()
		},
		ReceivedStatelessReject: func(int, int) { statelessRejects.Inc() },
		ReplayedRequests:        func(n int) { requestsReplayed.Add(float64(n)) },
		DroppedUnconfirmedRequests: func(n int) {
			requestsDropped.Add(float64(n))
		},
		Connected: func(hellos int) { observeConnect("connected", hellos) },
		ConnectFailed: func(err error, hellos int) {
			observeConnect(failureReason(err), hellos)
		},
		MigratedSocket: func(local net.Addr) {
			migrations.WithLabelValues(getIPVersion(local)).Inc()
		},
		YieldedReadLoop: func() { readLoopYields.Inc() },
		ReadError:       func(error) { readErrors.Inc() },
		Closed:          func() { disconnects.Inc() },
	}
}

func failureReason(err error) string {
	var (
		tooMany   *qclient.TooManyStatelessRejectsError
		handshake *qclient.HandshakeError
		readErr   *qclient.ReadError
	)
	switch {
	case errors.As(err, &tooMany):
		return "too_many_stateless_rejects"
	case errors.As(err, &handshake):
		return "handshake_error"
	case errors.As(err, &readErr):
		return "read_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, qclient.ErrIdle):
		return "stalled"
	default:
		return "other"
	}
}
