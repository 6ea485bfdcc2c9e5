package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetrics records outcomes of chat command handling.
type CommandMetrics struct {
	duration *prometheus.HistogramVec
	handled  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewCommandMetrics registers the command metrics on the provided registerer.
func NewCommandMetrics(reg prometheus.Registerer) *CommandMetrics {
	if reg == nil {
		return &CommandMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "command_duration_seconds",
		Help:    "Duration of chat command handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})
	handled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commands_handled_total",
		Help: "Chat commands handled, by verb.",
	}, []string{"command"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "command_failures_total",
		Help: "Chat commands that ended in a failure response.",
	}, []string{"command"})
	reg.MustRegister(duration, handled, failures)
	return &CommandMetrics{
		duration: duration,
		handled:  handled,
		failures: failures,
	}
}

// ObserveDuration records handling latency for the named command.
func (c *CommandMetrics) ObserveDuration(command string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(command)).Observe(duration.Seconds())
}

// IncHandled increments the handled counter for the named command.
func (c *CommandMetrics) IncHandled(command string) {
	if c == nil || c.handled == nil {
		return
	}
	c.handled.WithLabelValues(normalizeLabel(command)).Inc()
}

// IncFailure increments the failure counter for the named command.
func (c *CommandMetrics) IncFailure(command string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(command)).Inc()
}

func normalizeLabel(command string) string {
	if command == "" {
		return "unknown"
	}
	return command
}
