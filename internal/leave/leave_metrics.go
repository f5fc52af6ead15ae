package leave

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	submissions *prometheus.CounterVec
	decisions   *prometheus.CounterVec
	busyRetries prometheus.Counter
}

// NewMetrics registers the leave counters on reg. A nil reg keeps them
// unregistered, which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hris",
			Subsystem: "leave",
			Name:      "submissions_total",
			Help:      "Leave submissions by outcome.",
		}, []string{"outcome"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hris",
			Subsystem: "leave",
			Name:      "decisions_total",
			Help:      "Leave decisions by resulting status.",
		}, []string{"status", "auto_rejected"}),
		busyRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hris",
			Subsystem: "leave",
			Name:      "decision_busy_retries_total",
			Help:      "Decisions retried after a lock timeout.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.submissions, m.decisions, m.busyRetries)
	}
	return m
}

func (m *Metrics) observeSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeDecision(l Leave) {
	if m == nil {
		return
	}
	auto := "false"
	if l.AutoRejected {
		auto = "true"
	}
	m.decisions.WithLabelValues(l.Status, auto).Inc()
}

func (m *Metrics) observeBusyRetry() {
	if m == nil {
		return
	}
	m.busyRetries.Inc()
}
