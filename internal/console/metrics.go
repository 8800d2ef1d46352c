package console

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeRejected  = "rejected"
	outcomeTransport = "transport_error"
	outcomeCancelled = "cancelled"
	outcomeRefused   = "refused"
)

var actionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "console_actions_total",
		Help: "Console actions by outcome",
	},
	[]string{"action", "outcome"},
)

func recordAction(action, outcome string) {
	actionsTotal.WithLabelValues(action, outcome).Inc()
}
