package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "operations_total",
		Help:      "Ledger operations by operation name and result status.",
	}, []string{"operation", "status"})

	transferAmountCents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "transferred_cents_total",
		Help:      "Total committed transfer volume in cents.",
	})
)
