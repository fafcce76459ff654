package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusInscriptionsBuilt       prometheus.Counter
	prometheusMigrationsCompleted     prometheus.Counter
	prometheusTransfersCompleted      prometheus.Counter
	prometheusFeeEstimatesServed      prometheus.Counter
	prometheusCredentialVerifications prometheus.Counter
	prometheusCredentialVerifyFailed  prometheus.Counter
	prometheusDeactivationsCompleted  prometheus.Counter
)

var prometheusMetricsInitialised = false

func initPrometheusMetrics() {
	if prometheusMetricsInitialised {
		return
	}

	prometheusInscriptionsBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "inscriptions_built",
			Help:      "Number of did:btco inscriptions built by the Lifecycle Manager",
		},
	)
	prometheusMigrationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "migrations_completed",
			Help:      "Number of completed layer migrations (publish or inscribe)",
		},
	)
	prometheusTransfersCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "transfers_completed",
			Help:      "Number of completed ownership transfers",
		},
	)
	prometheusFeeEstimatesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "fee_estimates_served",
			Help:      "Number of cost estimates served by EstimateCost/EstimateTypedOriginalCost",
		},
	)
	prometheusCredentialVerifications = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "credential_verifications",
			Help:      "Number of credential verification passes run via Verify",
		},
	)
	prometheusCredentialVerifyFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "credential_verify_failed",
			Help:      "Number of Verify calls that returned at least one invalid credential",
		},
	)

	prometheusDeactivationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "deactivations_completed",
			Help:      "Number of completed did:btco deactivations",
		},
	)

	prometheusMetricsInitialised = true
}
