package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ClaimsSigned       *prometheus.CounterVec
	PaymentsAuthorized *prometheus.CounterVec
	PayoutUserSats     prometheus.Counter
	PayoutPlatformSats prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the wallet metrics on an explicit registerer so tests can
// use an isolated registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ClaimsSigned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didwallet_claims_signed_total",
			Help: "Total number of claims signed, by claim kind",
		}, []string{"kind"}),
		PaymentsAuthorized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didwallet_payments_authorized_total",
			Help: "Total number of payment authorizations obtained, by wallet type",
		}, []string{"wallet_type"}),
		PayoutUserSats: factory.NewCounter(prometheus.CounterOpts{
			Name: "didwallet_payout_user_sats_total",
			Help: "Total sats attributed to authenticating parties by payout splits",
		}),
		PayoutPlatformSats: factory.NewCounter(prometheus.CounterOpts{
			Name: "didwallet_payout_platform_sats_total",
			Help: "Total sats attributed to the platform share by payout splits",
		}),
	}
}

func (m *Metrics) IncrementClaimsSigned(kind string) {
	m.ClaimsSigned.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementPaymentsAuthorized(walletType string) {
	m.PaymentsAuthorized.WithLabelValues(walletType).Inc()
}

func (m *Metrics) RecordPayoutSplit(userSats, platformSats int) {
	m.PayoutUserSats.Add(float64(userSats))
	m.PayoutPlatformSats.Add(float64(platformSats))
}
