package testkit

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the simulated ledger did. Every ledger gets its own registry
// so parallel tests never share counters.
type Metrics struct {
	Registry *prometheus.Registry

	triggers      prometheus.Counter
	bounces       *prometheus.CounterVec
	assetsDefined prometheus.Counter
	payments      *prometheus.CounterVec
	fees          prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		triggers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "triggers_total",
			Help:      "Triggers delivered to contracts",
		}),
		bounces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "bounces_total",
			Help:      "Bounced triggers by error code",
		}, []string{"code"}),
		assetsDefined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "assets_defined_total",
			Help:      "Assets defined by contracts",
		}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "payments_value_total",
			Help:      "Value paid out by contracts, refunds included",
		}, []string{"kind"}),
		fees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "fees_total",
			Help:      "Response fees charged to contracts",
		}),
	}
	m.Registry.MustRegister(m.triggers, m.bounces, m.assetsDefined, m.payments, m.fees)
	return m
}

func (m *Metrics) Triggers() prometheus.Counter { return m.triggers }

func (m *Metrics) Bounces(code string) prometheus.Counter { return m.bounces.WithLabelValues(code) }

func (m *Metrics) AssetsDefined() prometheus.Counter { return m.assetsDefined }

// Payments returns the counter for native payouts ("native"), minted or returned
// shares ("asset") or bounce refunds ("refund").
func (m *Metrics) Payments(kind string) prometheus.Counter {
	return m.payments.WithLabelValues(kind)
}

func (m *Metrics) Fees() prometheus.Counter { return m.fees }
