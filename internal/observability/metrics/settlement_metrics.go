package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "royalty"

const (
	FeeOutcomeFinalized = "finalized"
	FeeOutcomeFailed    = "failed"
	FeeOutcomeConflict  = "conflict"
)

// SettlementMetrics counts settlement pipeline activity.
// All methods are safe on a nil receiver so services can run without metrics.
type SettlementMetrics struct {
	earningsIngested   *prometheus.CounterVec
	amountRecouped     prometheus.Counter
	royaltiesCreated   prometheus.Counter
	royaltyAmount      prometheus.Counter
	feeOutcomes        *prometheus.CounterVec
	notificationErrors prometheus.Counter
	previewRows        *prometheus.CounterVec
}

var (
	settlementMetricsOnce sync.Once
	settlementMetrics     *SettlementMetrics
)

// Settlement returns the process-wide metrics registered on the default registerer.
func Settlement() *SettlementMetrics {
	settlementMetricsOnce.Do(func() {
		settlementMetrics = NewSettlementMetrics(prometheus.DefaultRegisterer)
	})
	return settlementMetrics
}

// NewSettlementMetrics registers a fresh set of collectors on registerer.
func NewSettlementMetrics(registerer prometheus.Registerer) *SettlementMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &SettlementMetrics{
		earningsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "earnings_ingested_total",
			Help:      "Earnings persisted, by category and whether allocation ran.",
		}, []string{"category", "allocated"}),
		amountRecouped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recouped_amount_total",
			Help:      "Money applied to recoupable balances.",
		}),
		royaltiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "royalties_created_total",
			Help:      "Royalty rows written by the allocator.",
		}),
		royaltyAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "royalty_amount_total",
			Help:      "Money distributed to artists as royalties.",
		}),
		feeOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "platform_fee_outcomes_total",
			Help:      "Platform fee finalization attempts by outcome.",
		}, []string{"outcome"}),
		notificationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Earning notifications that could not be handed off.",
		}),
		previewRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_preview_rows_total",
			Help:      "Rows seen by the earnings import preview, by result.",
		}, []string{"result"}),
	}
	registerer.MustRegister(
		m.earningsIngested,
		m.amountRecouped,
		m.royaltiesCreated,
		m.royaltyAmount,
		m.feeOutcomes,
		m.notificationErrors,
		m.previewRows,
	)
	return m
}

func (m *SettlementMetrics) EarningIngested(category string, allocated bool) {
	if m == nil {
		return
	}
	label := "false"
	if allocated {
		label = "true"
	}
	m.earningsIngested.WithLabelValues(categoryLabel(category), label).Inc()
}

func (m *SettlementMetrics) Recouped(amount decimal.Decimal) {
	if m == nil || !amount.IsPositive() {
		return
	}
	m.amountRecouped.Add(amount.InexactFloat64())
}

func (m *SettlementMetrics) RoyaltiesCreated(count int, total decimal.Decimal) {
	if m == nil || count == 0 {
		return
	}
	m.royaltiesCreated.Add(float64(count))
	m.royaltyAmount.Add(total.InexactFloat64())
}

func (m *SettlementMetrics) FeeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.feeOutcomes.WithLabelValues(outcome).Inc()
}

func (m *SettlementMetrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.notificationErrors.Inc()
}

// PreviewRows records a finished import preview.
func (m *SettlementMetrics) PreviewRows(matched, unmatched, skipped int) {
	if m == nil {
		return
	}
	m.previewRows.WithLabelValues("matched").Add(float64(matched))
	m.previewRows.WithLabelValues("unmatched").Add(float64(unmatched))
	m.previewRows.WithLabelValues("skipped").Add(float64(skipped))
}

// categoryLabel keeps label cardinality bounded: free-text categories collapse to "other".
func categoryLabel(category string) string {
	switch category {
	case "Streaming", "Sync", "Downloads", "Physical":
		return category
	}
	return "other"
}
