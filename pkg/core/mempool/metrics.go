package mempool

import "github.com/prometheus/client_golang/prometheus"

// Bucket labels for the two ratio-bucketed gauge vectors. Prometheus
// metric names may not contain the dots the contractual names use
// (mempool.size.transactions and friends), so the dotted name becomes the
// Help text and the registered name is the underscore-joined equivalent.
const (
	bucketRatioLT02 = "lt_0.2"
	bucketRatioLT04 = "lt_0.4"
	bucketRatioLT06 = "lt_0.6"
	bucketRatioLT08 = "lt_0.8"
	bucketRatioLT1  = "lt_1"

	bucketWeightedLT1 = "lt_1"
	bucketWeightedEQ1 = "eq_1"
	bucketWeightedGT1 = "gt_1"
	bucketWeightedGT2 = "gt_2"
	bucketWeightedGT3 = "gt_3"
)

var (
	sizeTransactions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mempool",
		Name:      "size_transactions",
		Help:      "mempool.size.transactions: count of held transactions.",
	})
	sizeBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mempool",
		Name:      "size_bytes",
		Help:      "mempool.size.bytes: aggregate serialized byte total.",
	})
	costBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mempool",
		Name:      "cost_bytes",
		Help:      "mempool.cost.bytes: aggregate cost.",
	})
	actionsPaid = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mempool",
		Name:      "actions_paid",
		Help:      "mempool.actions.paid: sum of conventional_actions - unpaid_actions.",
	})
	actionsUnpaid = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mempool",
		Name:      "actions_unpaid",
		Help:      "mempool.actions.unpaid: unpaid action count bucketed by fee/weight ratio.",
	}, []string{"bucket"})
	sizeWeighted = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mempool",
		Name:      "size_weighted",
		Help:      "mempool.size.weighted: aggregate serialized size bucketed by fee/weight ratio.",
	}, []string{"bucket"})
)

func init() {
	prometheus.MustRegister(
		sizeTransactions,
		sizeBytes,
		costBytes,
		actionsPaid,
		actionsUnpaid,
		sizeWeighted,
	)
}

// ratioBucket returns the mempool.actions.unpaid bucket label for a
// fee/weight ratio.
func ratioBucket(ratio float64) string {
	switch {
	case ratio < 0.2:
		return bucketRatioLT02
	case ratio < 0.4:
		return bucketRatioLT04
	case ratio < 0.6:
		return bucketRatioLT06
	case ratio < 0.8:
		return bucketRatioLT08
	default:
		return bucketRatioLT1
	}
}

// weightedBucket returns the mempool.size.weighted bucket label for a
// fee/weight ratio.
func weightedBucket(ratio float64) string {
	switch {
	case ratio < 1:
		return bucketWeightedLT1
	case ratio == 1:
		return bucketWeightedEQ1
	case ratio > 3:
		return bucketWeightedGT3
	case ratio > 2:
		return bucketWeightedGT2
	default:
		return bucketWeightedGT1
	}
}

// emitMetrics recomputes every gauge from the held set's current
// contents. Called as the last step of every mutating VerifiedSet
// operation, after the totals it reads (I3/I4) are already consistent, so
// observers never see a snapshot mid-mutation.
func emitMetrics(s *VerifiedSet) {
	sizeTransactions.Set(float64(len(s.txs)))
	sizeBytes.Set(float64(s.totalSize))
	costBytes.Set(float64(s.totalCost))

	var paid uint64
	unpaidByBucket := map[string]uint64{
		bucketRatioLT02: 0, bucketRatioLT04: 0, bucketRatioLT06: 0,
		bucketRatioLT08: 0, bucketRatioLT1: 0,
	}
	weightedByBucket := map[string]uint64{
		bucketWeightedLT1: 0, bucketWeightedEQ1: 0, bucketWeightedGT1: 0,
		bucketWeightedGT2: 0, bucketWeightedGT3: 0,
	}

	for _, tx := range s.txs {
		if tx.ConventionalActions >= tx.UnpaidActions {
			paid += tx.ConventionalActions - tx.UnpaidActions
		}
		unpaidByBucket[ratioBucket(tx.FeeWeightRatio)] += tx.UnpaidActions
		weightedByBucket[weightedBucket(tx.FeeWeightRatio)] += uint64(tx.Size)
	}
	actionsPaid.Set(float64(paid))
	for bucket, v := range unpaidByBucket {
		actionsUnpaid.WithLabelValues(bucket).Set(float64(v))
	}
	for bucket, v := range weightedByBucket {
		sizeWeighted.WithLabelValues(bucket).Set(float64(v))
	}
}

// resetMetrics zeros every gauge, used by VerifiedSet.Clear.
func resetMetrics() {
	sizeTransactions.Set(0)
	sizeBytes.Set(0)
	costBytes.Set(0)
	actionsPaid.Set(0)
	for _, bucket := range []string{bucketRatioLT02, bucketRatioLT04, bucketRatioLT06, bucketRatioLT08, bucketRatioLT1} {
		actionsUnpaid.WithLabelValues(bucket).Set(0)
	}
	for _, bucket := range []string{bucketWeightedLT1, bucketWeightedEQ1, bucketWeightedGT1, bucketWeightedGT2, bucketWeightedGT3} {
		sizeWeighted.WithLabelValues(bucket).Set(0)
	}
}
