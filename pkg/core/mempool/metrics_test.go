package mempool

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestClearZerosGauges(t *testing.T) {
	s := NewVerifiedSet()
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Insert(newTestTx(100, 4000, nil, 0, 1.0)))
	}
	require.Equal(t, float64(10), testutil.ToFloat64(sizeTransactions))

	s.Clear()
	require.Equal(t, float64(0), testutil.ToFloat64(sizeTransactions))
	require.Equal(t, float64(0), testutil.ToFloat64(sizeBytes))
	require.Equal(t, float64(0), testutil.ToFloat64(costBytes))
}

func TestInsertUpdatesSizeGauges(t *testing.T) {
	s := NewVerifiedSet()
	s.Clear()
	require.NoError(t, s.Insert(newTestTx(200, 4000, nil, 0, 1.0)))
	require.NoError(t, s.Insert(newTestTx(300, 4000, nil, 0, 1.0)))

	require.Equal(t, float64(2), testutil.ToFloat64(sizeTransactions))
	require.Equal(t, float64(500), testutil.ToFloat64(sizeBytes))
	require.Equal(t, float64(8000), testutil.ToFloat64(costBytes))
}

func TestInsertUpdatesWeightedSizeGaugeBySize(t *testing.T) {
	s := NewVerifiedSet()
	s.Clear()
	// Same bucket (ratio == 1), different size and cost: the gauge must
	// track size, not cost, so it should read 200+300, never 9000+1000.
	require.NoError(t, s.Insert(newTestTx(200, 9000, nil, 0, 1.0)))
	require.NoError(t, s.Insert(newTestTx(300, 1000, nil, 0, 1.0)))
	// A different bucket (ratio < 1) must not bleed into bucketWeightedEQ1.
	require.NoError(t, s.Insert(newTestTx(50, 4000, nil, 0, 0.5)))

	require.Equal(t, float64(500), testutil.ToFloat64(sizeWeighted.WithLabelValues(bucketWeightedEQ1)))
	require.Equal(t, float64(50), testutil.ToFloat64(sizeWeighted.WithLabelValues(bucketWeightedLT1)))
	require.Equal(t, float64(0), testutil.ToFloat64(sizeWeighted.WithLabelValues(bucketWeightedGT1)))
}
