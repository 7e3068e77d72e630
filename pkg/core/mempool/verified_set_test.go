package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zecd-io/zecd/internal/random"
	"github.com/zecd-io/zecd/pkg/core/transaction"
)

func newTestTx(size int, cost uint64, spends []transaction.Outpoint, creates int, ratio float64) *transaction.VerifiedTx {
	tx := &transaction.Transaction{
		ID:             transaction.TxID{MinedDigest: random.Uint256(), AuthDigest: random.Uint256()},
		SerializedSize: size,
	}
	for _, op := range spends {
		tx.Inputs = append(tx.Inputs, transaction.Input{PrevOut: op})
	}
	for i := 0; i < creates; i++ {
		tx.Outputs = append(tx.Outputs, transaction.Output{Value: int64(i)})
	}
	return &transaction.VerifiedTx{
		Tx:             tx,
		Size:           size,
		Cost:           cost,
		FeeWeightRatio: ratio,
	}
}

func TestInsertDisjointTransactions(t *testing.T) {
	s := NewVerifiedSet()
	a := newTestTx(200, 4000, nil, 1, 1.0)
	b := newTestTx(300, 4000, nil, 1, 1.0)

	require.NoError(t, s.Insert(a))
	require.NoError(t, s.Insert(b))

	require.Equal(t, 2, s.TransactionCount())
	require.Equal(t, 500, s.TotalSerializedSize())
	require.EqualValues(t, 8000, s.TotalCost())
	require.True(t, s.Contains(a.ID()))
	require.True(t, s.Contains(b.ID()))
}

func TestInsertTransparentConflict(t *testing.T) {
	s := NewVerifiedSet()
	o1 := transaction.Outpoint{Hash: random.Uint256(), Index: 0}
	a := newTestTx(200, 4000, []transaction.Outpoint{o1}, 0, 1.0)
	b := newTestTx(200, 4000, []transaction.Outpoint{o1}, 0, 1.0)

	require.NoError(t, s.Insert(a))
	err := s.Insert(b)
	require.ErrorIs(t, err, ErrSpendConflict)
	require.Equal(t, 1, s.TransactionCount())
	require.EqualValues(t, 4000, s.TotalCost())
}

func TestInsertSaplingNullifierConflict(t *testing.T) {
	s := NewVerifiedSet()
	n1 := transaction.SaplingNullifier(random.Uint256())

	a := newTestTx(200, 4000, nil, 0, 1.0)
	a.Tx.SaplingNullifiers = []transaction.SaplingNullifier{n1}

	b := newTestTx(200, 4000, []transaction.Outpoint{{Hash: random.Uint256(), Index: 0}}, 0, 1.0)
	b.Tx.SaplingNullifiers = []transaction.SaplingNullifier{n1}

	require.NoError(t, s.Insert(a))
	require.ErrorIs(t, s.Insert(b), ErrSpendConflict)
}

func TestInsertSameTxTwiceConflicts(t *testing.T) {
	s := NewVerifiedSet()
	a := newTestTx(200, 4000, []transaction.Outpoint{{Hash: random.Uint256()}}, 0, 1.0)
	require.NoError(t, s.Insert(a))
	require.ErrorIs(t, s.Insert(a), ErrSpendConflict)
}

func TestInsertRemoveIsIdentity(t *testing.T) {
	s := NewVerifiedSet()
	a := newTestTx(200, 4000, []transaction.Outpoint{{Hash: random.Uint256()}}, 1, 1.0)

	require.NoError(t, s.Insert(a))
	removed := s.Remove(a.ID())
	require.Equal(t, []*transaction.VerifiedTx{a}, removed)

	require.Equal(t, 0, s.TransactionCount())
	require.Equal(t, 0, s.TotalSerializedSize())
	require.EqualValues(t, 0, s.TotalCost())
	require.False(t, s.Contains(a.ID()))
}

func TestRemoveCascadesDependants(t *testing.T) {
	s := NewVerifiedSet()
	parent := newTestTx(200, 4000, nil, 1, 1.0)
	require.NoError(t, s.Insert(parent))

	childOutpoint := transaction.Outpoint{Hash: parent.ID().Hash(), Index: 0}
	child := newTestTx(200, 4000, []transaction.Outpoint{childOutpoint}, 1, 1.0)
	require.NoError(t, s.Insert(child))

	grandchildOutpoint := transaction.Outpoint{Hash: child.ID().Hash(), Index: 0}
	grandchild := newTestTx(200, 4000, []transaction.Outpoint{grandchildOutpoint}, 0, 1.0)
	require.NoError(t, s.Insert(grandchild))

	removed := s.Remove(parent.ID())
	require.Len(t, removed, 3)
	require.Equal(t, parent, removed[0])
	require.Equal(t, 0, s.TransactionCount())
	require.False(t, s.Contains(child.ID()))
	require.False(t, s.Contains(grandchild.ID()))
}

func TestRemoveAllThatPredicates(t *testing.T) {
	s := NewVerifiedSet()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(newTestTx(100, 4000, nil, 0, 1.0)))
	}

	require.Equal(t, 0, s.RemoveAllThat(func(*transaction.VerifiedTx) bool { return false }))
	require.Equal(t, 5, s.TransactionCount())

	require.Equal(t, 5, s.RemoveAllThat(func(*transaction.VerifiedTx) bool { return true }))
	require.Equal(t, 0, s.TransactionCount())
}

func TestEvictOneEmptySet(t *testing.T) {
	s := NewVerifiedSet()
	require.Nil(t, s.EvictOne())
}

func TestEvictOneDrainsEachExactlyOnce(t *testing.T) {
	s := NewVerifiedSet()
	ids := make(map[transaction.TxID]struct{})
	for i := 0; i < 10; i++ {
		tx := newTestTx(100, 4000, nil, 0, 1.0)
		ids[tx.ID()] = struct{}{}
		require.NoError(t, s.Insert(tx))
	}

	seen := make(map[transaction.TxID]struct{})
	for i := 0; i < 10; i++ {
		tx := s.EvictOne()
		require.NotNil(t, tx)
		_, dup := seen[tx.ID()]
		require.False(t, dup)
		seen[tx.ID()] = struct{}{}
	}
	require.Equal(t, ids, seen)
	require.Nil(t, s.EvictOne())
}

func TestEvictOneUniformDistribution(t *testing.T) {
	const trials = 30000
	counts := map[int]int{0: 0, 1: 0, 2: 0}

	for i := 0; i < trials; i++ {
		s := NewVerifiedSet()
		txs := make([]*transaction.VerifiedTx, 3)
		for j := range txs {
			txs[j] = newTestTx(int(transaction.MempoolTransactionCostThreshold), transaction.MempoolTransactionCostThreshold, nil, 0, 1.0)
			require.NoError(t, s.Insert(txs[j]))
		}

		evicted := s.EvictOne()
		for j, tx := range txs {
			if tx.ID() == evicted.ID() {
				counts[j]++
			}
		}
	}

	for _, c := range counts {
		require.InDelta(t, trials/3, c, 500)
	}
}

func TestClearResetsState(t *testing.T) {
	s := NewVerifiedSet()
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Insert(newTestTx(100, 4000, nil, 0, 1.0)))
	}
	s.Clear()

	require.Equal(t, 0, s.TransactionCount())
	require.Equal(t, 0, s.TotalSerializedSize())
	require.EqualValues(t, 0, s.TotalCost())
	require.Nil(t, s.EvictOne())
}

func TestContainsMatchesTransactionsView(t *testing.T) {
	s := NewVerifiedSet()
	a := newTestTx(100, 4000, nil, 0, 1.0)
	require.NoError(t, s.Insert(a))

	_, inView := s.Transactions()[a.ID()]
	require.True(t, inView)
	require.Equal(t, s.Contains(a.ID()), inView)
}
