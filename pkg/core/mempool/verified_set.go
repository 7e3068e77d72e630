// Package mempool holds the in-memory set of transactions that have
// passed validation but have not yet been mined: the verified set itself,
// the spend/output/dependency indices it owns, weighted random eviction,
// and the metrics the set publishes after every mutation.
package mempool

import (
	"math/rand"
	"time"

	"github.com/zecd-io/zecd/pkg/core/transaction"
	"github.com/zecd-io/zecd/pkg/util"
)

// VerifiedSet is the owning aggregate of the mempool core: it holds
// verified transactions keyed by id, owns the spend index, output cache,
// and dependency graph, and maintains running size/cost totals. It is
// mutated only by its owner; concurrent callers must serialize access
// externally.
//
// VerifiedSet is not safe for concurrent use by multiple goroutines
// without external synchronization: the single-owner ordering guarantee
// is the caller's responsibility, not this type's.
type VerifiedSet struct {
	txs   map[transaction.TxID]*transaction.VerifiedTx
	spend *spendIndex
	out   *outputCache
	deps  *dependencyGraph

	totalSize int
	totalCost uint64

	// minedTo maps a held transaction's mined digest to its full id, so
	// Insert can resolve "which held transaction created the output this
	// new transaction spends" from an Outpoint's hash alone without a
	// linear scan of txs.
	minedTo map[util.Uint256]transaction.TxID

	rng *rand.Rand
}

// NewVerifiedSet returns an empty VerifiedSet with all gauges at zero.
func NewVerifiedSet() *VerifiedSet {
	s := &VerifiedSet{
		txs:     make(map[transaction.TxID]*transaction.VerifiedTx),
		spend:   newSpendIndex(),
		out:     newOutputCache(),
		deps:    newDependencyGraph(),
		minedTo: make(map[util.Uint256]transaction.TxID),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	resetMetrics()
	return s
}

// Contains reports whether id is held.
func (s *VerifiedSet) Contains(id transaction.TxID) bool {
	_, ok := s.txs[id]
	return ok
}

// TransactionCount returns the number of held transactions.
func (s *VerifiedSet) TransactionCount() int {
	return len(s.txs)
}

// TotalSerializedSize returns the sum of Size over held transactions (I3).
func (s *VerifiedSet) TotalSerializedSize() int {
	return s.totalSize
}

// TotalCost returns the sum of Cost over held transactions (I4).
func (s *VerifiedSet) TotalCost() uint64 {
	return s.totalCost
}

// Transactions returns a read-only view of the held transactions, keyed
// by id. Callers must not mutate the returned map or its values.
func (s *VerifiedSet) Transactions() map[transaction.TxID]*transaction.VerifiedTx {
	return s.txs
}

// Insert adds tx to the set. It fails with ErrSpendConflict, leaving the
// set completely unmodified, if tx spends an outpoint or reveals a
// nullifier already claimed by a held transaction; the conflict check and
// the mutation that follows it are all-or-nothing.
//
// On success, Insert also records a depends-on edge from tx to every
// currently-held transaction whose output tx spends, so a later Remove of
// one of those parents can cascade correctly.
func (s *VerifiedSet) Insert(tx *transaction.VerifiedTx) error {
	if s.spend.conflicts(tx) {
		return ErrSpendConflict
	}

	id := tx.ID()
	s.spend.insert(tx)
	s.out.insert(tx)
	s.txs[id] = tx
	s.minedTo[id.Hash()] = id
	s.totalSize += tx.Size
	s.totalCost += tx.Cost

	for _, op := range tx.SpentOutpoints() {
		if _, createdByHeldTx := s.out.get(op); !createdByHeldTx {
			continue
		}
		if parentID, ok := s.minedTo[op.Hash]; ok && parentID != id {
			s.deps.addEdge(id, parentID)
		}
	}

	emitMetrics(s)
	return nil
}

// Remove removes id, which must be held, subtracts its contribution from
// every index and total, and cascades: every transaction that directly or
// transitively depended on id's outputs is removed too, since those
// outputs no longer exist to spend. The removed transaction and every
// cascaded dependant are returned, removed-first.
//
// Remove panics if id is not held; the caller is responsible for checking
// Contains first, per the component's precondition.
func (s *VerifiedSet) Remove(id transaction.TxID) []*transaction.VerifiedTx {
	tx, ok := s.txs[id]
	if !ok {
		panic("mempool: Remove called with an id that is not held")
	}

	removed := []*transaction.VerifiedTx{tx}
	queue := s.deps.dependants(id)
	s.removeOne(tx)

	seen := map[transaction.TxID]struct{}{id: {}}
	for len(queue) > 0 {
		depID := queue[0]
		queue = queue[1:]
		if _, done := seen[depID]; done {
			continue
		}
		seen[depID] = struct{}{}

		depTx, held := s.txs[depID]
		if !held {
			continue
		}
		removed = append(removed, depTx)
		queue = append(queue, s.deps.dependants(depID)...)
		s.removeOne(depTx)
	}

	emitMetrics(s)
	return removed
}

// removeOne erases tx's contribution from every index and total, without
// touching the dependency graph's cascade bookkeeping beyond tx's own
// node, and without emitting metrics (the caller does that once, after
// any cascade completes).
func (s *VerifiedSet) removeOne(tx *transaction.VerifiedTx) {
	id := tx.ID()
	s.spend.remove(tx)
	s.out.remove(tx)
	s.deps.removeNode(id)
	delete(s.txs, id)
	delete(s.minedTo, id.Hash())
	s.totalSize -= tx.Size
	s.totalCost -= tx.Cost
}

// RemoveAllThat removes every held transaction for which pred reports
// true and returns the count removed. pred must not mutate the set; it
// is evaluated once per held transaction before any removal begins, so a
// predicate that reads the set's contents sees a stable view.
func (s *VerifiedSet) RemoveAllThat(pred func(*transaction.VerifiedTx) bool) int {
	var toRemove []transaction.TxID
	for id, tx := range s.txs {
		if pred(tx) {
			toRemove = append(toRemove, id)
		}
	}

	count := 0
	for _, id := range toRemove {
		if _, ok := s.txs[id]; !ok {
			// Already cascaded away by an earlier removal in this batch.
			continue
		}
		count += len(s.Remove(id))
	}
	return count
}

// EvictOne picks one held transaction at random with probability
// proportional to its eviction weight, removes it, and returns it.
// Returns nil if the set is empty. The distribution is recomputed on
// every call: weights drift as the set changes, so caching it across
// calls would be unsound.
//
// The removal cascades like Remove: held transactions that depended on
// the evicted one are removed too. Only the picked transaction is
// returned; the cascaded dependants are not.
func (s *VerifiedSet) EvictOne() *transaction.VerifiedTx {
	if len(s.txs) == 0 {
		return nil
	}

	ids := make([]transaction.TxID, 0, len(s.txs))
	weights := make([]uint64, 0, len(s.txs))
	for id, tx := range s.txs {
		ids = append(ids, id)
		weights = append(weights, tx.EvictionWeight())
	}

	idx := weightedSample(weights, s.rng)
	tx := s.txs[ids[idx]]
	s.Remove(ids[idx])
	return tx
}

// Clear removes everything, zeros every counter, and zeros every metric
// gauge.
func (s *VerifiedSet) Clear() {
	s.txs = make(map[transaction.TxID]*transaction.VerifiedTx)
	s.spend = newSpendIndex()
	s.out = newOutputCache()
	s.deps = newDependencyGraph()
	s.minedTo = make(map[util.Uint256]transaction.TxID)
	s.totalSize = 0
	s.totalCost = 0
	resetMetrics()
}
