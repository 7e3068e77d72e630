package mempool

import "github.com/zecd-io/zecd/pkg/core/transaction"

// spendIndex holds the four disjoint namespaces of commitments a held
// transaction can consume: transparent outpoints and the three shielded
// nullifier families. The families are kept as separate maps, not a
// single map keyed by a tagged union, so that bit-identical values from
// different pools can never collide (I2).
type spendIndex struct {
	outpoints map[transaction.Outpoint]transaction.TxID
	sprout    map[transaction.SproutNullifier]transaction.TxID
	sapling   map[transaction.SaplingNullifier]transaction.TxID
	orchard   map[transaction.OrchardNullifier]transaction.TxID
}

func newSpendIndex() *spendIndex {
	return &spendIndex{
		outpoints: make(map[transaction.Outpoint]transaction.TxID),
		sprout:    make(map[transaction.SproutNullifier]transaction.TxID),
		sapling:   make(map[transaction.SaplingNullifier]transaction.TxID),
		orchard:   make(map[transaction.OrchardNullifier]transaction.TxID),
	}
}

// conflicts reports whether any outpoint or nullifier tx holds is already
// claimed by a held transaction.
func (s *spendIndex) conflicts(tx *transaction.VerifiedTx) bool {
	for _, o := range tx.SpentOutpoints() {
		if _, ok := s.outpoints[o]; ok {
			return true
		}
	}
	for _, n := range tx.SproutNullifiers() {
		if _, ok := s.sprout[n]; ok {
			return true
		}
	}
	for _, n := range tx.SaplingNullifiers() {
		if _, ok := s.sapling[n]; ok {
			return true
		}
	}
	for _, n := range tx.OrchardNullifiers() {
		if _, ok := s.orchard[n]; ok {
			return true
		}
	}
	return false
}

// insert records every commitment tx claims against its id. Callers must
// have already checked conflicts.
func (s *spendIndex) insert(tx *transaction.VerifiedTx) {
	id := tx.ID()
	for _, o := range tx.SpentOutpoints() {
		s.outpoints[o] = id
	}
	for _, n := range tx.SproutNullifiers() {
		s.sprout[n] = id
	}
	for _, n := range tx.SaplingNullifiers() {
		s.sapling[n] = id
	}
	for _, n := range tx.OrchardNullifiers() {
		s.orchard[n] = id
	}
}

// remove erases every commitment tx claimed.
func (s *spendIndex) remove(tx *transaction.VerifiedTx) {
	for _, o := range tx.SpentOutpoints() {
		delete(s.outpoints, o)
	}
	for _, n := range tx.SproutNullifiers() {
		delete(s.sprout, n)
	}
	for _, n := range tx.SaplingNullifiers() {
		delete(s.sapling, n)
	}
	for _, n := range tx.OrchardNullifiers() {
		delete(s.orchard, n)
	}
}
