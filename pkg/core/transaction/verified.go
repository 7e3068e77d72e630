package transaction

// MempoolTransactionCostThreshold is the floor applied to every
// transaction's Cost, independent of its serialized size: no transaction
// occupies less room in the verified set than this, wire-compatible with
// ZIP-401.
const MempoolTransactionCostThreshold = 4000

// LowFeePenalty is the additive eviction-weight penalty applied to a
// transaction whose fee/weight ratio is below 1 (it pays less than the
// conventional fee for its weight). Weighted random eviction then picks
// low-fee transactions far more often than their cost alone would
// suggest, without refusing to admit them outright.
const LowFeePenalty = 16000

// ConventionalFee is the reference fee, in zatoshis, ZIP-317 treats as
// standard for a single-action transaction. It is contextually defined
// upstream (scaled by a transaction's conventional action count) and
// carried here only as the nominal base unit; FeeWeightRatio is always
// computed by the caller that produced a VerifiedTx, not derived from
// this constant locally.
const ConventionalFee = 1000

// VerifiedTx is an immutable record pairing a Transaction with the
// bookkeeping an upstream verifier computed for it: none of Size, Cost,
// ConventionalActions, UnpaidActions, or FeeWeightRatio are derivable
// from the Transaction alone, so they travel with it for the entry's
// whole lifetime in the verified set.
type VerifiedTx struct {
	Tx *Transaction

	// Size is the transaction's serialized byte size.
	Size int

	// Cost is at least MempoolTransactionCostThreshold and at least Size,
	// but can be larger when the transaction's conventional action count
	// exceeds what its size alone implies.
	Cost uint64

	// ConventionalActions is the transaction's weighted count of
	// transparent inputs/outputs and shielded actions, per ZIP-317.
	ConventionalActions uint64

	// UnpaidActions is the portion of ConventionalActions the paid fee
	// does not cover.
	UnpaidActions uint64

	// FeeWeightRatio is fee divided by weight; a value below 1 means the
	// transaction pays less than the conventional fee for its weight.
	FeeWeightRatio float64
}

// ID returns the wrapped transaction's identifier.
func (v *VerifiedTx) ID() TxID {
	return v.Tx.ID
}

// SpentOutpoints delegates to the wrapped transaction.
func (v *VerifiedTx) SpentOutpoints() []Outpoint {
	return v.Tx.SpentOutpoints()
}

// CreatedOutpoints delegates to the wrapped transaction.
func (v *VerifiedTx) CreatedOutpoints() map[Outpoint]Output {
	return v.Tx.CreatedOutpoints()
}

// SproutNullifiers delegates to the wrapped transaction.
func (v *VerifiedTx) SproutNullifiers() []SproutNullifier {
	return v.Tx.SproutNullifiers
}

// SaplingNullifiers delegates to the wrapped transaction.
func (v *VerifiedTx) SaplingNullifiers() []SaplingNullifier {
	return v.Tx.SaplingNullifiers
}

// OrchardNullifiers delegates to the wrapped transaction.
func (v *VerifiedTx) OrchardNullifiers() []OrchardNullifier {
	return v.Tx.OrchardNullifiers
}

// PaysConventionalFee reports whether v pays at least the conventional
// fee for its weight.
func (v *VerifiedTx) PaysConventionalFee() bool {
	return v.FeeWeightRatio >= 1.0
}

// EvictionWeight is the weight this transaction contributes to weighted
// random eviction: its cost, plus LowFeePenalty if it doesn't pay the
// conventional fee. It is always strictly positive.
func (v *VerifiedTx) EvictionWeight() uint64 {
	w := v.Cost
	if !v.PaysConventionalFee() {
		w += LowFeePenalty
	}
	return w
}
