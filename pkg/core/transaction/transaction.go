package transaction

// Transaction is the subset of a Zcash transaction the mempool and script
// verifier need: its identity, its transparent spends and outputs, and the
// shielded nullifiers it reveals across all three pools. Anything the
// mempool doesn't key on (shielded commitments, proofs, binding
// signatures) is out of scope here and lives in the full block-validation
// path instead.
type Transaction struct {
	ID       TxID
	Inputs   []Input
	Outputs  []Output
	LockTime uint32

	SproutNullifiers  []SproutNullifier
	SaplingNullifiers []SaplingNullifier
	OrchardNullifiers []OrchardNullifier

	// SerializedSize is the wire-format byte length, used as the floor for
	// a VerifiedTx's Cost.
	SerializedSize int
}

// IsCoinbase reports whether tx is a coinbase transaction: exactly the
// transactions the script verifier refuses to validate inputs for, since a
// coinbase input has no prevout to resolve.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].IsCoinbase
}

// SpentOutpoints returns the transparent outpoints tx spends. A coinbase
// transaction spends none.
func (tx *Transaction) SpentOutpoints() []Outpoint {
	if tx.IsCoinbase() {
		return nil
	}
	out := make([]Outpoint, len(tx.Inputs))
	for i, in := range tx.Inputs {
		out[i] = in.PrevOut
	}
	return out
}

// CreatedOutpoints returns the outpoints tx's own outputs can be spent by,
// paired with the output each names.
func (tx *Transaction) CreatedOutpoints() map[Outpoint]Output {
	out := make(map[Outpoint]Output, len(tx.Outputs))
	for i, o := range tx.Outputs {
		out[Outpoint{Hash: tx.ID.Hash(), Index: uint32(i)}] = o
	}
	return out
}
