// Package transaction defines the domain types shared by the mempool,
// the script verifier, and the address book: transaction identifiers,
// outpoints, shielded nullifiers, and the verified-transaction wrapper
// that carries the bookkeeping the mempool needs around a raw transaction.
package transaction

import "github.com/zecd-io/zecd/pkg/util"

// TxID identifies a transaction by both of its digests. AuthDigest covers
// witness/signature data and excludes it from MinedDigest, which is the
// identifier embedded in a block and the one outpoints reference. Two
// transactions with the same MinedDigest but different AuthDigest are the
// same spend with different witnesses (malleated); the mempool keys its
// verified set on the full pair so it never silently conflates them.
type TxID struct {
	MinedDigest util.Uint256
	AuthDigest  util.Uint256
}

// Hash returns the mined digest, the identifier used when the transaction
// is embedded in a block and the one Outpoint.Hash references.
func (id TxID) Hash() util.Uint256 {
	return id.MinedDigest
}

// String returns the hex mined digest.
func (id TxID) String() string {
	return id.MinedDigest.String()
}
