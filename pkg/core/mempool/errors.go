package mempool

import "errors"

// ErrSpendConflict is returned by VerifiedSet.Insert when the candidate
// transaction spends a transparent outpoint or reveals a shielded
// nullifier already claimed by a held transaction.
var ErrSpendConflict = errors.New("mempool: transaction conflicts with an already-held transaction")
