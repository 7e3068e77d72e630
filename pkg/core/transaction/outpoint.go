package transaction

import (
	"strconv"

	"github.com/zecd-io/zecd/pkg/util"
)

// Outpoint references a single transparent output by the mined digest of
// its creating transaction and its index within that transaction's output
// list.
type Outpoint struct {
	Hash  util.Uint256
	Index uint32
}

// String returns "hash:index".
func (o Outpoint) String() string {
	return o.Hash.String() + ":" + strconv.FormatUint(uint64(o.Index), 10)
}

// Input spends a single transparent Outpoint. Coinbase inputs have no
// PrevOut and carry an arbitrary script instead of an unlock script; the
// script verifier rejects them outright rather than trying to validate one.
type Input struct {
	PrevOut       Outpoint
	UnlockScript  []byte
	Sequence      uint32
	IsCoinbase    bool
	CoinbaseExtra []byte
}

// Output is a single transparent output: a value in zatoshis and the
// script that locks it.
type Output struct {
	Value      int64
	LockScript []byte
}
