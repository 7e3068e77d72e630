package transaction

import "github.com/zecd-io/zecd/pkg/util"

// SproutNullifier, SaplingNullifier, and OrchardNullifier are kept as
// distinct Go types, not a single Nullifier-plus-family-tag pair, so the
// three pools can never be compared or indexed across each other by
// accident: a Sprout nullifier and a Sapling nullifier with identical
// bytes name different notes and must never collide in a spend index.
type (
	SproutNullifier  util.Uint256
	SaplingNullifier util.Uint256
	OrchardNullifier util.Uint256
)

func (n SproutNullifier) String() string  { return util.Uint256(n).String() }
func (n SaplingNullifier) String() string { return util.Uint256(n).String() }
func (n OrchardNullifier) String() string { return util.Uint256(n).String() }
