package mempool

import "math/rand"

// weightedSample picks an index into weights with probability
// proportional to weights[i] / sum(weights), using a prefix-sum walk over
// a single uniform draw. It accepts any distribution of strictly positive
// weights; weights must be recomputed and passed fresh on every call,
// since insert/remove shift the underlying set and caching the
// distribution across mutations would make eviction unsound.
//
// Panics if weights is empty or every weight is zero; callers only invoke
// this with a non-empty, strictly-positive weight set (see
// VerifiedSet.EvictOne).
func weightedSample(weights []uint64, rng *rand.Rand) int {
	var total uint64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		panic("mempool: weightedSample called with zero total weight")
	}

	pick := uint64(rng.Int63n(int64(total)))
	var running uint64
	for i, w := range weights {
		running += w
		if pick < running {
			return i
		}
	}
	// Unreachable given pick < total, but keeps the compiler happy and
	// guards against floating rounding if this is ever adapted to
	// float weights.
	return len(weights) - 1
}
