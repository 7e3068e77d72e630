// Package random generates test fixtures: random byte strings and digests,
// so property-style tests don't each reimplement their own randomness
// plumbing.
package random

import (
	"math/rand"
	"time"

	"github.com/zecd-io/zecd/pkg/util"
)

// String returns a random string with n as its length.
func String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(Int(65, 90))
	}

	return string(b)
}

// Bytes returns a random byte slice of specified length.
func Bytes(n int) []byte {
	b := make([]byte, n)
	Fill(b)
	return b
}

// Fill fills buf with random bytes.
func Fill(buf []byte) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	// Rand reader returns no errors.
	r.Read(buf) //nolint:errcheck
}

// Int returns a random integer in [min,max).
func Int(min, max int) int {
	return min + rand.Intn(max-min)
}

// Uint256 returns a random Uint256, suitable as a stand-in transaction id,
// outpoint hash, or nullifier in tests.
func Uint256() util.Uint256 {
	var u util.Uint256
	Fill(u[:])
	return u
}

func init() {
	//nolint:staticcheck
	rand.Seed(time.Now().UTC().UnixNano())
}
