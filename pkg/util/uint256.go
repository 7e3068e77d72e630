// Package util provides the fixed-width digest types shared by the mempool,
// script verifier, and address book: transaction ids, outpoint hashes, and
// nullifiers are all 32-byte values with the same comparison and display
// needs.
package util

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Uint256Size is the length in bytes of Uint256.
const Uint256Size = 32

// Uint256 is a fixed-size 32-byte value used for transaction hashes and
// nullifiers. The zero value is the all-zero digest.
type Uint256 [Uint256Size]byte

// Uint256FromBytes converts a byte slice into a Uint256. It returns an error
// if the slice has the wrong length.
func Uint256FromBytes(b []byte) (u Uint256, err error) {
	if len(b) != Uint256Size {
		return u, fmt.Errorf("expected %d bytes, got %d", Uint256Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Uint256FromString decodes a hex-encoded Uint256.
func Uint256FromString(s string) (Uint256, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Uint256{}, fmt.Errorf("Uint256FromString: %w", err)
	}
	return Uint256FromBytes(b)
}

// Bytes returns a copy of the underlying bytes.
func (u Uint256) Bytes() []byte {
	b := make([]byte, Uint256Size)
	copy(b, u[:])
	return b
}

// Equals reports whether u and o hold the same bytes.
func (u Uint256) Equals(o Uint256) bool {
	return u == o
}

// IsZero reports whether u is the all-zero digest.
func (u Uint256) IsZero() bool {
	return u == Uint256{}
}

// String returns the hex encoding of u.
func (u Uint256) String() string {
	return hex.EncodeToString(u[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (u Uint256) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Uint256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := Uint256FromString(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
