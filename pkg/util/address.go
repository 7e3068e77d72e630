package util

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // transparent addresses use RIPEMD160(SHA256(pubkey)) per the transparent-pool convention
)

// TransparentAddressVersion is prepended to the hashed public key (or script)
// before base58check encoding, the way Zcash transparent addresses are
// built (a two-byte version, unlike Bitcoin's one-byte version). It is a
// parameter so callers can encode for the network they run against; it has
// no bearing on mempool semantics.
type TransparentAddressVersion [2]byte

// Mainnet transparent-address version prefixes: t1 (P2PKH) and t3 (P2SH).
var (
	MainnetP2PKHVersion = TransparentAddressVersion{0x1c, 0xb8}
	MainnetP2SHVersion  = TransparentAddressVersion{0x1c, 0xbd}
)

// EncodeTransparentAddress base58check-encodes a 20-byte hash (the RIPEMD160
// of a SHA256 digest over a public key or redeem script) into the display
// form used for transparent t-addresses. This is purely a display helper for
// logging/CLI output; the mempool and script verifier never operate on the
// encoded string, only on the raw lock script. Zcash's two-byte version
// prefix doesn't fit mr-tron/base58's single-byte CheckEncode, so the
// checksum is computed the same way CheckEncode does (double-SHA256, first
// four bytes) and the payload is run through the library's raw Encode.
func EncodeTransparentAddress(version TransparentAddressVersion, hash160 []byte) string {
	payload := make([]byte, 0, len(version)+len(hash160)+4)
	payload = append(payload, version[:]...)
	payload = append(payload, hash160...)

	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	payload = append(payload, second[:4]...)

	return base58.Encode(payload)
}

// HashForAddress reduces an arbitrary lock-script payload (a serialized
// public key, in the common P2PKH case) to the 20-byte hash encoded by
// EncodeTransparentAddress.
func HashForAddress(pubKeyOrScript []byte) []byte {
	sum := sha256.Sum256(pubKeyOrScript)
	h := ripemd160.New()
	_, _ = h.Write(sum[:])
	return h.Sum(nil)
}
