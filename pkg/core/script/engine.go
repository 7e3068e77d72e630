package script

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // consensus HASH160 is RIPEMD160(SHA256(x))
)

// lockTimeThreshold is the value below which a transaction's LockTime is
// interpreted as a block height, and at or above which it's a Unix
// timestamp. Matches BIP65/BIP113 convention, which the transparent pool
// inherits unchanged.
const lockTimeThreshold = 500000000

// evalContext carries the per-input state CHECKSIG/CHECKLOCKTIMEVERIFY
// need beyond the data stack: the sighash function, the branch id, and
// the spending input's own sequence/locktime fields.
type evalContext struct {
	sig        *sighasher
	branchID   uint32
	inputIndex int
	sequence   uint32
	lockTime   uint32
	scriptCode []byte
}

// execute runs script against stack under ctx, leaving the resulting
// stack in place. Returns an error if the script is malformed or a
// consensus rule is violated; the caller decides whether the final stack
// top is true.
func execute(script []byte, stack *dataStack, ctx *evalContext) error {
	var condStack []bool // true = executing, false = skipping

	executing := func() bool {
		for _, c := range condStack {
			if !c {
				return false
			}
		}
		return true
	}

	i := 0
	for i < len(script) {
		op := opcode(script[i])
		i++

		switch {
		case op >= 0x01 && op <= 0x4b:
			if i+int(op) > len(script) {
				return invalidf("push opcode truncated")
			}
			data := script[i : i+int(op)]
			i += int(op)
			if executing() {
				stack.push(data)
			}
			continue
		case op == opPushData1:
			if i >= len(script) {
				return invalidf("PUSHDATA1 truncated")
			}
			n := int(script[i])
			i++
			if i+n > len(script) {
				return invalidf("PUSHDATA1 data truncated")
			}
			if executing() {
				stack.push(script[i : i+n])
			}
			i += n
			continue
		case op == opPushData2:
			if i+2 > len(script) {
				return invalidf("PUSHDATA2 truncated")
			}
			n := int(script[i]) | int(script[i+1])<<8
			i += 2
			if i+n > len(script) {
				return invalidf("PUSHDATA2 data truncated")
			}
			if executing() {
				stack.push(script[i : i+n])
			}
			i += n
			continue
		case op == opPushData4:
			if i+4 > len(script) {
				return invalidf("PUSHDATA4 truncated")
			}
			n := int(script[i]) | int(script[i+1])<<8 | int(script[i+2])<<16 | int(script[i+3])<<24
			i += 4
			if i+n > len(script) {
				return invalidf("PUSHDATA4 data truncated")
			}
			if executing() {
				stack.push(script[i : i+n])
			}
			i += n
			continue
		case isSmallInt(op):
			if executing() {
				stack.push(scriptNumBytes(smallIntValue(op)))
			}
			continue
		}

		if !executing() && op != opIf && op != opNotif && op != opElse && op != opEndIf {
			continue
		}

		switch op {
		case opNop:
			// no-op.
		case opIf, opNotif:
			var cond bool
			if executing() {
				v, err := stack.pop()
				if err != nil {
					return err
				}
				cond = asBool(v)
				if op == opNotif {
					cond = !cond
				}
			}
			condStack = append(condStack, cond)
		case opElse:
			if len(condStack) == 0 {
				return invalidf("ELSE without IF")
			}
			condStack[len(condStack)-1] = !condStack[len(condStack)-1]
		case opEndIf:
			if len(condStack) == 0 {
				return invalidf("ENDIF without IF")
			}
			condStack = condStack[:len(condStack)-1]
		case opVerify:
			v, err := stack.pop()
			if err != nil {
				return err
			}
			if !asBool(v) {
				return invalidf("VERIFY failed")
			}
		case opReturn:
			return invalidf("RETURN")
		case opDup:
			v, err := stack.peek()
			if err != nil {
				return err
			}
			stack.push(v)
		case opEqual, opEqualVerify:
			a, err := stack.pop()
			if err != nil {
				return err
			}
			b, err := stack.pop()
			if err != nil {
				return err
			}
			eq := bytesEqual(a, b)
			if op == opEqualVerify {
				if !eq {
					return invalidf("EQUALVERIFY failed")
				}
			} else {
				stack.push(boolBytes(eq))
			}
		case opHash160:
			v, err := stack.pop()
			if err != nil {
				return err
			}
			stack.push(hash160(v))
		case opHash256:
			v, err := stack.pop()
			if err != nil {
				return err
			}
			first := sha256.Sum256(v)
			second := sha256.Sum256(first[:])
			stack.push(second[:])
		case opCheckSig, opCheckSigVerify:
			ok, err := checkSig(stack, ctx)
			if err != nil {
				return err
			}
			if op == opCheckSigVerify {
				if !ok {
					return invalidf("CHECKSIGVERIFY failed")
				}
			} else {
				stack.push(boolBytes(ok))
			}
		case opCheckMultisig, opCheckMultisigVerify:
			ok, err := checkMultisig(stack, ctx)
			if err != nil {
				return err
			}
			if op == opCheckMultisigVerify {
				if !ok {
					return invalidf("CHECKMULTISIGVERIFY failed")
				}
			} else {
				stack.push(boolBytes(ok))
			}
		case opCheckLockTimeVerify:
			if err := checkLockTimeVerify(stack, ctx); err != nil {
				return err
			}
		default:
			return invalidf("unsupported opcode 0x%02x", byte(op))
		}
	}

	if len(condStack) != 0 {
		return invalidf("unbalanced IF/ENDIF")
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	_, _ = h.Write(sum[:])
	return h.Sum(nil)
}

// checkSig verifies a single (signature, pubkey) pair against ctx's
// sighash, per BIP66/consensus DER-signature rules. The signature's
// trailing byte selects the hash type mixed into the sighash.
func checkSig(stack *dataStack, ctx *evalContext) (bool, error) {
	pubKeyBytes, err := stack.pop()
	if err != nil {
		return false, err
	}
	sigBytes, err := stack.pop()
	if err != nil {
		return false, err
	}
	if len(sigBytes) == 0 {
		return false, nil
	}

	hashType := sigBytes[len(sigBytes)-1]
	derSig := sigBytes[:len(sigBytes)-1]

	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false, nil
	}
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false, nil
	}

	digest := ctx.sig.sighash(ctx.branchID, hashType, ctx.inputIndex, ctx.scriptCode)
	return sig.Verify(digest.Bytes(), pubKey), nil
}

// checkMultisig implements the standard m-of-n CHECKMULTISIG semantics,
// including the historical off-by-one extra stack pop consensus
// inherited from Bitcoin.
func checkMultisig(stack *dataStack, ctx *evalContext) (bool, error) {
	nBytes, err := stack.pop()
	if err != nil {
		return false, err
	}
	n := scriptNumValue(nBytes)
	if n < 0 || n > 20 {
		return false, invalidf("CHECKMULTISIG pubkey count out of range")
	}
	pubKeys := make([][]byte, n)
	for i := int64(n) - 1; i >= 0; i-- {
		pk, err := stack.pop()
		if err != nil {
			return false, err
		}
		pubKeys[i] = pk
	}

	mBytes, err := stack.pop()
	if err != nil {
		return false, err
	}
	m := scriptNumValue(mBytes)
	if m < 0 || m > n {
		return false, invalidf("CHECKMULTISIG signature count out of range")
	}
	sigs := make([][]byte, m)
	for i := int64(m) - 1; i >= 0; i-- {
		s, err := stack.pop()
		if err != nil {
			return false, err
		}
		sigs[i] = s
	}

	// Consensus requires one extra, unused item popped due to an
	// original-client bug; it carries no meaning.
	if _, err := stack.pop(); err != nil {
		return false, err
	}

	pkIdx := 0
	for _, sigBytes := range sigs {
		if len(sigBytes) == 0 {
			return false, nil
		}
		hashType := sigBytes[len(sigBytes)-1]
		sig, err := ecdsa.ParseDERSignature(sigBytes[:len(sigBytes)-1])
		if err != nil {
			return false, nil
		}
		digest := ctx.sig.sighash(ctx.branchID, hashType, ctx.inputIndex, ctx.scriptCode)

		matched := false
		for pkIdx < len(pubKeys) {
			pubKey, err := secp256k1.ParsePubKey(pubKeys[pkIdx])
			pkIdx++
			if err != nil {
				continue
			}
			if sig.Verify(digest.Bytes(), pubKey) {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

// checkLockTimeVerify implements BIP65/CLTV: the top stack item must be
// a non-negative number no greater than the transaction's own LockTime,
// both interpreted as the same kind (block height or Unix time), and the
// spending input must not be final. Comparisons run over uint256 values
// rather than the signed 5-byte CScriptNum of the original consensus
// rule; this core only needs a stable ordering for the threshold check,
// not wire-exact encoding.
func checkLockTimeVerify(stack *dataStack, ctx *evalContext) error {
	top, err := stack.peek()
	if err != nil {
		return err
	}
	required := scriptNumValue(top)
	if required < 0 {
		return invalidf("CHECKLOCKTIMEVERIFY negative locktime")
	}

	requiredIsTime := uint32(required) >= lockTimeThreshold
	txIsTime := ctx.lockTime >= lockTimeThreshold
	if requiredIsTime != txIsTime {
		return invalidf("CHECKLOCKTIMEVERIFY locktime type mismatch")
	}

	if uint256.NewInt(uint64(required)).Cmp(uint256.NewInt(uint64(ctx.lockTime))) > 0 {
		return invalidf("CHECKLOCKTIMEVERIFY: locktime not reached")
	}
	if ctx.sequence == 0xffffffff {
		return invalidf("CHECKLOCKTIMEVERIFY: input is final")
	}
	return nil
}

// scriptNumBytes encodes a small integer as a minimal little-endian
// script number, matching how push opcodes encode OP_1..OP_16.
func scriptNumBytes(v int64) []byte {
	if v == 0 {
		return nil
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var b []byte
	for v > 0 {
		b = append(b, byte(v&0xff))
		v >>= 8
	}
	if b[len(b)-1]&0x80 != 0 {
		if neg {
			b = append(b, 0x80)
		} else {
			b = append(b, 0)
		}
	} else if neg {
		b[len(b)-1] |= 0x80
	}
	return b
}

// scriptNumValue decodes a minimal little-endian script number.
func scriptNumValue(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	var v int64
	for i, c := range b {
		v |= int64(c) << uint(8*i)
	}
	if b[len(b)-1]&0x80 != 0 {
		v &^= int64(0x80) << uint(8*(len(b)-1))
		v = -v
	}
	return v
}
