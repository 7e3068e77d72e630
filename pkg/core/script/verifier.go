// Package script verifies that a transparent input's unlock script
// correctly spends the output it references, and counts legacy signature
// operations across a transaction's transparent inputs and outputs.
package script

import (
	"github.com/zecd-io/zecd/pkg/core/transaction"
)

// p2shHashLen is the length of the hash a P2SH output script embeds.
const p2shHashLen = 20

// ScriptVerifier is precomputed once per transaction from the
// transaction and the outputs its inputs reference, then used to verify
// each input's script in turn. Flags enabled during evaluation are
// Pay-to-Script-Hash and CheckLockTimeVerify; there is no legacy mode.
type ScriptVerifier struct {
	tx           *transaction.Transaction
	previousOuts []transaction.Output
	sig          *sighasher
}

// New constructs a ScriptVerifier. previousOutputs[i] must be the output
// named by tx.Inputs[i]'s previous outpoint; New does not itself resolve
// outpoints to outputs.
func New(tx *transaction.Transaction, previousOutputs []transaction.Output) *ScriptVerifier {
	return &ScriptVerifier{
		tx:           tx,
		previousOuts: previousOutputs,
		sig:          newSighasher(tx, previousOutputs),
	}
}

// Inputs returns the transaction's transparent inputs.
func (v *ScriptVerifier) Inputs() []transaction.Input {
	return v.tx.Inputs
}

// PreviousOutputs returns the outputs each input spends, in input order.
func (v *ScriptVerifier) PreviousOutputs() []transaction.Output {
	return v.previousOuts
}

// IsValid verifies that the script on input inputIndex correctly spends
// PreviousOutputs()[inputIndex] under branchID's consensus rules.
func (v *ScriptVerifier) IsValid(branchID uint32, inputIndex int) error {
	if inputIndex < 0 || inputIndex >= len(v.tx.Inputs) || inputIndex >= len(v.previousOuts) {
		return ErrTxIndex
	}

	input := v.tx.Inputs[inputIndex]
	if input.IsCoinbase {
		return ErrTxCoinbase
	}
	prevOut := v.previousOuts[inputIndex]

	stack := &dataStack{}
	ctx := &evalContext{
		sig:        v.sig,
		branchID:   branchID,
		inputIndex: inputIndex,
		sequence:   input.Sequence,
		lockTime:   v.tx.LockTime,
		scriptCode: prevOut.LockScript,
	}

	if err := execute(input.UnlockScript, stack, ctx); err != nil {
		return invalidf("unlock script: %v", err)
	}
	if err := execute(prevOut.LockScript, stack, ctx); err != nil {
		return invalidf("lock script: %v", err)
	}
	top, err := stack.peek()
	if err != nil {
		return invalidf("empty stack after evaluation")
	}
	if !asBool(top) {
		return invalidf("final stack value is false")
	}

	if isP2SH(prevOut.LockScript) {
		return v.verifyP2SH(input.UnlockScript, ctx)
	}
	return nil
}

// isP2SH reports whether script is the canonical BIP16 P2SH template:
// OP_HASH160 <20 bytes> OP_EQUAL.
func isP2SH(script []byte) bool {
	return len(script) == 23 &&
		opcode(script[0]) == opHash160 &&
		script[1] == p2shHashLen &&
		opcode(script[22]) == opEqual
}

// verifyP2SH re-evaluates the unlock script's final pushed item as a
// redeem script against the remainder of the unlock script's stack, the
// way BIP16 mandates: the outer evaluation already proved the redeem
// script hashes to the output's embedded hash (it ran OP_HASH160/OP_EQUAL
// against it), so only the redeem script's own logic needs checking here.
func (v *ScriptVerifier) verifyP2SH(unlockScript []byte, ctx *evalContext) error {
	stack := &dataStack{}
	if err := execute(unlockScript, stack, ctx); err != nil {
		return invalidf("p2sh unlock script: %v", err)
	}
	redeemScript, err := stack.pop()
	if err != nil {
		return invalidf("p2sh: missing redeem script")
	}
	ctx.scriptCode = redeemScript

	if err := execute(redeemScript, stack, ctx); err != nil {
		return invalidf("p2sh redeem script: %v", err)
	}
	top, err := stack.peek()
	if err != nil {
		return invalidf("p2sh: empty stack after evaluation")
	}
	if !asBool(top) {
		return invalidf("p2sh: final stack value is false")
	}
	return nil
}

// LegacySigOpCount sums the legacy signature-op count of every
// transparent input and output's script. Coinbase inputs contribute
// zero.
func (v *ScriptVerifier) LegacySigOpCount() uint64 {
	var count uint64
	for _, in := range v.tx.Inputs {
		if in.IsCoinbase {
			continue
		}
		count += countSigOps(in.UnlockScript)
	}
	for _, out := range v.tx.Outputs {
		count += countSigOps(out.LockScript)
	}
	return count
}
