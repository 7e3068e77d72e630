package script

import (
	"errors"
	"fmt"
)

// ErrTxIndex is returned by IsValid when the requested input index is out
// of bounds.
var ErrTxIndex = errors.New("script: input index out of bounds")

// ErrTxCoinbase is returned by IsValid when the requested input is a
// coinbase input, which must never be script-verified.
var ErrTxCoinbase = errors.New("script: transaction is a coinbase and must not be script-verified")

// ErrScriptInvalid is wrapped with a detail message whenever the embedded
// engine rejects a script.
var ErrScriptInvalid = errors.New("script: script evaluation failed")

// invalidf wraps ErrScriptInvalid with a formatted detail message.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrScriptInvalid}, args...)...)
}
