package mempool

import "github.com/zecd-io/zecd/pkg/core/transaction"

// outputCache maps a transparent outpoint to the output it names, for
// outputs created by transactions currently held in the set. This lets a
// later mempool transaction spend an output its parent created before
// either one is mined (I5).
type outputCache struct {
	outputs map[transaction.Outpoint]transaction.Output
}

func newOutputCache() *outputCache {
	return &outputCache{outputs: make(map[transaction.Outpoint]transaction.Output)}
}

func (c *outputCache) insert(tx *transaction.VerifiedTx) {
	for op, out := range tx.CreatedOutpoints() {
		c.outputs[op] = out
	}
}

func (c *outputCache) remove(tx *transaction.VerifiedTx) {
	for op := range tx.CreatedOutpoints() {
		delete(c.outputs, op)
	}
}

func (c *outputCache) get(op transaction.Outpoint) (transaction.Output, bool) {
	out, ok := c.outputs[op]
	return out, ok
}
