package config

import "fmt"

// Mempool configures the verified-transaction set's resource bounds.
type Mempool struct {
	// CostBytesLimit is the total-cost ceiling the owner enforces by
	// calling VerifiedSet.EvictOne whenever TotalCost() exceeds it.
	CostBytesLimit uint64 `yaml:"CostBytesLimit"`
}

// Validate returns an error if the Mempool configuration is not usable.
func (m Mempool) Validate() error {
	if m.CostBytesLimit == 0 {
		return fmt.Errorf("invalid CostBytesLimit: must be greater than zero")
	}
	return nil
}
