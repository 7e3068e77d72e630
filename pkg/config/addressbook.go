package config

import "fmt"

// AddressBook configures the address-book updater spawned for the
// lifetime of the process.
type AddressBook struct {
	// PeerConnectionLimit bounds both the change channel's capacity and
	// (by default) the number of known addresses the book retains.
	PeerConnectionLimit int `yaml:"PeerConnectionLimit"`
	// AddressLimit overrides the known-address ceiling when non-zero;
	// otherwise it defaults to PeerConnectionLimit.
	AddressLimit int `yaml:"AddressLimit,omitempty"`
	// StorePath, if non-empty, opens a bbolt-backed address book store
	// at this path so known peers survive a restart. Persistence is
	// off by default.
	StorePath string `yaml:"StorePath,omitempty"`
}

// Validate returns an error if the AddressBook configuration is not usable.
func (a AddressBook) Validate() error {
	if a.PeerConnectionLimit <= 0 {
		return fmt.Errorf("invalid PeerConnectionLimit: must be greater than zero")
	}
	return nil
}

// EffectiveAddressLimit returns AddressLimit if set, or
// PeerConnectionLimit otherwise.
func (a AddressBook) EffectiveAddressLimit() int {
	if a.AddressLimit > 0 {
		return a.AddressLimit
	}
	return a.PeerConnectionLimit
}
