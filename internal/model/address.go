package model

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Address is a derived identifier: it is not stored as an entity of its own
// but computed from its bech32 encoding. Its delegation target and
// transaction history live in the address state record.
type Address struct {
	Bech32 string `json:"bech32"`
}

// ParseAddress validates the bech32 encoding and returns the address.
func ParseAddress(s string) (Address, error) {
	if _, _, err := bech32.DecodeNoLimit(s); err != nil {
		return Address{}, fmt.Errorf("address %q: %w", s, err)
	}
	return Address{Bech32: s}, nil
}

// AddressState is the mutable per-address record: the current delegation
// target (empty when undelegated) and the ordered transaction history used
// for pagination.
type AddressState struct {
	Delegation     PoolID          `cbor:"0,keyasint,omitempty" json:"delegation,omitempty"`
	TransactionIDs []TransactionID `cbor:"1,keyasint,omitempty" json:"transactionIds,omitempty"`
}

// HasTransaction reports whether the history already contains id.
func (a *AddressState) HasTransaction(id TransactionID) bool {
	for _, t := range a.TransactionIDs {
		if t == id {
			return true
		}
	}
	return false
}
