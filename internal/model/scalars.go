// Package model defines domain models for the ledger explorer index.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// BlockID is the content-addressed identifier of a block, hex encoded.
type BlockID string

// TransactionID is the content hash of a transaction, hex encoded.
type TransactionID string

// PoolID identifies a registered stake pool.
type PoolID string

// VotePlanID identifies a vote plan.
type VotePlanID string

// ChainLength is the distance of a block from genesis. Genesis is 0.
// It renders as a string on the wire.
type ChainLength uint64

// MarshalJSON renders the chain length as a decimal string.
func (c ChainLength) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(c), 10))
}

// UnmarshalJSON accepts a decimal string.
func (c *ChainLength) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("chain length %q: %w", s, err)
	}
	*c = ChainLength(v)
	return nil
}

// Value is a non-negative amount of the ledger currency.
type Value uint64

// Weight is a non-negative voting weight.
type Weight uint64

// NonZero is a positive integer; 0 is rejected at construction.
type NonZero uint64

// NewNonZero validates that v is strictly positive.
func NewNonZero(v uint64) (NonZero, error) {
	if v == 0 {
		return 0, fmt.Errorf("non-zero value is 0")
	}
	return NonZero(v), nil
}

// TimeOffsetSeconds is a signed offset from the chain start time.
type TimeOffsetSeconds int64

// BlockDate is the composite (epoch, slot) ordering key of a block.
type BlockDate struct {
	Epoch uint32 `cbor:"0,keyasint" json:"epoch"`
	Slot  uint32 `cbor:"1,keyasint" json:"slot"`
}

// Compare orders dates by epoch, then slot.
func (d BlockDate) Compare(other BlockDate) int {
	switch {
	case d.Epoch < other.Epoch:
		return -1
	case d.Epoch > other.Epoch:
		return 1
	case d.Slot < other.Slot:
		return -1
	case d.Slot > other.Slot:
		return 1
	default:
		return 0
	}
}

func (d BlockDate) String() string {
	return fmt.Sprintf("%d.%d", d.Epoch, d.Slot)
}
