package model

import (
	"errors"
	"fmt"
)

// ErrInternalConsistency marks stored data that violates an invariant the
// upstream ledger engine is supposed to guarantee. It is fatal for the
// affected subgraph and never corrected in place.
var ErrInternalConsistency = errors.New("internal consistency violation")

// LeaderKind tags the producer variant of a block.
type LeaderKind uint8

const (
	// LeaderPool marks a block produced by a stake pool.
	LeaderPool LeaderKind = iota + 1
	// LeaderBFT marks a block produced by a BFT leader.
	LeaderBFT
)

// Leader is the tagged union of block producers. Exactly one variant field
// matching Kind is set.
type Leader struct {
	Kind        LeaderKind `cbor:"0,keyasint" json:"kind"`
	PoolID      PoolID     `cbor:"1,keyasint,omitempty" json:"poolId,omitempty"`
	BFTLeaderID string     `cbor:"2,keyasint,omitempty" json:"bftLeaderId,omitempty"`
}

// Validate checks that the tag matches the populated variant.
func (l Leader) Validate() error {
	switch l.Kind {
	case LeaderPool:
		if l.PoolID == "" {
			return fmt.Errorf("%w: pool leader without pool id", ErrInternalConsistency)
		}
	case LeaderBFT:
		if l.BFTLeaderID == "" {
			return fmt.Errorf("%w: bft leader without id", ErrInternalConsistency)
		}
	default:
		return fmt.Errorf("%w: unknown leader kind %d", ErrInternalConsistency, l.Kind)
	}
	return nil
}

// Treasury is the treasury snapshot optionally attached to a block.
type Treasury struct {
	Rewards     Value `cbor:"0,keyasint" json:"rewards"`
	Treasury    Value `cbor:"1,keyasint" json:"treasury"`
	TreasuryTax Value `cbor:"2,keyasint" json:"treasuryTax"`
}

// Block is an immutable ledger block as seen by the index. Blocks are never
// mutated or deleted once stored, even when their branch is abandoned.
type Block struct {
	ID             BlockID         `cbor:"0,keyasint" json:"id"`
	Date           BlockDate       `cbor:"1,keyasint" json:"date"`
	ChainLength    ChainLength     `cbor:"2,keyasint" json:"chainLength"`
	ParentID       BlockID         `cbor:"3,keyasint,omitempty" json:"parentId,omitempty"`
	InputTotal     Value           `cbor:"4,keyasint" json:"inputTotal"`
	OutputTotal    Value           `cbor:"5,keyasint" json:"outputTotal"`
	Leader         *Leader         `cbor:"6,keyasint,omitempty" json:"leader,omitempty"`
	Treasury       *Treasury       `cbor:"7,keyasint,omitempty" json:"treasury,omitempty"`
	TransactionIDs []TransactionID `cbor:"8,keyasint,omitempty" json:"transactionIds,omitempty"`
}

// IsGenesis reports whether the block is the chain's genesis block.
func (b *Block) IsGenesis() bool {
	return b.ParentID == ""
}

// AppliedBlock is one element of the ordered at-least-once feed produced by
// the ledger engine: the block plus its fully decoded transactions and the
// ledger-supplied branch score used for total ordering of competing tips.
type AppliedBlock struct {
	Block        Block         `cbor:"0,keyasint" json:"block"`
	Transactions []Transaction `cbor:"1,keyasint,omitempty" json:"transactions,omitempty"`
	Score        uint64        `cbor:"2,keyasint" json:"score"`
}
