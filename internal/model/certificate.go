package model

import "fmt"

// CertificateKind tags the certificate variant carried by a transaction.
type CertificateKind uint8

const (
	CertStakeDelegation CertificateKind = iota + 1
	CertOwnerStakeDelegation
	CertPoolRegistration
	CertPoolRetirement
	CertPoolUpdate
	CertVotePlan
	CertVoteCast
	CertVoteTally
	CertEncryptedVoteTally
)

func (k CertificateKind) String() string {
	switch k {
	case CertStakeDelegation:
		return "stake_delegation"
	case CertOwnerStakeDelegation:
		return "owner_stake_delegation"
	case CertPoolRegistration:
		return "pool_registration"
	case CertPoolRetirement:
		return "pool_retirement"
	case CertPoolUpdate:
		return "pool_update"
	case CertVotePlan:
		return "vote_plan"
	case CertVoteCast:
		return "vote_cast"
	case CertVoteTally:
		return "vote_tally"
	case CertEncryptedVoteTally:
		return "encrypted_vote_tally"
	default:
		return fmt.Sprintf("certificate(%d)", uint8(k))
	}
}

// StakeDelegation delegates an account's stake to zero or more pools.
// An empty pool list revokes the delegation.
type StakeDelegation struct {
	Account string   `cbor:"0,keyasint" json:"account"`
	Pools   []PoolID `cbor:"1,keyasint,omitempty" json:"pools,omitempty"`
}

// OwnerStakeDelegation delegates the stake of the transaction's own input
// account, so it carries no explicit account.
type OwnerStakeDelegation struct {
	Pools []PoolID `cbor:"0,keyasint,omitempty" json:"pools,omitempty"`
}

// Ratio is the tax ratio of a pool reward schedule.
type Ratio struct {
	Numerator   uint64  `cbor:"0,keyasint" json:"numerator"`
	Denominator NonZero `cbor:"1,keyasint" json:"denominator"`
}

// TaxType is the reward tax schedule of a pool.
type TaxType struct {
	Fixed    Value    `cbor:"0,keyasint" json:"fixed"`
	Ratio    Ratio    `cbor:"1,keyasint" json:"ratio"`
	MaxLimit *NonZero `cbor:"2,keyasint,omitempty" json:"maxLimit,omitempty"`
}

// PoolRegistration announces a new stake pool.
type PoolRegistration struct {
	Pool                PoolID            `cbor:"0,keyasint" json:"pool"`
	StartValidity       TimeOffsetSeconds `cbor:"1,keyasint" json:"startValidity"`
	ManagementThreshold uint8             `cbor:"2,keyasint" json:"managementThreshold"`
	Owners              []string          `cbor:"3,keyasint,omitempty" json:"owners,omitempty"`
	Operators           []string          `cbor:"4,keyasint,omitempty" json:"operators,omitempty"`
	RewardAccount       string            `cbor:"5,keyasint,omitempty" json:"rewardAccount,omitempty"`
	Rewards             TaxType           `cbor:"6,keyasint" json:"rewards"`
}

// PoolRetirement schedules a pool's retirement.
type PoolRetirement struct {
	Pool           PoolID            `cbor:"0,keyasint" json:"pool"`
	RetirementTime TimeOffsetSeconds `cbor:"1,keyasint" json:"retirementTime"`
}

// PoolUpdate replaces a pool's registration parameters.
type PoolUpdate struct {
	Pool         PoolID           `cbor:"0,keyasint" json:"pool"`
	Registration PoolRegistration `cbor:"1,keyasint" json:"registration"`
}

// VoteCast casts a vote on one proposal of a vote plan.
type VoteCast struct {
	VotePlan      VotePlanID        `cbor:"0,keyasint" json:"votePlan"`
	ProposalIndex uint8             `cbor:"1,keyasint" json:"proposalIndex"`
	Account       string            `cbor:"2,keyasint" json:"account"`
	Payload       VotePayloadStatus `cbor:"3,keyasint" json:"payload"`
}

// VoteTally requests the public tally of a vote plan.
type VoteTally struct {
	VotePlan VotePlanID `cbor:"0,keyasint" json:"votePlan"`
	// Results carries the decrypted per-option weights for private plans
	// once the committee publishes them; empty for the initial tally of a
	// private plan and always set for public plans.
	Results [][]Weight `cbor:"1,keyasint,omitempty" json:"results,omitempty"`
}

// EncryptedVoteTally requests the encrypted tally of a private vote plan.
type EncryptedVoteTally struct {
	VotePlan VotePlanID `cbor:"0,keyasint" json:"votePlan"`
}

// Certificate is the tagged union of the nine certificate variants. The
// variant is decoded once at ingest time; exactly one pointer matching Kind
// is non-nil.
type Certificate struct {
	Kind                 CertificateKind       `cbor:"0,keyasint" json:"kind"`
	StakeDelegation      *StakeDelegation      `cbor:"1,keyasint,omitempty" json:"stakeDelegation,omitempty"`
	OwnerStakeDelegation *OwnerStakeDelegation `cbor:"2,keyasint,omitempty" json:"ownerStakeDelegation,omitempty"`
	PoolRegistration     *PoolRegistration     `cbor:"3,keyasint,omitempty" json:"poolRegistration,omitempty"`
	PoolRetirement       *PoolRetirement       `cbor:"4,keyasint,omitempty" json:"poolRetirement,omitempty"`
	PoolUpdate           *PoolUpdate           `cbor:"5,keyasint,omitempty" json:"poolUpdate,omitempty"`
	VotePlan             *VotePlanDetails      `cbor:"6,keyasint,omitempty" json:"votePlan,omitempty"`
	VoteCast             *VoteCast             `cbor:"7,keyasint,omitempty" json:"voteCast,omitempty"`
	VoteTally            *VoteTally            `cbor:"8,keyasint,omitempty" json:"voteTally,omitempty"`
	EncryptedVoteTally   *EncryptedVoteTally   `cbor:"9,keyasint,omitempty" json:"encryptedVoteTally,omitempty"`
}

// Variant returns the populated variant for the certificate's tag. Every
// stored certificate has exactly one; a mismatch is an internal consistency
// fault, not a user-facing error.
func (c *Certificate) Variant() (any, error) {
	var v any
	switch c.Kind {
	case CertStakeDelegation:
		if c.StakeDelegation != nil {
			v = c.StakeDelegation
		}
	case CertOwnerStakeDelegation:
		if c.OwnerStakeDelegation != nil {
			v = c.OwnerStakeDelegation
		}
	case CertPoolRegistration:
		if c.PoolRegistration != nil {
			v = c.PoolRegistration
		}
	case CertPoolRetirement:
		if c.PoolRetirement != nil {
			v = c.PoolRetirement
		}
	case CertPoolUpdate:
		if c.PoolUpdate != nil {
			v = c.PoolUpdate
		}
	case CertVotePlan:
		if c.VotePlan != nil {
			v = c.VotePlan
		}
	case CertVoteCast:
		if c.VoteCast != nil {
			v = c.VoteCast
		}
	case CertVoteTally:
		if c.VoteTally != nil {
			v = c.VoteTally
		}
	case CertEncryptedVoteTally:
		if c.EncryptedVoteTally != nil {
			v = c.EncryptedVoteTally
		}
	default:
		return nil, fmt.Errorf("%w: unknown certificate kind %d", ErrInternalConsistency, c.Kind)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: certificate tagged %s has no matching variant", ErrInternalConsistency, c.Kind)
	}
	return v, nil
}
