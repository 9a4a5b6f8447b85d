package model

import "fmt"

// PayloadType distinguishes public and private voting.
type PayloadType uint8

const (
	// PayloadPublic means plaintext choices and plaintext tallies.
	PayloadPublic PayloadType = iota + 1
	// PayloadPrivate means encrypted votes; tally results appear only after
	// the committee decrypts them.
	PayloadPrivate
)

func (p PayloadType) String() string {
	switch p {
	case PayloadPublic:
		return "public"
	case PayloadPrivate:
		return "private"
	default:
		return fmt.Sprintf("payload(%d)", uint8(p))
	}
}

// OptionRange is the half-open range [Start, End) of valid choices.
type OptionRange struct {
	Start uint8 `cbor:"0,keyasint" json:"start"`
	End   uint8 `cbor:"1,keyasint" json:"end"`
}

// Width is the number of options in the range.
func (o OptionRange) Width() int {
	if o.End <= o.Start {
		return 0
	}
	return int(o.End - o.Start)
}

// VotePayloadPublic is a plaintext vote choice.
type VotePayloadPublic struct {
	Choice uint8 `cbor:"0,keyasint" json:"choice"`
}

// VotePayloadPrivate is an encrypted vote with its validity proof.
type VotePayloadPrivate struct {
	EncryptedVote []byte `cbor:"0,keyasint" json:"encryptedVote"`
	Proof         []byte `cbor:"1,keyasint" json:"proof"`
}

// VotePayloadStatus is the tagged union of vote payload variants; the tag
// always matches the owning vote plan's payload type.
type VotePayloadStatus struct {
	Kind    PayloadType         `cbor:"0,keyasint" json:"kind"`
	Public  *VotePayloadPublic  `cbor:"1,keyasint,omitempty" json:"public,omitempty"`
	Private *VotePayloadPrivate `cbor:"2,keyasint,omitempty" json:"private,omitempty"`
}

// Variant returns the populated payload variant.
func (v *VotePayloadStatus) Variant() (any, error) {
	switch v.Kind {
	case PayloadPublic:
		if v.Public != nil {
			return v.Public, nil
		}
	case PayloadPrivate:
		if v.Private != nil {
			return v.Private, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown vote payload kind %d", ErrInternalConsistency, v.Kind)
	}
	return nil, fmt.Errorf("%w: vote payload tagged %s has no matching variant", ErrInternalConsistency, v.Kind)
}

// TallyPublic is a plaintext tally: one weight per option.
type TallyPublic struct {
	Results []Weight    `cbor:"0,keyasint,omitempty" json:"results"`
	Options OptionRange `cbor:"1,keyasint" json:"options"`
}

// TallyPrivate is the tally of a private plan. Results stays nil until the
// committee publishes the decrypted weights.
type TallyPrivate struct {
	Results []Weight    `cbor:"0,keyasint,omitempty" json:"results"`
	Options OptionRange `cbor:"1,keyasint" json:"options"`
}

// TallyStatus is the tagged union of tally variants.
type TallyStatus struct {
	Kind    PayloadType   `cbor:"0,keyasint" json:"kind"`
	Public  *TallyPublic  `cbor:"1,keyasint,omitempty" json:"public,omitempty"`
	Private *TallyPrivate `cbor:"2,keyasint,omitempty" json:"private,omitempty"`
}

// Variant returns the populated tally variant.
func (t *TallyStatus) Variant() (any, error) {
	switch t.Kind {
	case PayloadPublic:
		if t.Public != nil {
			return t.Public, nil
		}
	case PayloadPrivate:
		if t.Private != nil {
			return t.Private, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown tally kind %d", ErrInternalConsistency, t.Kind)
	}
	return nil, fmt.Errorf("%w: tally tagged %s has no matching variant", ErrInternalConsistency, t.Kind)
}

// VoteStatus is one cast vote within a proposal, in ingestion order.
type VoteStatus struct {
	Address string            `cbor:"0,keyasint" json:"address"`
	Payload VotePayloadStatus `cbor:"1,keyasint" json:"payload"`
}

// Proposal is one proposal of a vote plan.
type Proposal struct {
	ExternalID string       `cbor:"0,keyasint" json:"externalId"`
	Options    OptionRange  `cbor:"1,keyasint" json:"options"`
	Tally      *TallyStatus `cbor:"2,keyasint,omitempty" json:"tally,omitempty"`
	Votes      []VoteStatus `cbor:"3,keyasint,omitempty" json:"votes,omitempty"`
}

// VotePlanDetails is the immutable definition of a vote plan as announced by
// its certificate.
type VotePlanDetails struct {
	ID           VotePlanID  `cbor:"0,keyasint" json:"id"`
	VoteStart    BlockDate   `cbor:"1,keyasint" json:"voteStart"`
	VoteEnd      BlockDate   `cbor:"2,keyasint" json:"voteEnd"`
	CommitteeEnd BlockDate   `cbor:"3,keyasint" json:"committeeEnd"`
	PayloadType  PayloadType `cbor:"4,keyasint" json:"payloadType"`
	Proposals    []Proposal  `cbor:"5,keyasint,omitempty" json:"proposals,omitempty"`
}

// VotePlan is the aggregate state of a vote plan: its definition plus the
// votes and tallies accumulated from later certificates.
type VotePlan struct {
	ID           VotePlanID  `cbor:"0,keyasint" json:"id"`
	VoteStart    BlockDate   `cbor:"1,keyasint" json:"voteStart"`
	VoteEnd      BlockDate   `cbor:"2,keyasint" json:"voteEnd"`
	CommitteeEnd BlockDate   `cbor:"3,keyasint" json:"committeeEnd"`
	PayloadType  PayloadType `cbor:"4,keyasint" json:"payloadType"`
	Proposals    []Proposal  `cbor:"5,keyasint,omitempty" json:"proposals,omitempty"`
}
