package model

// Pool is the aggregate state of a stake pool, mutated incrementally as its
// referencing certificates are ingested.
type Pool struct {
	ID             PoolID           `cbor:"0,keyasint" json:"id"`
	Registration   PoolRegistration `cbor:"1,keyasint" json:"registration"`
	Retirement     *PoolRetirement  `cbor:"2,keyasint,omitempty" json:"retirement,omitempty"`
	DelegatedStake Value            `cbor:"3,keyasint" json:"delegatedStake"`
	// BlockIDs is the ordered sequence of blocks this pool produced.
	BlockIDs []BlockID `cbor:"4,keyasint,omitempty" json:"blockIds,omitempty"`
}

// ProducedBlock reports whether the pool already recorded producing id.
func (p *Pool) ProducedBlock(id BlockID) bool {
	for _, b := range p.BlockIDs {
		if b == id {
			return true
		}
	}
	return false
}
