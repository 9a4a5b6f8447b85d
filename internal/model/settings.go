package model

// Fees are the linear fee parameters of the ledger.
type Fees struct {
	Constant    Value `json:"constant"`
	Coefficient Value `json:"coefficient"`
	Certificate Value `json:"certificate"`
}

// Settings are the static ledger parameters the explorer exposes. They are
// supplied by the ledger engine at startup and never change at runtime.
type Settings struct {
	Fees Fees `json:"fees"`
	// EpochStabilityDepth is the number of blocks after which a block is
	// treated as confirmed.
	EpochStabilityDepth uint32 `json:"epochStabilityDepth"`
}
