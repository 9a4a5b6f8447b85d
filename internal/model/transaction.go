package model

// TransactionInput is one ordered input of a transaction.
type TransactionInput struct {
	Amount  Value  `cbor:"0,keyasint" json:"amount"`
	Address string `cbor:"1,keyasint" json:"address"`
}

// TransactionOutput is one ordered output of a transaction.
type TransactionOutput struct {
	Amount  Value  `cbor:"0,keyasint" json:"amount"`
	Address string `cbor:"1,keyasint" json:"address"`
}

// Transaction is a ledger transaction. The certificate is optional and
// already decoded into its tagged variant. BlockIDs lists every block the
// transaction appears in; that is normally one block, but can be several
// across live branches before a reorganization settles.
type Transaction struct {
	ID          TransactionID       `cbor:"0,keyasint" json:"id"`
	Inputs      []TransactionInput  `cbor:"1,keyasint,omitempty" json:"inputs,omitempty"`
	Outputs     []TransactionOutput `cbor:"2,keyasint,omitempty" json:"outputs,omitempty"`
	Certificate *Certificate        `cbor:"3,keyasint,omitempty" json:"certificate,omitempty"`
	BlockIDs    []BlockID           `cbor:"4,keyasint,omitempty" json:"blockIds,omitempty"`
}

// InBlock reports whether the transaction is already linked to the block.
func (t *Transaction) InBlock(id BlockID) bool {
	for _, b := range t.BlockIDs {
		if b == id {
			return true
		}
	}
	return false
}
