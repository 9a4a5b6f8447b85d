// Package ingest drives the flow of applied blocks from the ledger engine
// into the entity store and the block index.
package ingest

import (
	"context"
	"time"

	"github.com/meridianledger/explorer-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source is the ordered, at-least-once feed of applied blocks produced
	// by the ledger engine.
	Source interface {
		Next(ctx context.Context) (*model.AppliedBlock, error)
	}

	// BlockApplier persists one applied block and links it into the index.
	// It returns chain.ErrOrphanBlock when the parent is not indexed yet.
	BlockApplier interface {
		Apply(ctx context.Context, ab *model.AppliedBlock) error
	}

	// Metrics observes the ingestion loop.
	Metrics interface {
		ObserveFetch(err error, started time.Time)
		ObserveApply(err error, started time.Time)
		SetOrphans(buffered int)
	}

	// EntityStore is the slice of the entity store the applier writes
	// through.
	EntityStore interface {
		PutBlock(ctx context.Context, b *model.Block) error
		PutTransaction(ctx context.Context, tx *model.Transaction) error
		Transaction(ctx context.Context, id model.TransactionID) (*model.Transaction, error)
		PutPool(ctx context.Context, p *model.Pool) error
		Pool(ctx context.Context, id model.PoolID) (*model.Pool, error)
		PutVotePlan(ctx context.Context, vp *model.VotePlan) error
		VotePlan(ctx context.Context, id model.VotePlanID) (*model.VotePlan, error)
		AddressState(ctx context.Context, addr string) (*model.AddressState, error)
		PutAddressState(ctx context.Context, addr string, st *model.AddressState) error
		AppendPoolID(ctx context.Context, id model.PoolID) error
		AppendVotePlanID(ctx context.Context, id model.VotePlanID) error
	}

	// ChainIndex is the slice of the block index the applier links blocks
	// into.
	ChainIndex interface {
		Ingest(b *model.Block, score uint64) error
		HasBlock(id model.BlockID) bool
	}
)
