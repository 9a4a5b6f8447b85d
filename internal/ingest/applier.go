package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/chain"
	"github.com/meridianledger/explorer-backend/internal/model"
	"github.com/meridianledger/explorer-backend/internal/store"
)

// Applier persists an applied block's entities, mutates the pool and
// vote-plan aggregates its certificates touch, and links the block into the
// DAG index. Applying the same block twice is a no-op end to end.
type Applier struct {
	logger *zap.Logger
	store  EntityStore
	index  ChainIndex
	txs    *txWriter
}

// NewApplier builds an Applier.
func NewApplier(s EntityStore, index ChainIndex, logger *zap.Logger) *Applier {
	logger = logger.Named("applier")
	return &Applier{
		logger: logger,
		store:  s,
		index:  index,
		txs:    newTxWriter(s, logger),
	}
}

// Start launches the background transaction writer.
func (a *Applier) Start(ctx context.Context) {
	a.txs.Start(ctx)
}

// Stop flushes and stops the background transaction writer.
func (a *Applier) Stop() {
	a.txs.Stop()
}

// Apply processes one applied block. It returns chain.ErrOrphanBlock when
// the parent is not indexed yet; the caller buffers and retries.
func (a *Applier) Apply(ctx context.Context, ab *model.AppliedBlock) error {
	b := &ab.Block
	if !b.IsGenesis() && !a.index.HasBlock(b.ParentID) {
		return fmt.Errorf("%w: %s waiting for parent %s", chain.ErrOrphanBlock, b.ID, b.ParentID)
	}

	if err := a.store.PutBlock(ctx, b); err != nil {
		return fmt.Errorf("persist block %s: %w", b.ID, err)
	}

	for i := range ab.Transactions {
		if err := a.applyTransaction(ctx, &ab.Transactions[i], b.ID); err != nil {
			return err
		}
	}

	// Barrier: everything queued for this block must be durable before the
	// block becomes reachable through the index.
	if err := a.txs.Flush(ctx); err != nil {
		return fmt.Errorf("flush transactions of %s: %w", b.ID, err)
	}

	if err := a.recordProducer(ctx, b); err != nil {
		return err
	}

	if err := a.index.Ingest(b, ab.Score); err != nil {
		return err
	}
	return nil
}

// applyTransaction persists the transaction and, the first time it is seen,
// applies its certificate and address-history side effects. A transaction
// re-seen on another branch only gains a block link.
func (a *Applier) applyTransaction(ctx context.Context, tx *model.Transaction, blockID model.BlockID) error {
	existing, err := a.store.Transaction(ctx, tx.ID)
	switch {
	case err == nil:
		if existing.InBlock(blockID) {
			return nil
		}
		existing.BlockIDs = append(existing.BlockIDs, blockID)
		return a.txs.Write(ctx, existing)
	case errors.Is(err, store.ErrNotFound):
	default:
		return fmt.Errorf("lookup transaction %s: %w", tx.ID, err)
	}

	fresh := *tx
	fresh.BlockIDs = []model.BlockID{blockID}
	if err := a.txs.Write(ctx, &fresh); err != nil {
		return err
	}

	if err := a.recordAddressHistory(ctx, &fresh); err != nil {
		return err
	}
	if fresh.Certificate != nil {
		if err := a.applyCertificate(ctx, &fresh); err != nil {
			return err
		}
	}
	return nil
}

// recordAddressHistory appends the transaction to the history of every
// address it touches.
func (a *Applier) recordAddressHistory(ctx context.Context, tx *model.Transaction) error {
	seen := make(map[string]struct{})
	record := func(addr string) error {
		if addr == "" {
			return nil
		}
		if _, ok := seen[addr]; ok {
			return nil
		}
		seen[addr] = struct{}{}

		st, err := a.addressState(ctx, addr)
		if err != nil {
			return err
		}
		if st.HasTransaction(tx.ID) {
			return nil
		}
		st.TransactionIDs = append(st.TransactionIDs, tx.ID)
		return a.store.PutAddressState(ctx, addr, st)
	}

	for _, in := range tx.Inputs {
		if err := record(in.Address); err != nil {
			return err
		}
	}
	for _, out := range tx.Outputs {
		if err := record(out.Address); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) addressState(ctx context.Context, addr string) (*model.AddressState, error) {
	st, err := a.store.AddressState(ctx, addr)
	if errors.Is(err, store.ErrNotFound) {
		return &model.AddressState{}, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// recordProducer appends the block to its producing pool's sequence.
func (a *Applier) recordProducer(ctx context.Context, b *model.Block) error {
	if b.Leader == nil || b.Leader.Kind != model.LeaderPool {
		return nil
	}
	pool, err := a.store.Pool(ctx, b.Leader.PoolID)
	if errors.Is(err, store.ErrNotFound) {
		// The registration certificate has not been seen; the upstream feed
		// is at-least-once and causally ordered, so this is a consistency
		// fault. Exclude the link rather than fail the block.
		a.logger.Error("block produced by unregistered pool",
			zap.String("block", string(b.ID)),
			zap.String("pool", string(b.Leader.PoolID)))
		return nil
	}
	if err != nil {
		return err
	}
	if pool.ProducedBlock(b.ID) {
		return nil
	}
	pool.BlockIDs = append(pool.BlockIDs, b.ID)
	return a.store.PutPool(ctx, pool)
}
