// Package resolver maps the externally exposed query fields and the tip
// subscription onto the entity store, the block index and the pagination
// engine.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/chain"
	"github.com/meridianledger/explorer-backend/internal/model"
	"github.com/meridianledger/explorer-backend/internal/store"
)

// ErrInvalidArgument marks user-supplied arguments that fail validation,
// such as a malformed bech32 address.
var ErrInvalidArgument = errors.New("invalid argument")

// QueryMetrics observes resolved queries.
type QueryMetrics interface {
	ObserveQuery(field string, err error, started time.Time)
}

// Resolver answers the query surface against the current index state.
type Resolver struct {
	logger   *zap.Logger
	store    *store.Store
	chain    *chain.Index
	settings model.Settings
	metrics  QueryMetrics
}

// New builds a Resolver. metrics may be nil.
func New(s *store.Store, ix *chain.Index, settings model.Settings, metrics QueryMetrics, logger *zap.Logger) *Resolver {
	return &Resolver{
		logger:   logger.Named("resolver"),
		store:    s,
		chain:    ix,
		settings: settings,
		metrics:  metrics,
	}
}

func (r *Resolver) observe(field string, started time.Time, err error) {
	if r.metrics != nil {
		r.metrics.ObserveQuery(field, err, started)
	}
}

// BlockView is a block joined with its index-derived status.
type BlockView struct {
	*model.Block
	Confirmed bool `json:"confirmed"`
}

// Block resolves a block by id.
func (r *Resolver) Block(ctx context.Context, id model.BlockID) (_ *BlockView, err error) {
	started := time.Now()
	defer func() { r.observe("block", started, err) }()

	b, err := r.store.Block(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BlockView{Block: b, Confirmed: r.chain.IsConfirmed(id)}, nil
}

// BlocksByChainLength resolves every block at the given length; the result
// may be empty or hold one block per competing branch.
func (r *Resolver) BlocksByChainLength(ctx context.Context, length model.ChainLength) (_ []*BlockView, err error) {
	started := time.Now()
	defer func() { r.observe("blocksByChainLength", started, err) }()

	ids := r.chain.BlocksAtChainLength(length)
	out := make([]*BlockView, 0, len(ids))
	for _, id := range ids {
		b, err := r.store.Block(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("block %s at length %d: %w", id, length, err)
		}
		out = append(out, &BlockView{Block: b, Confirmed: r.chain.IsConfirmed(id)})
	}
	return out, nil
}

// Transaction resolves a transaction by id.
func (r *Resolver) Transaction(ctx context.Context, id model.TransactionID) (_ *model.Transaction, err error) {
	started := time.Now()
	defer func() { r.observe("transaction", started, err) }()

	return r.store.Transaction(ctx, id)
}

// Branches lists the live branches, main branch first.
func (r *Resolver) Branches(ctx context.Context) (_ []chain.Branch, err error) {
	started := time.Now()
	defer func() { r.observe("branches", started, err) }()

	return r.chain.Branches(), nil
}

// Tip returns the current main branch.
func (r *Resolver) Tip(ctx context.Context) (_ chain.Branch, err error) {
	started := time.Now()
	defer func() { r.observe("tip", started, err) }()

	tip, ok := r.chain.Tip()
	if !ok {
		return chain.Branch{}, fmt.Errorf("tip: %w", store.ErrNotFound)
	}
	return tip, nil
}

// Branch resolves a live branch by id.
func (r *Resolver) Branch(ctx context.Context, id string) (_ chain.Branch, err error) {
	started := time.Now()
	defer func() { r.observe("branch", started, err) }()

	br, err := r.chain.Branch(id)
	if err != nil {
		return chain.Branch{}, fmt.Errorf("branch %s: %w", id, store.ErrNotFound)
	}
	return br, nil
}

// EpochView summarizes the main-branch slice of an epoch.
type EpochView struct {
	ID         uint32        `json:"id"`
	FirstBlock model.BlockID `json:"firstBlock"`
	LastBlock  model.BlockID `json:"lastBlock"`
	TotalBlocks int          `json:"totalBlocks"`
}

// Epoch resolves an epoch by number. An epoch with no main-branch blocks is
// NotFound.
func (r *Resolver) Epoch(ctx context.Context, epoch uint32) (_ *EpochView, err error) {
	started := time.Now()
	defer func() { r.observe("epoch", started, err) }()

	ids := r.chain.MainBlocksInEpoch(epoch)
	if len(ids) == 0 {
		return nil, fmt.Errorf("epoch %d: %w", epoch, store.ErrNotFound)
	}
	return &EpochView{
		ID:          epoch,
		FirstBlock:  ids[0],
		LastBlock:   ids[len(ids)-1],
		TotalBlocks: len(ids),
	}, nil
}

// AddressView is the derived address entity with its delegation target.
type AddressView struct {
	Address    model.Address `json:"address"`
	Delegation model.PoolID  `json:"delegation,omitempty"`
}

// Address resolves an address from its bech32 encoding. Addresses are
// derived identifiers: an address the chain never saw still resolves, with
// no delegation and an empty history.
func (r *Resolver) Address(ctx context.Context, bech32 string) (_ *AddressView, err error) {
	started := time.Now()
	defer func() { r.observe("address", started, err) }()

	addr, err := model.ParseAddress(bech32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	view := &AddressView{Address: addr}
	st, err := r.store.AddressState(ctx, addr.Bech32)
	switch {
	case err == nil:
		view.Delegation = st.Delegation
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, err
	}
	return view, nil
}

// StakePool resolves a pool by id.
func (r *Resolver) StakePool(ctx context.Context, id model.PoolID) (_ *model.Pool, err error) {
	started := time.Now()
	defer func() { r.observe("stakePool", started, err) }()

	return r.store.Pool(ctx, id)
}

// Settings returns the static ledger parameters.
func (r *Resolver) Settings(ctx context.Context) (_ model.Settings, err error) {
	started := time.Now()
	defer func() { r.observe("settings", started, err) }()

	return r.settings, nil
}

// VotePlan resolves a vote plan by id.
func (r *Resolver) VotePlan(ctx context.Context, id model.VotePlanID) (_ *model.VotePlan, err error) {
	started := time.Now()
	defer func() { r.observe("votePlan", started, err) }()

	return r.store.VotePlan(ctx, id)
}

// TipSubscribe opens a tip subscription. The caller receives the current
// main branch immediately and the latest tip after every change; it must
// Close the subscription when done.
func (r *Resolver) TipSubscribe() *chain.TipSubscription {
	return r.chain.Broadcaster().Subscribe()
}
