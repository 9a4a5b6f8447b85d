package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meridianledger/explorer-backend/internal/model"
	"github.com/meridianledger/explorer-backend/internal/pagination"
	"github.com/meridianledger/explorer-backend/internal/store"
)

// EpochBlocks pages through the main-branch blocks of an epoch in ascending
// chain-length order. Cursors encode the block's position within the epoch.
func (r *Resolver) EpochBlocks(ctx context.Context, epoch uint32, args pagination.Args) (_ *pagination.Connection[*BlockView], err error) {
	started := time.Now()
	defer func() { r.observe("epochBlocks", started, err) }()

	ids := r.chain.MainBlocksInEpoch(epoch)
	seq := pagination.FuncSequence[*BlockView]{
		Length: func(context.Context) (int, error) { return len(ids), nil },
		Element: func(ctx context.Context, i int) (*BlockView, error) {
			b, err := r.store.Block(ctx, ids[i])
			if err != nil {
				return nil, fmt.Errorf("block %s: %w", ids[i], err)
			}
			return &BlockView{Block: b, Confirmed: r.chain.IsConfirmed(ids[i])}, nil
		},
	}
	return pagination.Paginate[*BlockView](ctx, seq, args)
}

// AddressTransactions pages through an address's transaction history in
// ingestion order.
func (r *Resolver) AddressTransactions(ctx context.Context, bech32 string, args pagination.Args) (_ *pagination.Connection[*model.Transaction], err error) {
	started := time.Now()
	defer func() { r.observe("addressTransactions", started, err) }()

	addr, err := model.ParseAddress(bech32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var txIDs []model.TransactionID
	st, err := r.store.AddressState(ctx, addr.Bech32)
	switch {
	case err == nil:
		txIDs = st.TransactionIDs
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, err
	}

	seq := pagination.FuncSequence[*model.Transaction]{
		Length: func(context.Context) (int, error) { return len(txIDs), nil },
		Element: func(ctx context.Context, i int) (*model.Transaction, error) {
			return r.store.Transaction(ctx, txIDs[i])
		},
	}
	return pagination.Paginate[*model.Transaction](ctx, seq, args)
}

// StakePools pages through every registered pool in registration order.
func (r *Resolver) StakePools(ctx context.Context, args pagination.Args) (_ *pagination.Connection[*model.Pool], err error) {
	started := time.Now()
	defer func() { r.observe("stakePools", started, err) }()

	ids, err := r.store.PoolIDs(ctx)
	if err != nil {
		return nil, err
	}
	seq := pagination.FuncSequence[*model.Pool]{
		Length: func(context.Context) (int, error) { return len(ids), nil },
		Element: func(ctx context.Context, i int) (*model.Pool, error) {
			return r.store.Pool(ctx, ids[i])
		},
	}
	return pagination.Paginate[*model.Pool](ctx, seq, args)
}

// PoolBlocks pages through the blocks a pool produced, in production order.
func (r *Resolver) PoolBlocks(ctx context.Context, id model.PoolID, args pagination.Args) (_ *pagination.Connection[*BlockView], err error) {
	started := time.Now()
	defer func() { r.observe("poolBlocks", started, err) }()

	pool, err := r.store.Pool(ctx, id)
	if err != nil {
		return nil, err
	}
	seq := pagination.FuncSequence[*BlockView]{
		Length: func(context.Context) (int, error) { return len(pool.BlockIDs), nil },
		Element: func(ctx context.Context, i int) (*BlockView, error) {
			b, err := r.store.Block(ctx, pool.BlockIDs[i])
			if err != nil {
				return nil, err
			}
			return &BlockView{Block: b, Confirmed: r.chain.IsConfirmed(b.ID)}, nil
		},
	}
	return pagination.Paginate[*BlockView](ctx, seq, args)
}

// VotePlans pages through every announced vote plan in announcement order.
func (r *Resolver) VotePlans(ctx context.Context, args pagination.Args) (_ *pagination.Connection[*model.VotePlan], err error) {
	started := time.Now()
	defer func() { r.observe("votePlans", started, err) }()

	ids, err := r.store.VotePlanIDs(ctx)
	if err != nil {
		return nil, err
	}
	seq := pagination.FuncSequence[*model.VotePlan]{
		Length: func(context.Context) (int, error) { return len(ids), nil },
		Element: func(ctx context.Context, i int) (*model.VotePlan, error) {
			return r.store.VotePlan(ctx, ids[i])
		},
	}
	return pagination.Paginate[*model.VotePlan](ctx, seq, args)
}

// ProposalVotes pages through the votes cast on one proposal of a vote plan,
// in ingestion order.
func (r *Resolver) ProposalVotes(ctx context.Context, id model.VotePlanID, proposal int, args pagination.Args) (_ *pagination.Connection[model.VoteStatus], err error) {
	started := time.Now()
	defer func() { r.observe("proposalVotes", started, err) }()

	vp, err := r.store.VotePlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal < 0 || proposal >= len(vp.Proposals) {
		return nil, fmt.Errorf("vote plan %s proposal %d: %w", id, proposal, store.ErrNotFound)
	}
	votes := vp.Proposals[proposal].Votes
	return pagination.Paginate[model.VoteStatus](ctx, pagination.SliceSequence[model.VoteStatus](votes), args)
}
