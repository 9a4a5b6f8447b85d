package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/model"
	"github.com/meridianledger/explorer-backend/internal/store"
)

// applyCertificate dispatches on the certificate variant and mutates the
// aggregate state it targets. An unknown or mistagged certificate is an
// internal consistency fault: it is logged and its subgraph skipped, never
// propagated into query answers.
func (a *Applier) applyCertificate(ctx context.Context, tx *model.Transaction) error {
	variant, err := tx.Certificate.Variant()
	if err != nil {
		a.logger.Error("certificate variant dispatch failed",
			zap.String("transaction", string(tx.ID)), zap.Error(err))
		return nil
	}

	switch cert := variant.(type) {
	case *model.StakeDelegation:
		return a.applyDelegation(ctx, cert.Account, cert.Pools, txInputTotal(tx))
	case *model.OwnerStakeDelegation:
		return a.applyDelegation(ctx, firstInputAddress(tx), cert.Pools, txInputTotal(tx))
	case *model.PoolRegistration:
		return a.applyPoolRegistration(ctx, cert)
	case *model.PoolRetirement:
		return a.applyPoolRetirement(ctx, cert)
	case *model.PoolUpdate:
		return a.applyPoolUpdate(ctx, cert)
	case *model.VotePlanDetails:
		return a.applyVotePlan(ctx, cert)
	case *model.VoteCast:
		return a.applyVoteCast(ctx, cert)
	case *model.VoteTally:
		return a.applyVoteTally(ctx, cert)
	case *model.EncryptedVoteTally:
		return a.applyEncryptedVoteTally(ctx, cert)
	default:
		a.logger.Error("unhandled certificate variant",
			zap.String("transaction", string(tx.ID)),
			zap.String("kind", tx.Certificate.Kind.String()))
		return nil
	}
}

func txInputTotal(tx *model.Transaction) model.Value {
	var total model.Value
	for _, in := range tx.Inputs {
		total += in.Amount
	}
	return total
}

func firstInputAddress(tx *model.Transaction) string {
	if len(tx.Inputs) == 0 {
		return ""
	}
	return tx.Inputs[0].Address
}

// applyDelegation points the account at its new pool and credits the pool's
// delegated-stake aggregate with the delegating transaction's input value.
func (a *Applier) applyDelegation(ctx context.Context, account string, pools []model.PoolID, stake model.Value) error {
	if account == "" {
		a.logger.Warn("delegation certificate without account")
		return nil
	}
	st, err := a.addressState(ctx, account)
	if err != nil {
		return err
	}
	if len(pools) == 0 {
		st.Delegation = ""
		return a.store.PutAddressState(ctx, account, st)
	}

	target := pools[0]
	st.Delegation = target
	if err := a.store.PutAddressState(ctx, account, st); err != nil {
		return err
	}

	pool, err := a.store.Pool(ctx, target)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Error("delegation to unregistered pool",
			zap.String("account", account), zap.String("pool", string(target)))
		return nil
	}
	if err != nil {
		return err
	}
	pool.DelegatedStake += stake
	return a.store.PutPool(ctx, pool)
}

func (a *Applier) applyPoolRegistration(ctx context.Context, cert *model.PoolRegistration) error {
	_, err := a.store.Pool(ctx, cert.Pool)
	switch {
	case err == nil:
		// Re-registration of a known pool; keep the original record.
		return nil
	case errors.Is(err, store.ErrNotFound):
	default:
		return err
	}

	pool := &model.Pool{ID: cert.Pool, Registration: *cert}
	if err := a.store.PutPool(ctx, pool); err != nil {
		return err
	}
	return a.store.AppendPoolID(ctx, cert.Pool)
}

func (a *Applier) applyPoolRetirement(ctx context.Context, cert *model.PoolRetirement) error {
	pool, err := a.store.Pool(ctx, cert.Pool)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Error("retirement of unregistered pool", zap.String("pool", string(cert.Pool)))
		return nil
	}
	if err != nil {
		return err
	}
	if pool.Retirement != nil {
		return nil
	}
	retirement := *cert
	pool.Retirement = &retirement
	return a.store.PutPool(ctx, pool)
}

func (a *Applier) applyPoolUpdate(ctx context.Context, cert *model.PoolUpdate) error {
	pool, err := a.store.Pool(ctx, cert.Pool)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Error("update of unregistered pool", zap.String("pool", string(cert.Pool)))
		return nil
	}
	if err != nil {
		return err
	}
	pool.Registration = cert.Registration
	return a.store.PutPool(ctx, pool)
}

func (a *Applier) applyVotePlan(ctx context.Context, cert *model.VotePlanDetails) error {
	_, err := a.store.VotePlan(ctx, cert.ID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
	default:
		return err
	}

	vp := &model.VotePlan{
		ID:           cert.ID,
		VoteStart:    cert.VoteStart,
		VoteEnd:      cert.VoteEnd,
		CommitteeEnd: cert.CommitteeEnd,
		PayloadType:  cert.PayloadType,
		Proposals:    make([]model.Proposal, len(cert.Proposals)),
	}
	copy(vp.Proposals, cert.Proposals)
	if err := a.store.PutVotePlan(ctx, vp); err != nil {
		return err
	}
	return a.store.AppendVotePlanID(ctx, cert.ID)
}

func (a *Applier) applyVoteCast(ctx context.Context, cert *model.VoteCast) error {
	vp, err := a.store.VotePlan(ctx, cert.VotePlan)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Error("vote cast on unknown vote plan", zap.String("votePlan", string(cert.VotePlan)))
		return nil
	}
	if err != nil {
		return err
	}
	if int(cert.ProposalIndex) >= len(vp.Proposals) {
		a.logger.Error("vote cast on out-of-range proposal",
			zap.String("votePlan", string(cert.VotePlan)),
			zap.Uint8("proposal", cert.ProposalIndex))
		return nil
	}
	proposal := &vp.Proposals[cert.ProposalIndex]
	proposal.Votes = append(proposal.Votes, model.VoteStatus{
		Address: cert.Account,
		Payload: cert.Payload,
	})
	return a.store.PutVotePlan(ctx, vp)
}

// applyVoteTally materializes the tally of every proposal. Public plans
// tally to plaintext weights immediately; for private plans the results stay
// absent until a later tally certificate carries the decrypted weights.
func (a *Applier) applyVoteTally(ctx context.Context, cert *model.VoteTally) error {
	vp, err := a.store.VotePlan(ctx, cert.VotePlan)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Error("tally of unknown vote plan", zap.String("votePlan", string(cert.VotePlan)))
		return nil
	}
	if err != nil {
		return err
	}

	for i := range vp.Proposals {
		proposal := &vp.Proposals[i]
		var results []model.Weight
		if i < len(cert.Results) {
			results = cert.Results[i]
		}
		switch vp.PayloadType {
		case model.PayloadPublic:
			if results == nil {
				results = publicResults(proposal)
			}
			proposal.Tally = &model.TallyStatus{
				Kind:   model.PayloadPublic,
				Public: &model.TallyPublic{Results: results, Options: proposal.Options},
			}
		case model.PayloadPrivate:
			proposal.Tally = &model.TallyStatus{
				Kind:    model.PayloadPrivate,
				Private: &model.TallyPrivate{Results: results, Options: proposal.Options},
			}
		default:
			return fmt.Errorf("%w: vote plan %s has payload type %d",
				model.ErrInternalConsistency, vp.ID, vp.PayloadType)
		}
	}
	return a.store.PutVotePlan(ctx, vp)
}

// publicResults folds the cast votes of a public proposal into per-option
// weights.
func publicResults(proposal *model.Proposal) []model.Weight {
	results := make([]model.Weight, proposal.Options.Width())
	for _, vote := range proposal.Votes {
		if vote.Payload.Public == nil {
			continue
		}
		choice := int(vote.Payload.Public.Choice) - int(proposal.Options.Start)
		if choice < 0 || choice >= len(results) {
			continue
		}
		results[choice]++
	}
	return results
}

func (a *Applier) applyEncryptedVoteTally(ctx context.Context, cert *model.EncryptedVoteTally) error {
	vp, err := a.store.VotePlan(ctx, cert.VotePlan)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Error("encrypted tally of unknown vote plan", zap.String("votePlan", string(cert.VotePlan)))
		return nil
	}
	if err != nil {
		return err
	}
	for i := range vp.Proposals {
		proposal := &vp.Proposals[i]
		proposal.Tally = &model.TallyStatus{
			Kind:    model.PayloadPrivate,
			Private: &model.TallyPrivate{Options: proposal.Options},
		}
	}
	return a.store.PutVotePlan(ctx, vp)
}
