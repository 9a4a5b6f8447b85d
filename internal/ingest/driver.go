package ingest

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/chain"
	"github.com/meridianledger/explorer-backend/internal/clock"
	"github.com/meridianledger/explorer-backend/internal/model"
)

const (
	defaultBackoff          = 2 * time.Second
	defaultOrphanBufferSize = 1024
)

// Driver runs the ingestion loop: it pulls applied blocks from the source,
// applies them, and buffers out-of-order blocks until their parent arrives.
type Driver struct {
	logger  *zap.Logger
	source  Source
	applier BlockApplier
	metrics Metrics
	sleep   func(context.Context, time.Duration) error
	backoff time.Duration
	orphans *orphanBuffer
}

// NewDriver builds a Driver with dependencies.
func NewDriver(source Source, applier BlockApplier, metrics Metrics, logger *zap.Logger) (*Driver, error) {
	if source == nil {
		return nil, errors.New("ingest source is required")
	}
	if applier == nil {
		return nil, errors.New("ingest applier is required")
	}
	if metrics == nil {
		return nil, errors.New("ingest metrics is required")
	}
	return &Driver{
		logger:  logger.Named("ingest"),
		source:  source,
		applier: applier,
		metrics: metrics,
		sleep:   clock.SleepWithContext,
		backoff: defaultBackoff,
		orphans: newOrphanBuffer(defaultOrphanBufferSize),
	}, nil
}

// Run pulls and applies blocks until the context is canceled.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Warn("ingest iteration failed, backing off",
				zap.Error(err), zap.Duration("sleep", d.backoff))
			if sleepErr := d.sleep(ctx, d.backoff); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (d *Driver) run(ctx context.Context) error {
	started := time.Now()
	ab, err := d.source.Next(ctx)
	d.metrics.ObserveFetch(err, started)
	if err != nil {
		return err
	}
	return d.apply(ctx, ab)
}

// apply applies the block and then drains every buffered orphan the new
// block unblocks, transitively.
func (d *Driver) apply(ctx context.Context, ab *model.AppliedBlock) error {
	pending := []*model.AppliedBlock{ab}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]

		started := time.Now()
		err := d.applier.Apply(ctx, next)
		d.metrics.ObserveApply(err, started)
		switch {
		case err == nil:
			pending = append(pending, d.orphans.take(next.Block.ID)...)
		case errors.Is(err, chain.ErrOrphanBlock):
			d.logger.Debug("buffering orphan block",
				zap.String("block", string(next.Block.ID)),
				zap.String("parent", string(next.Block.ParentID)))
			d.orphans.add(next)
		default:
			return err
		}
	}
	d.metrics.SetOrphans(d.orphans.len())
	return nil
}
