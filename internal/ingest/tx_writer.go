package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/model"
	"github.com/meridianledger/explorer-backend/pkg/batcher"
	"github.com/meridianledger/explorer-backend/pkg/workerpool"
)

const (
	txBatcherCapacity      = 256
	txBatcherFlushInterval = time.Second
	txBatcherFlushesPerSec = 50
	txPersistWorkers       = 4
)

// txWriter coalesces transaction writes. The applier flushes it before
// linking a block into the index, so a query that observes the block also
// observes its transactions.
type txWriter struct {
	store     EntityStore
	logger    *zap.Logger
	txBatcher *batcher.Batcher[*model.Transaction]
}

func newTxWriter(store EntityStore, logger *zap.Logger) *txWriter {
	w := &txWriter{
		store:  store,
		logger: logger,
	}
	w.txBatcher = batcher.New[*model.Transaction](
		logger.Named("txBatcher"),
		w.flush,
		txBatcherCapacity,
		txBatcherFlushInterval,
		txBatcherFlushesPerSec,
	)
	return w
}

func (w *txWriter) Start(ctx context.Context) {
	w.txBatcher.Start(ctx)
}

func (w *txWriter) Stop() {
	w.txBatcher.Stop()
}

func (w *txWriter) Write(ctx context.Context, tx *model.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.txBatcher.Add(ctx, tx)
}

func (w *txWriter) Flush(ctx context.Context) error {
	return w.txBatcher.Flush(ctx)
}

func (w *txWriter) flush(ctx context.Context, txs []*model.Transaction) error {
	return workerpool.Process(ctx, txPersistWorkers, txs,
		func(ctx context.Context, tx *model.Transaction) error {
			return w.store.PutTransaction(ctx, tx)
		}, nil)
}
