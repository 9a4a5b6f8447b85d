// Package store is the durable entity store: a Badger-backed mapping from
// identifiers to decoded block, transaction, pool, vote-plan and address
// records. Blocks and transactions are append-only; pool, vote-plan and
// address aggregate records are mutable.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/model"
)

// ErrNotFound is returned by id-based lookups that miss.
var ErrNotFound = errors.New("not found")

// Key prefixes, one byte per entity kind.
const (
	prefixBlock       = 'b'
	prefixTransaction = 't'
	prefixPool        = 'p'
	prefixVotePlan    = 'v'
	prefixAddress     = 'a'
	prefixRegistry    = 'r'
)

var (
	registryPools     = registryKey("pools")
	registryVotePlans = registryKey("voteplans")
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("store: cbor enc mode: " + err.Error())
	}
	encMode = em
}

// Config holds the store's open options.
type Config struct {
	// Path is the Badger data directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in memory; used in tests.
	InMemory bool
}

// Store wraps a Badger database with the entity access methods the index and
// resolver need. Reads run in read transactions and never block writers.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens or creates the store at cfg.Path.
func Open(cfg Config, logger *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}
	return &Store{db: db, logger: logger.Named("store")}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func entityKey(prefix byte, id string) []byte {
	key := make([]byte, 1+len(id))
	key[0] = prefix
	copy(key[1:], id)
	return key
}

func registryKey(name string) []byte {
	return entityKey(prefixRegistry, name)
}

// putImmutable writes a record that must never change once stored.
// Re-writing identical content is a no-op; differing content under the same
// key is an internal consistency fault.
func (s *Store) putImmutable(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			existing, copyErr := item.ValueCopy(nil)
			if copyErr != nil {
				return copyErr
			}
			if bytes.Equal(existing, value) {
				return nil
			}
			return fmt.Errorf("%w: immutable record %q rewritten with different content",
				model.ErrInternalConsistency, key)
		case errors.Is(err, badger.ErrKeyNotFound):
			return txn.Set(key, value)
		default:
			return err
		}
	})
}

func (s *Store) putMutable(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (s *Store) get(ctx context.Context, key []byte, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cbor.Unmarshal(val, out)
		})
	})
}

// PutBlock stores a block. Blocks are immutable; re-applying an
// already-stored block with identical content is a no-op.
func (s *Store) PutBlock(ctx context.Context, b *model.Block) error {
	value, err := encMode.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode block %s: %w", b.ID, err)
	}
	return s.putImmutable(ctx, entityKey(prefixBlock, string(b.ID)), value)
}

// Block looks up a block by id.
func (s *Store) Block(ctx context.Context, id model.BlockID) (*model.Block, error) {
	var b model.Block
	if err := s.get(ctx, entityKey(prefixBlock, string(id)), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// PutTransaction stores a transaction. The record is mutable only in its
// block-membership set, which grows when the same transaction appears on
// another live branch; callers re-put the merged record.
func (s *Store) PutTransaction(ctx context.Context, tx *model.Transaction) error {
	value, err := encMode.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.ID, err)
	}
	return s.putMutable(ctx, entityKey(prefixTransaction, string(tx.ID)), value)
}

// Transaction looks up a transaction by id.
func (s *Store) Transaction(ctx context.Context, id model.TransactionID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := s.get(ctx, entityKey(prefixTransaction, string(id)), &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// PutPool stores the aggregate state of a stake pool.
func (s *Store) PutPool(ctx context.Context, p *model.Pool) error {
	value, err := encMode.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pool %s: %w", p.ID, err)
	}
	return s.putMutable(ctx, entityKey(prefixPool, string(p.ID)), value)
}

// Pool looks up a stake pool by id.
func (s *Store) Pool(ctx context.Context, id model.PoolID) (*model.Pool, error) {
	var p model.Pool
	if err := s.get(ctx, entityKey(prefixPool, string(id)), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PutVotePlan stores the aggregate state of a vote plan.
func (s *Store) PutVotePlan(ctx context.Context, vp *model.VotePlan) error {
	value, err := encMode.Marshal(vp)
	if err != nil {
		return fmt.Errorf("encode vote plan %s: %w", vp.ID, err)
	}
	return s.putMutable(ctx, entityKey(prefixVotePlan, string(vp.ID)), value)
}

// VotePlan looks up a vote plan by id.
func (s *Store) VotePlan(ctx context.Context, id model.VotePlanID) (*model.VotePlan, error) {
	var vp model.VotePlan
	if err := s.get(ctx, entityKey(prefixVotePlan, string(id)), &vp); err != nil {
		return nil, err
	}
	return &vp, nil
}

// PutAddressState stores the mutable per-address record.
func (s *Store) PutAddressState(ctx context.Context, addr string, st *model.AddressState) error {
	value, err := encMode.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode address state %s: %w", addr, err)
	}
	return s.putMutable(ctx, entityKey(prefixAddress, addr), value)
}

// AddressState looks up the per-address record.
func (s *Store) AddressState(ctx context.Context, addr string) (*model.AddressState, error) {
	var st model.AddressState
	if err := s.get(ctx, entityKey(prefixAddress, addr), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// PoolIDs returns every registered pool id in registration order.
func (s *Store) PoolIDs(ctx context.Context) ([]model.PoolID, error) {
	var ids []model.PoolID
	err := s.get(ctx, registryPools, &ids)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return ids, err
}

// AppendPoolID records a pool id in the registration-order registry.
// Appending an already-present id is a no-op.
func (s *Store) AppendPoolID(ctx context.Context, id model.PoolID) error {
	return appendRegistry(ctx, s, registryPools, string(id))
}

// VotePlanIDs returns every vote plan id in announcement order.
func (s *Store) VotePlanIDs(ctx context.Context) ([]model.VotePlanID, error) {
	var ids []model.VotePlanID
	err := s.get(ctx, registryVotePlans, &ids)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return ids, err
}

// AppendVotePlanID records a vote plan id in the announcement-order registry.
func (s *Store) AppendVotePlanID(ctx context.Context, id model.VotePlanID) error {
	return appendRegistry(ctx, s, registryVotePlans, string(id))
}

func appendRegistry(ctx context.Context, s *Store, key []byte, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var ids []string
		item, err := txn.Get(key)
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				return cbor.Unmarshal(val, &ids)
			}); err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
		default:
			return err
		}
		for _, existing := range ids {
			if existing == id {
				return nil
			}
		}
		ids = append(ids, id)
		value, err := encMode.Marshal(ids)
		if err != nil {
			return err
		}
		return txn.Set(key, value)
	})
}
