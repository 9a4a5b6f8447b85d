// Package chain maintains the multi-branch view of the ledger: the
// parent-linked block index, the live set of branch tips, main-branch
// selection and confirmation depth.
package chain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/model"
)

var (
	// ErrOrphanBlock means the block's parent is not indexed yet. The
	// ingestion driver buffers the block and retries once the parent
	// arrives; it is never surfaced to query consumers.
	ErrOrphanBlock = errors.New("orphan block")
	// ErrUnknownBlock means the id is not in the index.
	ErrUnknownBlock = errors.New("block not indexed")
	// ErrUnknownBranch means the branch id is not live.
	ErrUnknownBranch = errors.New("branch not live")
)

// BlockMeta is the index's view of one block.
type BlockMeta struct {
	ID          model.BlockID
	ParentID    model.BlockID
	ChainLength model.ChainLength
	Date        model.BlockDate
	Score       uint64
	Confirmed   bool
}

// Branch is a live chain tip and its lineage.
type Branch struct {
	ID     string            `json:"id"`
	Tip    model.BlockID     `json:"tip"`
	Length model.ChainLength `json:"length"`
	Score  uint64            `json:"score"`
}

type entry struct {
	parent    model.BlockID
	length    model.ChainLength
	date      model.BlockDate
	score     uint64
	confirmed bool
}

// Index is the block DAG index and branch tracker. Ingestion is serialized
// by a short-held lock around tip-set mutation; reads take the shared lock
// and never wait on anything slower than that.
type Index struct {
	mu             sync.RWMutex
	logger         *zap.Logger
	stabilityDepth uint32
	retentionDepth uint32

	entries  map[model.BlockID]*entry
	byLength map[model.ChainLength][]model.BlockID

	branches   map[string]*Branch
	mainID     string
	nextBranch uint64

	// confirmedUpTo is the highest chain length whose main-lineage block is
	// confirmed; confirmation only ever moves forward.
	confirmedUpTo model.ChainLength
	hasConfirmed  bool

	broadcaster *TipBroadcaster
}

// NewIndex builds an empty index. stabilityDepth is the configured epoch
// stability depth; retired branches are dropped from the live set once they
// lag the main tip by more than that same depth.
func NewIndex(stabilityDepth uint32, logger *zap.Logger) *Index {
	return &Index{
		logger:         logger.Named("chain"),
		stabilityDepth: stabilityDepth,
		retentionDepth: stabilityDepth,
		entries:        make(map[model.BlockID]*entry),
		byLength:       make(map[model.ChainLength][]model.BlockID),
		branches:       make(map[string]*Branch),
		broadcaster:    NewTipBroadcaster(),
	}
}

// Broadcaster exposes the tip fanout for subscriptions.
func (ix *Index) Broadcaster() *TipBroadcaster {
	return ix.broadcaster
}

// Ingest links the block to its parent, derives its chain length, updates
// the tip set and recomputes main-branch selection and confirmation.
// Re-ingesting an already-indexed block is a no-op. Returns ErrOrphanBlock
// when the parent is absent.
func (ix *Index) Ingest(b *model.Block, score uint64) error {
	ix.mu.Lock()

	if existing, ok := ix.entries[b.ID]; ok {
		defer ix.mu.Unlock()
		if existing.parent != b.ParentID {
			return fmt.Errorf("%w: block %s re-ingested with different parent", model.ErrInternalConsistency, b.ID)
		}
		return nil
	}

	var length model.ChainLength
	if !b.IsGenesis() {
		parent, ok := ix.entries[b.ParentID]
		if !ok {
			ix.mu.Unlock()
			return fmt.Errorf("%w: %s waiting for parent %s", ErrOrphanBlock, b.ID, b.ParentID)
		}
		length = parent.length + 1
	}
	if b.ChainLength != length {
		ix.mu.Unlock()
		return fmt.Errorf("%w: block %s declares chain length %d, derived %d",
			model.ErrInternalConsistency, b.ID, b.ChainLength, length)
	}

	ix.entries[b.ID] = &entry{
		parent: b.ParentID,
		length: length,
		date:   b.Date,
		score:  score,
	}
	ix.byLength[length] = append(ix.byLength[length], b.ID)

	// The main tip block may change either because the incumbent branch
	// extended or because selection moved to another branch; both are
	// publish-worthy.
	var prevTip model.BlockID
	if main, ok := ix.branches[ix.mainID]; ok {
		prevTip = main.Tip
	}

	ix.advanceTip(b.ID, b.ParentID, length, score)
	ix.selectMain()
	ix.retireLagging()
	ix.recomputeConfirmation()

	var publish bool
	var main Branch
	if m, ok := ix.branches[ix.mainID]; ok && m.Tip != prevTip {
		publish = true
		main = *m
	}

	ix.mu.Unlock()

	if publish {
		ix.broadcaster.Publish(main)
	}
	return nil
}

// advanceTip extends the branch whose tip is the parent, or mints a new
// branch when the block forks off a non-tip ancestor (or is genesis).
func (ix *Index) advanceTip(id, parent model.BlockID, length model.ChainLength, score uint64) {
	for _, br := range ix.branches {
		if br.Tip == parent {
			br.Tip = id
			br.Length = length
			br.Score = score
			return
		}
	}
	branchID := strconv.FormatUint(ix.nextBranch, 16)
	ix.nextBranch++
	ix.branches[branchID] = &Branch{ID: branchID, Tip: id, Length: length, Score: score}
}

// selectMain picks the live branch with the greatest (length, score) pair.
// An equal comparison keeps the incumbent, so main identity is stable under
// score oscillation.
func (ix *Index) selectMain() {
	best := ix.branches[ix.mainID]
	for _, id := range ix.sortedBranchIDs() {
		br := ix.branches[id]
		if best == nil || br.Length > best.Length ||
			(br.Length == best.Length && br.Score > best.Score) {
			best = br
		}
	}
	if best != nil {
		ix.mainID = best.ID
	}
}

func (ix *Index) sortedBranchIDs() []string {
	ids := make([]string, 0, len(ix.branches))
	for id := range ix.branches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// retireLagging drops branches that fell behind the main tip by more than
// the retention window. Their blocks stay in the index and remain queryable
// by id.
func (ix *Index) retireLagging() {
	main := ix.branches[ix.mainID]
	if main == nil {
		return
	}
	for id, br := range ix.branches {
		if id == ix.mainID {
			continue
		}
		if main.Length > br.Length &&
			uint64(main.Length-br.Length) > uint64(ix.retentionDepth) {
			ix.logger.Info("retiring branch",
				zap.String("branch", id),
				zap.String("tip", string(br.Tip)),
				zap.Uint64("length", uint64(br.Length)))
			delete(ix.branches, id)
		}
	}
}

// recomputeConfirmation marks blocks confirmed once every live branch's
// lineage passes through them and the shortest live tip is at least
// stabilityDepth blocks past them. The flag only ever transitions
// false to true.
func (ix *Index) recomputeConfirmation() {
	if len(ix.branches) == 0 {
		return
	}
	minTip := model.ChainLength(0)
	first := true
	tips := make([]model.BlockID, 0, len(ix.branches))
	for _, br := range ix.branches {
		tips = append(tips, br.Tip)
		if first || br.Length < minTip {
			minTip = br.Length
			first = false
		}
	}
	if uint64(minTip) < uint64(ix.stabilityDepth) {
		return
	}
	limit := minTip - model.ChainLength(ix.stabilityDepth)

	start := model.ChainLength(0)
	if ix.hasConfirmed {
		start = ix.confirmedUpTo + 1
	}
	for length := start; length <= limit; length++ {
		id, ok := ix.commonAncestorAt(tips, length)
		if !ok {
			// Live branches diverge at this depth; nothing above it can be
			// confirmed yet.
			return
		}
		ix.entries[id].confirmed = true
		ix.confirmedUpTo = length
		ix.hasConfirmed = true
	}
}

// commonAncestorAt returns the single block at the given chain length shared
// by every tip's lineage, if there is one.
func (ix *Index) commonAncestorAt(tips []model.BlockID, length model.ChainLength) (model.BlockID, bool) {
	var common model.BlockID
	for i, tip := range tips {
		id, ok := ix.ancestorAt(tip, length)
		if !ok {
			return "", false
		}
		if i == 0 {
			common = id
			continue
		}
		if id != common {
			return "", false
		}
	}
	return common, true
}

func (ix *Index) ancestorAt(id model.BlockID, length model.ChainLength) (model.BlockID, bool) {
	cur := id
	for {
		e, ok := ix.entries[cur]
		if !ok {
			return "", false
		}
		if e.length == length {
			return cur, true
		}
		if e.length < length || cur == "" {
			return "", false
		}
		cur = e.parent
	}
}

// HasBlock reports whether the id is indexed.
func (ix *Index) HasBlock(id model.BlockID) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	_, ok := ix.entries[id]
	return ok
}

// Meta returns the index's view of a block.
func (ix *Index) Meta(id model.BlockID) (BlockMeta, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	e, ok := ix.entries[id]
	if !ok {
		return BlockMeta{}, fmt.Errorf("%w: %s", ErrUnknownBlock, id)
	}
	return BlockMeta{
		ID:          id,
		ParentID:    e.parent,
		ChainLength: e.length,
		Date:        e.date,
		Score:       e.score,
		Confirmed:   e.confirmed,
	}, nil
}

// IsConfirmed reports the block's confirmation flag. Unknown blocks are
// unconfirmed.
func (ix *Index) IsConfirmed(id model.BlockID) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	e, ok := ix.entries[id]
	return ok && e.confirmed
}

// BlocksAtChainLength returns every indexed block at the given length, one
// per branch that reaches it.
func (ix *Index) BlocksAtChainLength(length model.ChainLength) []model.BlockID {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids := ix.byLength[length]
	out := make([]model.BlockID, len(ids))
	copy(out, ids)
	return out
}

// Branches returns the live branches, main branch first, the rest ordered
// by descending (length, score).
func (ix *Index) Branches() []Branch {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]Branch, 0, len(ix.branches))
	for _, id := range ix.sortedBranchIDs() {
		if id == ix.mainID {
			continue
		}
		out = append(out, *ix.branches[id])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Length != out[j].Length {
			return out[i].Length > out[j].Length
		}
		return out[i].Score > out[j].Score
	})
	if main, ok := ix.branches[ix.mainID]; ok {
		out = append([]Branch{*main}, out...)
	}
	return out
}

// Branch returns a live branch by id. Retired branches are not reported,
// though their blocks remain queryable directly.
func (ix *Index) Branch(id string) (Branch, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	br, ok := ix.branches[id]
	if !ok {
		return Branch{}, fmt.Errorf("%w: %s", ErrUnknownBranch, id)
	}
	return *br, nil
}

// Tip returns the current main branch.
func (ix *Index) Tip() (Branch, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	br, ok := ix.branches[ix.mainID]
	if !ok {
		return Branch{}, false
	}
	return *br, true
}

// MainBlocksInEpoch returns the main-branch blocks of the epoch in
// ascending chain-length order.
func (ix *Index) MainBlocksInEpoch(epoch uint32) []model.BlockID {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	main, ok := ix.branches[ix.mainID]
	if !ok {
		return nil
	}
	var out []model.BlockID
	cur := main.Tip
	for {
		e, ok := ix.entries[cur]
		if !ok {
			break
		}
		if e.date.Epoch < epoch {
			break
		}
		if e.date.Epoch == epoch {
			out = append(out, cur)
		}
		if e.parent == "" {
			break
		}
		cur = e.parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
