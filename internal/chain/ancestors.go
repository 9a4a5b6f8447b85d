package chain

import "github.com/meridianledger/explorer-backend/internal/model"

// AncestorIterator walks a block's parent links back to genesis. It is lazy
// (each step is one index lookup), finite and restartable.
type AncestorIterator struct {
	ix    *Index
	start model.BlockID
	cur   model.BlockID
	done  bool
}

// AncestorChain returns an iterator over the block itself and its ancestors,
// ending at genesis. The iterator reports nothing for an unknown id.
func (ix *Index) AncestorChain(id model.BlockID) *AncestorIterator {
	return &AncestorIterator{ix: ix, start: id, cur: id}
}

// Next returns the next block in the chain, or false when the walk is past
// genesis or the id is unknown.
func (it *AncestorIterator) Next() (BlockMeta, bool) {
	if it.done {
		return BlockMeta{}, false
	}
	meta, err := it.ix.Meta(it.cur)
	if err != nil {
		it.done = true
		return BlockMeta{}, false
	}
	if meta.ParentID == "" {
		it.done = true
	} else {
		it.cur = meta.ParentID
	}
	return meta, true
}

// Restart rewinds the iterator to its starting block.
func (it *AncestorIterator) Restart() {
	it.cur = it.start
	it.done = false
}
