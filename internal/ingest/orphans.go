package ingest

import "github.com/meridianledger/explorer-backend/internal/model"

// orphanBuffer holds blocks whose parent has not arrived yet, keyed by the
// missing parent id. It is bounded; when full, the oldest waiter is evicted
// and the at-least-once feed is relied on to redeliver it.
type orphanBuffer struct {
	max      int
	byParent map[model.BlockID][]*model.AppliedBlock
	order    []model.BlockID
	count    int
}

func newOrphanBuffer(max int) *orphanBuffer {
	return &orphanBuffer{
		max:      max,
		byParent: make(map[model.BlockID][]*model.AppliedBlock),
	}
}

func (o *orphanBuffer) add(ab *model.AppliedBlock) {
	for o.count >= o.max && o.count > 0 {
		o.evictOldest()
	}
	parent := ab.Block.ParentID
	for _, waiting := range o.byParent[parent] {
		if waiting.Block.ID == ab.Block.ID {
			return
		}
	}
	o.byParent[parent] = append(o.byParent[parent], ab)
	o.order = append(o.order, parent)
	o.count++
}

// take removes and returns the blocks waiting on the given parent.
func (o *orphanBuffer) take(parent model.BlockID) []*model.AppliedBlock {
	waiting := o.byParent[parent]
	if len(waiting) == 0 {
		return nil
	}
	delete(o.byParent, parent)
	o.count -= len(waiting)
	remaining := o.order[:0]
	for _, p := range o.order {
		if p != parent {
			remaining = append(remaining, p)
		}
	}
	o.order = remaining
	return waiting
}

func (o *orphanBuffer) len() int {
	return o.count
}

func (o *orphanBuffer) evictOldest() {
	if len(o.order) == 0 {
		return
	}
	parent := o.order[0]
	o.order = o.order[1:]
	waiting := o.byParent[parent]
	if len(waiting) == 0 {
		return
	}
	if len(waiting) == 1 {
		delete(o.byParent, parent)
	} else {
		o.byParent[parent] = waiting[1:]
	}
	o.count--
}
