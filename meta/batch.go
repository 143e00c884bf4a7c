package meta

import (
	"fmt"

	"birch/cst"
)

// batchObserver fans one traversal out to a group of callback sets. Enter
// hooks fire in supply order, Leave hooks in reverse, nesting the providers
// like scopes. The first error stops dispatch; the walk itself still
// unwinds but no further callbacks run.
type batchObserver struct {
	callbacks []Callbacks
	err       error
}

func (b *batchObserver) OnVisit(id cst.NodeID) bool {
	if b.err != nil {
		return false
	}
	for _, cb := range b.callbacks {
		if cb.Enter == nil {
			continue
		}
		if err := cb.Enter(id); err != nil {
			b.err = err
			return false
		}
	}
	return true
}

func (b *batchObserver) OnLeave(id cst.NodeID) {
	if b.err != nil {
		return
	}
	for i := len(b.callbacks) - 1; i >= 0; i-- {
		leave := b.callbacks[i].Leave
		if leave == nil {
			continue
		}
		if err := leave(id); err != nil {
			b.err = err
			return
		}
	}
}

// RunBatch computes the listed batchable providers over one tree without
// keeping a wrapper around. Declared dependencies resolve first as usual;
// providers with no dependency relation share a single traversal.
func RunBatch(tree *cst.Tree, ps ...*Provider) (map[*Provider]Map, error) {
	for _, p := range ps {
		if p != nil && p.Batch == nil {
			return nil, fmt.Errorf("meta: provider %q is not batchable", p.Name)
		}
	}
	return NewWrapper(tree).ResolveAll(ps...)
}
