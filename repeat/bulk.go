package repeat

import (
	"github.com/katalvlaran/flowstruct/bitset"
	"github.com/katalvlaran/flowstruct/cfgraph"
	"github.com/katalvlaran/flowstruct/scc"
)

// Bulk finds every non-trivial strongly connected component in a
// working set and drives Single to fixpoint, extending the caller's
// set with whatever synthetic nodes each rewrite introduces (spec
// §4.7).
//
// Bulk owns its own Single, SCC finder, and scratch set pool; none of
// them are shared with other Bulk instances. Bulk is not safe for
// concurrent use (spec §5).
type Bulk struct {
	found []*bitset.Set
	pool  *bitset.Pool

	single *Single
	scc    *scc.Finder

	scratchIDs []int
}

// NewBulk returns an empty Bulk driver.
func NewBulk() *Bulk {
	return &Bulk{
		pool:   bitset.NewPool(),
		single: New(),
		scc:    scc.New(),
	}
}

func (b *Bulk) findStronglyConnected(view cfgraph.ReadView, set bitset.Slice) {
	b.scratchIDs = set.Ascending(b.scratchIDs[:0])

	b.scc.Run(view, b.scratchIDs, func(component []int) {
		found := b.pool.Get()
		found.Extend(component)

		b.found = append(b.found, found)
	})
}

// Run restructures every loop reachable within set into canonical
// form, extending set with the synthetic nodes introduced along the
// way.
//
// Termination: each Single call strictly reduces the number of back
// edges in the component it is given; any cycle left in a component
// after removing its new start was already a proper sub-component
// (spec §4.7).
func (b *Bulk) Run(view cfgraph.View, set *bitset.Set) {
	b.findStronglyConnected(view, set.AsSlice())

	for len(b.found) > 0 {
		child := b.found[len(b.found)-1]
		b.found = b.found[:len(b.found)-1]

		start := b.single.Run(view, child.AsSlice())
		child.Remove(start)

		b.findStronglyConnected(view, child.AsSlice())

		set.Extend(b.single.Additional())

		b.pool.Put(child)
	}
}
