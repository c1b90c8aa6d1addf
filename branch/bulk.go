package branch

import (
	"github.com/katalvlaran/flowstruct/bitset"
	"github.com/katalvlaran/flowstruct/cfgraph"
)

// region pairs a queued subregion with the start node Single should
// run it with.
type region struct {
	set   *bitset.Set
	start int
}

// Bulk finds every fork reachable from a start node and drives Single
// to fixpoint over each one, re-enqueuing the arm and tail sub-regions
// each rewrite produces (spec §4.9).
//
// Bulk owns the one scratch set pool it shares with its Single, so a
// Set handed from Single back to Bulk (via TakeBranches, TakeTail)
// and one Bulk allocates itself come from the same stack.
//
// Bulk is not safe for concurrent use (spec §5).
type Bulk struct {
	found []region
	pool  *bitset.Pool

	single *Single
}

// NewBulk returns an empty Bulk driver.
func NewBulk() *Bulk {
	return &Bulk{
		pool:   bitset.NewPool(),
		single: New(),
	}
}

// findNextBranch advances start along the unique in-set successor
// while exactly one remains (self-loops and nodes already walked over
// are removed from set as it goes, so they never count), and reports
// whether more than the final node is left to restructure.
func findNextBranch(view cfgraph.Successors, start *int, set *bitset.Set) bool {
	for {
		set.Remove(*start)

		next, count := 0, 0
		for _, succ := range view.Successors(*start) {
			if !set.Contains(succ) {
				continue
			}
			if count == 0 {
				next = succ
			}
			count++
			if count > 1 {
				break
			}
		}

		if count != 1 {
			break
		}
		*start = next
	}

	return !set.IsEmpty()
}

func (b *Bulk) queueIfBranch(view cfgraph.Successors, start int, set *bitset.Set) {
	if findNextBranch(view, &start, set) {
		// findNextBranch removed the fork head; Single needs it in the region.
		set.Insert(start)
		b.found = append(b.found, region{set: set, start: start})
	} else {
		b.pool.Put(set)
	}
}

func (b *Bulk) runSingle(view cfgraph.View, head int, set bitset.Slice) {
	last := b.single.Run(view, head, set, b.pool)

	tail := b.single.TakeTail(b.pool)
	b.queueIfBranch(view, last, tail)

	for _, arm := range b.single.TakeBranches() {
		b.queueIfBranch(view, arm.Start, arm.Set)
	}
}

// Run restructures every fork reachable from start within set into
// canonical branches, extending set with the synthetic nodes
// introduced along the way.
//
// Termination: each Single call strictly reduces the number of
// out-edges remaining at its head with unresolved destinations; the
// sub-regions it produces each have strictly fewer fork points than
// their parent (spec §4.9).
func (b *Bulk) Run(view cfgraph.View, set *bitset.Set, start int) {
	original := b.pool.Get()
	original.CloneFrom(set)

	b.queueIfBranch(view, start, original)

	for len(b.found) > 0 {
		entry := b.found[len(b.found)-1]
		b.found = b.found[:len(b.found)-1]

		b.runSingle(view, entry.start, entry.set.AsSlice())

		set.Extend(b.single.Additional())

		b.pool.Put(entry.set)
	}
}
