package flowstruct

import (
	"github.com/katalvlaran/flowstruct/bitset"
	"github.com/katalvlaran/flowstruct/branch"
	"github.com/katalvlaran/flowstruct/cfgraph"
	"github.com/katalvlaran/flowstruct/repeat"
)

// Restructure rewrites the region induced by set, rooted at start, into
// a fully structured CFG: the repeat pass runs first, canonicalising
// every strongly connected region into a single-entry/single-exit loop,
// then the branch pass runs over the now-acyclic result, canonicalising
// every multi-way fork into a single-entry/single-exit selection
// (spec §2 "Data flow").
//
// set is extended in place with every synthetic node either pass
// introduces; view is mutated in place. Restructure allocates a fresh
// Bulk driver for each pass, so it is safe to call repeatedly with
// different graphs, but a caller restructuring many regions of the same
// graph should drive repeat.Bulk and branch.Bulk directly to reuse
// their scratch pools across calls.
func Restructure(view cfgraph.View, set *bitset.Set, start int) {
	repeat.NewBulk().Run(view, set)
	branch.NewBulk().Run(view, set, start)
}
