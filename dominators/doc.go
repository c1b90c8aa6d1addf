// Package dominators computes immediate dominators over a restricted
// subgraph (spec §4.4), using the iterative Cooper-Harvey-Kennedy
// algorithm over a reverse post-order numbering.
//
// Finder answers Dominates queries with the two-finger intersection
// over the idom table, walking both indices up their idom chains, so a
// query's cost grows with the depth of the dominator tree. LateInsert
// extends the table for a single freshly synthesized node without
// rerunning the fixpoint over the whole set. No pass in this module
// calls LateInsert: the branch pass recomputes dominators with Run at
// the start of every Single.Run.
package dominators
