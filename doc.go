// Package flowstruct restructures arbitrary control-flow graphs into
// semantically equivalent graphs whose control flow is expressible with
// only structured constructs: nested single-entry/single-exit branches
// and single-entry/single-exit loops.
//
// The approach follows Reissmann, Falch, Bjørnseth, Bahmann, Meyer and
// Jahre, "Efficient Control Flow Restructuring for GPUs". Two passes run
// in sequence over a host-owned control-flow graph:
//
//   - repeat  normalises every non-trivial strongly connected region into
//     a canonical loop with a single entry, a single exit, and at most
//     one latch.
//   - branch  normalises every multi-way fork in the now-acyclic region
//     into a canonical selection whose arms are disjoint single-entry/
//     single-exit regions meeting at one continuation.
//
// Both passes mutate the graph in place by inserting a small number of
// synthetic no-operation, selection, and assignment nodes; they never
// delete or renumber an existing node. Neither pass performs semantic
// analysis, optimization, or code generation — correctness of structure
// is the only guarantee.
//
// Subpackages, leaves first:
//
//	bitset/     — dense usize-like working-set membership with ordered iteration
//	cfgraph/    — the CFG view contract (View) and a concrete in-memory Graph
//	dfsearch/   — iterative depth-first traversal restricted to a subset, with pre/post hooks
//	rposeq/     — reverse post-order numbering built on dfsearch
//	dominators/ — iterative Cooper-Harvey-Kennedy dominators over an rposeq.Sequence
//	scc/        — path-based (Gabow) strongly-connected-component enumeration
//	repeat/     — the repeat pass: Single (one loop) and Bulk (fixpoint driver)
//	branch/     — the branch pass: Single (one fork) and Bulk (fixpoint driver)
//
// Restructure is a convenience wrapper running both passes in the order
// the algorithm requires: repeat first, since the branch pass assumes an
// acyclic region, then branch.
package flowstruct
