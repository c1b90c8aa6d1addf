// Package branch normalises acyclic fork regions into a canonical
// single-entry/single-exit selection whose arms are disjoint and meet
// at one continuation (spec §4.8, §4.9).
//
// Single performs one head's rewrite; Bulk follows forks from a start
// node and drives Single to fixpoint over every branch it finds,
// re-enqueuing the arm and tail sub-regions each rewrite produces.
//
// Unlike the paper's reference classification by raw reachability and
// predecessor counting, arm membership here is decided with a real
// dominator computation (dominators.Finder) run fresh over the region
// at every Single.Run, per spec §4.8 steps 1-3: a successor of head is
// an arm start iff exactly one of its in-region predecessors is not
// dominated by it, and every other node belongs to the arm whose start
// dominates it. The orphan-assignment trim, continuation routing, arm
// funnel-merge, and empty-arm fill steps that follow are ported
// directly from the reachability-based original, since the
// specification only describes their intent, not their exact shape.
package branch
