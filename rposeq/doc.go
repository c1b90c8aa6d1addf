// Package rposeq numbers a restricted subgraph in reverse post-order
// (spec §4.3), the numbering the dominator finder requires: index 0 is
// always the start node, and every node's immediate dominator has a
// strictly smaller index.
//
// Sequence wraps a dfsearch.Searcher, so the numbering is deterministic
// whenever the underlying view's Successors are returned in a
// deterministic order — which flowstruct requires throughout (spec §9,
// "Determinism").
package rposeq
