// Package repeat normalises strongly connected regions into canonical
// single-entry/single-exit loops with at most one latch (spec §4.6,
// §4.7).
//
// Single performs one region's rewrite; Bulk finds every non-trivial
// component in a working set and drives Single to fixpoint, extending
// the set with whatever synthetic nodes each rewrite introduces.
package repeat
