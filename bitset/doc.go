// Package bitset provides a dense usize→bool membership structure used
// throughout flowstruct as the working set of node identifiers and as
// DFS/SCC scratch state.
//
// Set is the owned, growable form; Slice is a cheap, copyable borrowed
// view over a Set's backing storage (or over an arbitrary []bool). Both
// expose O(1) Contains and O(capacity) ordered iteration, ascending or
// descending; only Set offers Insert/Remove, as required by flowstruct's determinism
// guarantees (spec §3, "Working set").
//
// A Pool amortises repeated allocation of scratch Sets across the many
// small regions a bulk driver visits; it is a plain stack of cleared
// sets, not a synchronization primitive — see the package-level
// concurrency note on Pool.
package bitset
