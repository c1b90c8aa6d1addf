// Package scc detects strongly connected components of a restricted
// subgraph (spec §4.5) using Gabow's path-based algorithm: a single
// depth-first traversal maintaining a path stack and a strictly
// increasing boundary stack, with no separate reverse-graph pass.
//
// A component of size one is reported only if its sole node has a
// self-loop; the repeat pass treats every other singleton as already
// acyclic and skips it.
package scc
