// Package dfsearch implements an iterative depth-first traversal
// restricted to a caller-supplied subset of node identifiers, with
// pre-order and post-order callbacks (spec §4.2).
//
// Searcher is the traversal primitive every higher-level pass in
// flowstruct builds on: rposeq numbers nodes by post-order finish time
// (and dominators builds on rposeq), and scc collapses it into Gabow's
// path-based algorithm. repeat and branch reach it only through those
// packages.
//
// The traversal is deliberately iterative (an explicit stack of
// in-progress visits), not recursive: control-flow graphs arising from
// real programs can be arbitrarily deep, and a recursive walker would
// blow the Go stack on a long chain.
package dfsearch
