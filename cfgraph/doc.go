// Package cfgraph defines the polymorphic control-flow-graph contract
// that the repeat and branch passes restructure (spec §6, "The CFG
// view"), and a concrete, in-memory implementation of it.
//
// Graph is a directed multigraph over dense, never-reused, never-deleted
// integer node identifiers. Every node carries a Kind: Original nodes are
// opaque to flowstruct and created by the host; NoOperation, Selection,
// and Assignment nodes are synthetic and created only by the
// restructuring passes themselves, via AddNoOperation, AddSelection, and
// AddAssignment.
//
// Three reserved synthetic flags — FlagA, FlagB, FlagC — are written by
// Assignment nodes and read back through HasAssignment, the core's sole
// predicate over original node contents:
//
//	FlagA — selects which tail a branch arm leaves through (branch pass)
//	FlagB — selects loop continue vs. break (repeat pass)
//	FlagC — selects which loop entry/exit is active (repeat pass)
//
// Graph is not safe for concurrent use: flowstruct's passes are
// single-threaded and synchronous (spec §5), and a Graph must not be
// shared across goroutines.
package cfgraph
