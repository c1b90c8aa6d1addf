package cfgraph

// Predecessors is the read-only capability of returning, in insertion
// order, the ids of every node with an edge into id. Duplicates appear
// once per parallel edge.
type Predecessors interface {
	Predecessors(id int) []int
}

// Successors is the read-only capability of returning, in insertion
// order, the ids of every node id has an edge into. Duplicates appear
// once per parallel edge.
type Successors interface {
	Successors(id int) []int
}

// ReadView is the read-only capability set: traversal and the one
// predicate the core is allowed to ask of an original node's contents.
// The analysis packages (dfsearch, rposeq, dominators, scc) accept
// narrower traversal-only interfaces; repeat and branch use ReadView.
type ReadView interface {
	Predecessors
	Successors
	// HasAssignment reports whether id is an Assignment node carrying
	// the given flag.
	HasAssignment(id int, flag Flag) bool
}

// View is the full polymorphic object the repeat and branch passes
// require of a host (spec §6). It extends ReadView with the mutation
// primitives the passes use to synthesize structure.
type View interface {
	ReadView

	// AddNoOperation creates a fresh synthetic node with zero edges
	// and returns its id.
	AddNoOperation() int

	// AddSelection creates a fresh synthetic multi-way dispatch node
	// keyed on flag, with zero edges, and returns its id.
	AddSelection(flag Flag) int

	// AddAssignment creates a fresh synthetic node that writes value
	// into flag, with zero edges, and returns its id.
	AddAssignment(flag Flag, value int) int

	// AddEdge appends an edge from→to.
	AddEdge(from, to int)

	// ReplaceEdge removes exactly one occurrence of the from→to edge
	// and inserts one from→new edge in its place. It panics if no
	// from→to edge exists: per spec §7 this is a caller-contract
	// violation, not a recoverable condition.
	ReplaceEdge(from, to, new int)
}
