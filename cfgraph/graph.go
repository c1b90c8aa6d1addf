// File: graph.go
// Role: concrete, in-memory View implementation: node arena + ordered
// adjacency lists, keyed by dense integer id.
package cfgraph

import "fmt"

type node struct {
	kind  Kind
	flag  Flag // meaningful for Selection and Assignment
	value int  // meaningful for Assignment

	preds []int
	succs []int
}

// Graph is the reference, in-memory implementation of View. Hosts that
// already maintain their own CFG representation implement View
// themselves; Graph exists so that flowstruct's own tests, examples,
// and benchmarks have a concrete CFG to restructure, the way the
// teacher's core.Graph serves its own algorithm packages.
//
// Node identifiers are assigned densely, starting at 0, in creation
// order, and are never reused or renumbered.
type Graph struct {
	nodes []node
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{}
}

// AddOriginal creates a fresh Original node with zero edges and returns
// its id. Original nodes are opaque to the restructuring passes; the
// host (or, in tests, the caller) is the only party that creates them.
func (g *Graph) AddOriginal() int {
	return g.add(node{kind: Original})
}

// AddNoOperation implements View.
func (g *Graph) AddNoOperation() int {
	return g.add(node{kind: NoOp})
}

// AddSelection implements View.
func (g *Graph) AddSelection(flag Flag) int {
	return g.add(node{kind: Selection, flag: flag})
}

// AddAssignment implements View.
func (g *Graph) AddAssignment(flag Flag, value int) int {
	return g.add(node{kind: Assignment, flag: flag, value: value})
}

func (g *Graph) add(n node) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, n)

	return id
}

func (g *Graph) mustExist(id int) {
	if id < 0 || id >= len(g.nodes) {
		panic(fmt.Sprintf("cfgraph: node %d does not exist", id))
	}
}

// AddEdge implements View.
func (g *Graph) AddEdge(from, to int) {
	g.mustExist(from)
	g.mustExist(to)

	g.nodes[from].succs = append(g.nodes[from].succs, to)
	g.nodes[to].preds = append(g.nodes[to].preds, from)
}

// ReplaceEdge implements View.
func (g *Graph) ReplaceEdge(from, to, new int) {
	g.mustExist(from)
	g.mustExist(to)
	g.mustExist(new)

	if !removeOne(&g.nodes[from].succs, to) {
		panic(fmt.Sprintf("cfgraph: no edge %d->%d to replace", from, to))
	}
	if !removeOne(&g.nodes[to].preds, from) {
		panic(fmt.Sprintf("cfgraph: adjacency corrupt: %d->%d missing mirror", from, to))
	}

	g.nodes[from].succs = append(g.nodes[from].succs, new)
	g.nodes[new].preds = append(g.nodes[new].preds, from)
}

// removeOne deletes the first occurrence of v from *s, preserving the
// relative order of the remaining elements, and reports whether it
// found one.
func removeOne(s *[]int, v int) bool {
	for i, x := range *s {
		if x == v {
			*s = append((*s)[:i], (*s)[i+1:]...)

			return true
		}
	}

	return false
}

// Predecessors implements View. The returned slice aliases internal
// storage and must be treated as read-only; it is invalidated by any
// subsequent mutating call on g.
func (g *Graph) Predecessors(id int) []int {
	g.mustExist(id)

	return g.nodes[id].preds
}

// Successors implements View. The returned slice aliases internal
// storage and must be treated as read-only; it is invalidated by any
// subsequent mutating call on g.
func (g *Graph) Successors(id int) []int {
	g.mustExist(id)

	return g.nodes[id].succs
}

// HasAssignment implements View.
func (g *Graph) HasAssignment(id int, flag Flag) bool {
	g.mustExist(id)
	n := g.nodes[id]

	return n.kind == Assignment && n.flag == flag
}

// Kind reports the Kind of node id.
func (g *Graph) Kind(id int) Kind {
	g.mustExist(id)

	return g.nodes[id].kind
}

// Assignment reports the flag and value of an Assignment node. It
// panics if id is not an Assignment node.
func (g *Graph) Assignment(id int) (Flag, int) {
	g.mustExist(id)
	n := g.nodes[id]
	if n.kind != Assignment {
		panic(fmt.Sprintf("cfgraph: node %d is not an Assignment", id))
	}

	return n.flag, n.value
}

// Selection reports the flag of a Selection node. It panics if id is
// not a Selection node.
func (g *Graph) Selection(id int) Flag {
	g.mustExist(id)
	n := g.nodes[id]
	if n.kind != Selection {
		panic(fmt.Sprintf("cfgraph: node %d is not a Selection", id))
	}

	return n.flag
}

// NodeCount returns the number of nodes ever created, including those
// that might since have become unreachable.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}
