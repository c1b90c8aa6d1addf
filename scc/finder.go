package scc

import "github.com/katalvlaran/flowstruct/dfsearch"

const unset = -1

// View is the read-only capability Run requires of its host graph.
type View = dfsearch.Successors

// Finder locates strongly connected components via Gabow's path-based
// algorithm, reusing a single dfsearch.Searcher and two scratch stacks
// across calls to Run.
//
// Finder is not safe for concurrent use (spec §5).
type Finder struct {
	searcher *dfsearch.Searcher

	names []int // node id -> position in path, unset once off the path
	path  []int // the depth-first path under construction
	stack []int // boundary stack of path positions, strictly increasing
}

// New returns an empty Finder.
func New() *Finder {
	return &Finder{searcher: dfsearch.New()}
}

func (f *Finder) fillNames() {
	last := f.searcher.Nodes().Maximum()

	if cap(f.names) < last {
		f.names = make([]int, last)
	} else {
		f.names = f.names[:last]
	}
	for i := range f.names {
		f.names[i] = unset
	}
}

func (f *Finder) onPreOrder(view View, id int) {
	index := len(f.path)
	f.names[id] = index
	f.path = append(f.path, id)
	f.stack = append(f.stack, index)

	for _, succ := range view.Successors(id) {
		if succ < 0 || succ >= len(f.names) {
			continue
		}

		name := f.names[succ]
		if name == unset {
			continue
		}

		for len(f.stack) > 0 && f.stack[len(f.stack)-1] > name {
			f.stack = f.stack[:len(f.stack)-1]
		}
	}
}

// onPostOrder returns the path index a finished component starts at,
// and whether id actually closed one: id closes a component exactly
// when it is still the boundary stack's top candidate root.
func (f *Finder) onPostOrder(id int) (int, bool) {
	index := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]

	if f.names[id] != index {
		f.stack = append(f.stack, index)

		return 0, false
	}

	for _, pathID := range f.path[index:] {
		f.names[pathID] = unset
	}

	return index, true
}

// Run finds every strongly connected component of the subgraph induced
// by ids, invoking handler once per component larger than a single
// node, or a single node with a self-loop. Trivial singletons (no
// self-loop) are not reported.
//
// The slice passed to handler aliases Finder's internal path buffer:
// it is valid only for the duration of that call and must not be
// retained or mutated.
//
// Complexity: O(|ids| + edges touched).
func (f *Finder) Run(view View, ids []int, handler func(component []int)) {
	f.searcher.NodesMut().Clear()
	f.searcher.NodesMut().Extend(ids)
	f.fillNames()
	f.path = f.path[:0]
	f.stack = f.stack[:0]

	for _, id := range ids {
		f.searcher.Run(view, id, func(node int, isPost bool) {
			if !isPost {
				f.onPreOrder(view, node)

				return
			}

			index, closed := f.onPostOrder(node)
			if !closed {
				return
			}

			component := f.path[index:]
			if !isTrivial(view, component) {
				handler(component)
			}
			f.path = f.path[:index]
		})
	}
}

func isTrivial(view View, component []int) bool {
	if len(component) != 1 {
		return false
	}

	id := component[0]
	for _, succ := range view.Successors(id) {
		if succ == id {
			return false
		}
	}

	return true
}
