package dfsearch

import "github.com/katalvlaran/flowstruct/bitset"

// visit records one node's position on the explicit DFS stack: its id,
// and the [start, end) slice of successors still left to explore
// within the shared successors buffer.
type visit struct {
	id         int
	start, end int
}

// Searcher performs a depth-first traversal over a view restricted to
// a subset of node ids. A Searcher instance is reusable across many
// calls to Run: each call consumes whatever subset was last installed
// via Nodes/NodesMut.
//
// Searcher is not safe for concurrent use or for reentrant calls to Run
// on the same instance (spec §5).
type Searcher struct {
	remaining *bitset.Set // nodes not yet visited; shrinks as Run proceeds
	visits    []visit     // explicit recursion stack

	successors []int // flattened successor scratch buffer referenced by visit ranges
}

// New returns a Searcher with an empty restriction set. Call
// NodesMut().CloneFromSlice(...) (or Extend) before Run to restrict the
// traversal to a subset.
func New() *Searcher {
	return &Searcher{remaining: bitset.New()}
}

// Nodes returns the set of ids not yet visited by the most recent Run.
func (s *Searcher) Nodes() *bitset.Set {
	return s.remaining
}

// NodesMut returns the mutable restriction set for the caller to
// install the subset that the next Run should be limited to.
func (s *Searcher) NodesMut() *bitset.Set {
	return s.remaining
}

// Successors is the read-only capability Run requires of its view.
type Successors interface {
	Successors(id int) []int
}

func (s *Searcher) queueVisit(view Successors, id int, handler func(id int, isPost bool)) {
	if !s.remaining.Remove(id) {
		return
	}

	start := len(s.successors)
	for _, succ := range view.Successors(id) {
		if s.remaining.Contains(succ) {
			s.successors = append(s.successors, succ)
		}
	}

	s.visits = append(s.visits, visit{id: id, start: start, end: len(s.successors)})

	handler(id, false)
}

// Run traverses view starting at start, limited to whatever subset was
// last installed on the Searcher, invoking handler(id, false) the first
// time a node is discovered and handler(id, true) once every in-set
// successor reachable from it has been finalised.
//
// Nodes outside the restriction set, and nodes already visited, are
// skipped; each node in the set is visited at most once. A self-loop on
// id never causes a revisit of id.
//
// Complexity: O(|set| + edges touched).
func (s *Searcher) Run(view Successors, start int, handler func(id int, isPost bool)) {
	if !s.remaining.Contains(start) {
		return
	}

	s.queueVisit(view, start, handler)

	for len(s.visits) > 0 {
		top := &s.visits[len(s.visits)-1]

		if top.end > top.start {
			top.end--
			next := s.successors[top.end]
			s.queueVisit(view, next, handler)

			continue
		}

		handler(top.id, true)
		s.successors = s.successors[:top.start]
		s.visits = s.visits[:len(s.visits)-1]
	}
}
