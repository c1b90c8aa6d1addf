package dominators

import (
	"github.com/katalvlaran/flowstruct/dfsearch"
	"github.com/katalvlaran/flowstruct/rposeq"
)

const unset = -1

// View is the read-only capability Run requires of its host graph.
type View interface {
	dfsearch.Successors
	Predecessors(id int) []int
}

// Finder computes and answers immediate-dominator queries over a
// restricted subgraph. A Finder is reusable across runs via Run, which
// discards whatever numbering and idom table a previous run built.
//
// Finder is not safe for concurrent use (spec §5).
type Finder struct {
	seq *rposeq.Sequence

	postToID []int // copied out of seq so LateInsert can grow it independently
	idToPost []int
	idom     []int // RPO-indexed; idom[0] == 0, the root dominates itself
}

// New returns an empty Finder.
func New() *Finder {
	return &Finder{seq: rposeq.New()}
}

// Run computes immediate dominators for the subgraph induced by ids,
// rooted at start, using the iterative Cooper-Harvey-Kennedy fixpoint.
//
// Complexity: O((|V|+|E|) * k), where k is the number of fixpoint
// iterations until no idom changes; k is small in practice and bounded
// by the set's loop nesting depth.
func (f *Finder) Run(view View, ids []int, start int) {
	f.seq.Restrict(ids)
	f.seq.Follow(view, start)
	f.seq.Finalize()

	f.postToID = append(f.postToID[:0], f.seq.PostToID()...)

	src := f.seq.IDToPostSlice()
	if cap(f.idToPost) < len(src) {
		f.idToPost = make([]int, len(src))
	} else {
		f.idToPost = f.idToPost[:len(src)]
	}
	copy(f.idToPost, src)

	n := len(f.postToID)
	if cap(f.idom) < n {
		f.idom = make([]int, n)
	} else {
		f.idom = f.idom[:n]
	}
	for i := range f.idom {
		f.idom[i] = unset
	}
	if n == 0 {
		return
	}
	f.idom[0] = 0

	for changed := true; changed; {
		changed = false
		for post := 1; post < n; post++ {
			id := f.postToID[post]

			newIdom := unset
			for _, pred := range view.Predecessors(id) {
				predPost := f.postIndex(pred)
				if predPost == unset || f.idom[predPost] == unset {
					continue
				}
				if newIdom == unset {
					newIdom = predPost
				} else {
					newIdom = intersect(f.idom, newIdom, predPost)
				}
			}

			if newIdom != unset && newIdom != f.idom[post] {
				f.idom[post] = newIdom
				changed = true
			}
		}
	}
}

func (f *Finder) postIndex(id int) int {
	if id < 0 || id >= len(f.idToPost) {
		return unset
	}

	return f.idToPost[id]
}

// Contains reports whether id was reached by the last Run, or added
// since via LateInsert.
func (f *Finder) Contains(id int) bool {
	return f.postIndex(id) != unset
}

// Dominates reports whether dominator dominates id (reflexively: every
// node dominates itself). The second return is false when the
// dominance relation is unknown — either id was never reached by Run
// or LateInsert — rather than folding "unknown" into "false" (spec
// §4.4).
func (f *Finder) Dominates(dominator, id int) (dominates bool, known bool) {
	dp := f.postIndex(dominator)
	ip := f.postIndex(id)
	if dp == unset || ip == unset || f.idom[dp] == unset || f.idom[ip] == unset {
		return false, false
	}
	if dp == 0 {
		return true, true
	}

	return intersect(f.idom, dp, ip) == dp, true
}

// LateInsert extends the finder with a single node created after the
// last Run, whose immediate dominator is computed as the intersection
// of its already-known predecessors' immediate dominators rather than
// by rerunning the fixpoint over the whole set (spec §4.9). The branch
// pass does not call it; it reruns Run for every region instead.
//
// LateInsert panics if none of the given predecessors is already known
// to the finder: the caller contract requires at least one predecessor
// to predate the insertion.
func (f *Finder) LateInsert(id int, predecessors []int) {
	newIdom := unset
	for _, pred := range predecessors {
		predPost := f.postIndex(pred)
		if predPost == unset || f.idom[predPost] == unset {
			continue
		}
		if newIdom == unset {
			newIdom = predPost
		} else {
			newIdom = intersect(f.idom, newIdom, predPost)
		}
	}
	if newIdom == unset {
		panic("dominators: LateInsert requires at least one already-known predecessor")
	}

	post := len(f.postToID)
	f.postToID = append(f.postToID, id)
	f.idom = append(f.idom, newIdom)

	if id >= len(f.idToPost) {
		grown := make([]int, id+1)
		for i := range grown {
			grown[i] = unset
		}
		copy(grown, f.idToPost)
		f.idToPost = grown
	}
	f.idToPost[id] = post
}

// intersect walks two post indices up the dominator chain until they
// meet: the Cooper-Harvey-Kennedy "two finger" algorithm. Lower post
// indices sit closer to the root in reverse post order.
func intersect(idom []int, a, b int) int {
	for a != b {
		for a > b {
			a = idom[a]
		}
		for b > a {
			b = idom[b]
		}
	}

	return a
}
