package rposeq

import "github.com/katalvlaran/flowstruct/dfsearch"

// Missing is the sentinel index returned by IDToPost for an id that the
// most recent Follow call never reached.
const Missing = -1

// Sequence computes a reverse post-order numbering of a restricted
// subgraph and the id<->post bijection it induces. A Sequence is
// reusable across many independent numbering passes via Restrict.
type Sequence struct {
	searcher *dfsearch.Searcher

	postToID []int // post index -> node id
	idToPost []int // node id -> post index, Missing if unreached
}

// New returns an empty Sequence.
func New() *Sequence {
	return &Sequence{searcher: dfsearch.New()}
}

// Restrict installs the subset of ids the next Follow call is limited
// to, and clears any numbering from a previous run.
func (s *Sequence) Restrict(ids []int) {
	s.searcher.NodesMut().Clear()
	s.searcher.NodesMut().Extend(ids)
	s.postToID = s.postToID[:0]
}

// Follow runs a depth-first traversal from start over the restricted
// subset and appends the post-order it discovers, reversed, to the
// sequence. Calling Follow more than once (e.g. once per disconnected
// root) accumulates a single combined ordering, each call's segment
// placed after the previous one's.
func (s *Sequence) Follow(view dfsearch.Successors, start int) {
	base := len(s.postToID)

	s.searcher.Run(view, start, func(id int, isPost bool) {
		if isPost {
			s.postToID = append(s.postToID, id)
		}
	})

	reverse(s.postToID[base:])
}

// Finalize builds the id->post inverse index from the accumulated
// post-to-id sequence. Call it once after the last Follow of a run.
func (s *Sequence) Finalize() {
	last := 0
	for _, id := range s.postToID {
		if id+1 > last {
			last = id + 1
		}
	}

	if cap(s.idToPost) < last {
		s.idToPost = make([]int, last)
	} else {
		s.idToPost = s.idToPost[:last]
	}
	for i := range s.idToPost {
		s.idToPost[i] = Missing
	}

	for post, id := range s.postToID {
		s.idToPost[id] = post
	}
}

// PostToID returns the post-order-indexed slice of node ids: index 0 is
// the start of the (first) Follow call.
func (s *Sequence) PostToID() []int {
	return s.postToID
}

// IDToPost returns the post index of id, or Missing if the last
// Follow/Finalize never reached it.
func (s *Sequence) IDToPost(id int) int {
	if id < 0 || id >= len(s.idToPost) {
		return Missing
	}

	return s.idToPost[id]
}

// IDToPostSlice returns the raw id->post table built by the last
// Finalize call. It aliases internal storage and is meant for callers
// (namely dominators.Finder) that need to seed their own copy of the
// numbering rather than pay per-id lookup overhead.
func (s *Sequence) IDToPostSlice() []int {
	return s.idToPost
}

// Len returns the number of nodes numbered by the last run.
func (s *Sequence) Len() int {
	return len(s.postToID)
}

func reverse(ids []int) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
