package repeat

import (
	"sort"

	"github.com/katalvlaran/flowstruct/bitset"
	"github.com/katalvlaran/flowstruct/cfgraph"
)

// Single canonicalises one strongly connected region into a loop with
// a single entry, a single exit, and at most one latch (spec §4.6).
//
// A Single instance is reusable across many Run calls; each call
// discards the additional-node list from the previous one.
//
// Single is not safe for concurrent use (spec §5).
type Single struct {
	entries []int
	exits   []int

	additional  []int
	temporaries []int
	scratch     []int
}

// New returns an empty Single.
func New() *Single {
	return &Single{}
}

// Additional returns the synthetic nodes the last Run call created.
func (s *Single) Additional() []int {
	return s.additional
}

func (s *Single) findEntriesAndExits(view cfgraph.ReadView, set bitset.Slice) {
	s.entries = s.entries[:0]
	s.exits = s.exits[:0]
	s.scratch = set.Ascending(s.scratch[:0])

	for _, id := range s.scratch {
		for _, pred := range view.Predecessors(id) {
			if !set.Contains(pred) {
				s.entries = append(s.entries, id)

				break
			}
		}

		for _, succ := range view.Successors(id) {
			if !set.Contains(succ) {
				s.exits = append(s.exits, succ)
			}
		}
	}

	sort.Ints(s.exits)
	s.exits = dedupSorted(s.exits)
}

func dedupSorted(ids []int) []int {
	if len(ids) == 0 {
		return ids
	}

	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}

	return out
}

func (s *Single) setNewStart(view cfgraph.View) int {
	start := view.AddSelection(cfgraph.FlagC)
	s.additional = append(s.additional, start)

	for index, entry := range s.entries {
		s.temporaries = append(s.temporaries[:0], view.Predecessors(entry)...)

		for _, predecessor := range s.temporaries {
			branch := view.AddAssignment(cfgraph.FlagC, index)

			view.ReplaceEdge(predecessor, entry, branch)
			view.AddEdge(branch, start)

			s.additional = append(s.additional, branch)
		}

		view.AddEdge(start, entry)
	}

	return start
}

func (s *Single) findOrSetStart(view cfgraph.View) int {
	if len(s.entries) == 1 {
		return s.entries[0]
	}

	return s.setNewStart(view)
}

func (s *Single) setNewEnd(view cfgraph.View, set bitset.Slice) int {
	end := view.AddSelection(cfgraph.FlagC)
	s.additional = append(s.additional, end)

	for index, exit := range s.exits {
		s.temporaries = s.temporaries[:0]
		for _, pred := range view.Predecessors(exit) {
			if set.Contains(pred) {
				s.temporaries = append(s.temporaries, pred)
			}
		}

		for _, predecessor := range s.temporaries {
			branch := view.AddAssignment(cfgraph.FlagC, index)

			view.ReplaceEdge(predecessor, exit, branch)
			view.AddEdge(branch, end)

			s.additional = append(s.additional, branch)
		}

		view.AddEdge(end, exit)
	}

	return end
}

func (s *Single) findOrSetEnd(view cfgraph.View, set bitset.Slice) int {
	if len(s.exits) == 1 {
		return s.exits[0]
	}

	return s.setNewEnd(view, set)
}

// inSetOrInserted reports whether id belongs to the region, either
// because it is an original member of set or because it is a node
// synthesized during this run (which set never gains, so membership
// is recognised instead through one of its predecessors being in set).
func inSetOrInserted(view cfgraph.Predecessors, set bitset.Slice, id int) bool {
	if set.Contains(id) {
		return true
	}
	for _, pred := range view.Predecessors(id) {
		if set.Contains(pred) {
			return true
		}
	}

	return false
}

func inSetAcyclic(view cfgraph.Predecessors, set bitset.Slice, parent, id int) bool {
	return parent != id && inSetOrInserted(view, set, id)
}

// firstMatch scans ids for those satisfying pred, returning the first
// match and a count capped at reporting whether there is more than
// one (the caller only ever needs to know "exactly one" vs "not").
func firstMatch(ids []int, pred func(int) bool) (match int, count int) {
	for _, id := range ids {
		if !pred(id) {
			continue
		}
		if count == 0 {
			match = id
		}
		count++
		if count > 1 {
			return match, count
		}
	}

	return match, count
}

func hasOneLatch(view cfgraph.Predecessors, set bitset.Slice, start, end int) bool {
	repetition, repCount := firstMatch(view.Predecessors(start), func(id int) bool {
		return inSetOrInserted(view, set, id)
	})
	exit, exitCount := firstMatch(view.Predecessors(end), func(id int) bool {
		return inSetAcyclic(view, set, end, id)
	})

	return repCount == 1 && exitCount == 1 && repetition == exit
}

func (s *Single) setBreak(view cfgraph.View, set bitset.Slice, latch, end int) {
	s.temporaries = s.temporaries[:0]
	for _, pred := range view.Predecessors(end) {
		if inSetAcyclic(view, set, end, pred) {
			s.temporaries = append(s.temporaries, pred)
		}
	}

	for _, exit := range s.temporaries {
		branch := view.AddAssignment(cfgraph.FlagB, 0)

		view.ReplaceEdge(exit, end, branch)
		view.AddEdge(branch, latch)

		s.additional = append(s.additional, branch)
	}
}

func (s *Single) setContinue(view cfgraph.View, set bitset.Slice, latch, start int) {
	s.temporaries = s.temporaries[:0]
	for _, pred := range view.Predecessors(start) {
		if inSetOrInserted(view, set, pred) {
			s.temporaries = append(s.temporaries, pred)
		}
	}

	for _, entry := range s.temporaries {
		branch := view.AddAssignment(cfgraph.FlagB, 1)

		view.ReplaceEdge(entry, start, branch)
		view.AddEdge(branch, latch)

		s.additional = append(s.additional, branch)
	}
}

func (s *Single) setNewLatch(view cfgraph.View, set bitset.Slice, start, end int) {
	latch := view.AddSelection(cfgraph.FlagB)
	s.additional = append(s.additional, latch)

	s.setBreak(view, set, latch, end)
	s.setContinue(view, set, latch, start)

	view.AddEdge(latch, end)
	view.AddEdge(latch, start)
}

// Run restructures the region induced by set, which must be a
// strongly connected component (or a self-loop singleton) with at
// least one incoming edge from outside the set, into a canonical loop.
// It returns the loop's single entry node.
//
// Complexity: O(|set| + edges touched).
func (s *Single) Run(view cfgraph.View, set bitset.Slice) int {
	s.findEntriesAndExits(view, set)
	s.additional = s.additional[:0]

	start := s.findOrSetStart(view)
	end := s.findOrSetEnd(view, set)

	if !hasOneLatch(view, set, start, end) {
		s.setNewLatch(view, set, start, end)
	}

	return start
}
