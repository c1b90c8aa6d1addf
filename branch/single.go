package branch

import (
	"github.com/katalvlaran/flowstruct/bitset"
	"github.com/katalvlaran/flowstruct/cfgraph"
	"github.com/katalvlaran/flowstruct/dominators"
)

// Arm is one branch body: the set of nodes dominated by Start, a
// successor of the branch head.
type Arm struct {
	Start int
	Set   *bitset.Set
}

// Single canonicalises one acyclic fork region rooted at head into a
// branch whose arms are disjoint SESE regions meeting at a single
// continuation (spec §4.8).
//
// Single does not own a scratch set pool: every method that needs one
// takes it as a parameter, exactly as the sets Single hands back to a
// caller (via TakeBranches, TakeTail) come from that same pool — a
// caller driving several Single calls (Bulk) shares one pool across
// all of them rather than each maintaining its own (spec §9 "Scratch
// reuse").
//
// A Single instance is reusable across many Run calls. Single is not
// safe for concurrent use (spec §5).
type Single struct {
	branches []Arm
	tail     *bitset.Set

	continuations []int
	temporary     []int
	additional    []int

	dominators *dominators.Finder

	scratchIDs  []int
	scratchTail []int
}

// New returns an empty Single with its own (empty) tail set.
func New() *Single {
	return &Single{
		tail:       bitset.New(),
		dominators: dominators.New(),
	}
}

// Branches returns the arm bodies the last Run call identified,
// without transferring ownership: the next Run call recycles their
// Sets through pool. Use TakeBranches to drain them instead.
func (s *Single) Branches() []Arm {
	return s.branches
}

// Tail returns the join/merge region the last Run call identified.
// Use TakeTail to take ownership of it instead.
func (s *Single) Tail() *bitset.Set {
	return s.tail
}

// TakeBranches drains the arm list from the last Run call, handing
// ownership of each arm's Set to the caller. After this call Single no
// longer tracks them and will not recycle them through pool.
func (s *Single) TakeBranches() []Arm {
	out := s.branches
	s.branches = nil

	return out
}

// TakeTail hands ownership of the tail set from the last Run call to
// the caller, installing a fresh Set drawn from pool in its place.
func (s *Single) TakeTail(pool *bitset.Pool) *bitset.Set {
	tail := s.tail
	s.tail = pool.Get()

	return tail
}

// Additional returns the synthetic nodes the last Run call created.
func (s *Single) Additional() []int {
	return s.additional
}

func (s *Single) recycleBranches(pool *bitset.Pool) {
	for _, arm := range s.branches {
		pool.Put(arm.Set)
	}
	s.branches = s.branches[:0]
}

// findDestinations runs the dominator pass over the region and
// classifies every successor of head as an arm start or a tail/merge
// point, then assigns every other node in set to the unique arm that
// dominates it, or to the tail if none does (spec §4.8 steps 1-3).
func (s *Single) findDestinations(view cfgraph.View, head int, set bitset.Slice, pool *bitset.Pool) {
	s.scratchIDs = set.Ascending(s.scratchIDs[:0])
	s.dominators.Run(view, s.scratchIDs, head)

	s.recycleBranches(pool)
	s.tail.Clear()

	for _, succ := range view.Successors(head) {
		external := 0
		for _, pred := range view.Predecessors(succ) {
			if !set.Contains(pred) {
				continue
			}
			dominated, known := s.dominators.Dominates(succ, pred)
			if known && dominated {
				continue
			}
			external++
			if external > 1 {
				break
			}
		}

		if external == 1 {
			s.branches = append(s.branches, Arm{Start: succ, Set: pool.Get()})
		} else {
			s.tail.Insert(succ)
		}
	}

	for _, id := range s.scratchIDs {
		if id == head || s.tail.Contains(id) {
			continue
		}

		assigned := false
		for i := range s.branches {
			dominated, known := s.dominators.Dominates(s.branches[i].Start, id)
			if known && dominated {
				s.branches[i].Set.Insert(id)
				assigned = true

				break
			}
		}
		if !assigned {
			s.tail.Insert(id)
		}
	}
}

func (s *Single) findContinuations(view cfgraph.Predecessors) {
	s.continuations = s.continuations[:0]
	s.scratchTail = s.tail.Ascending(s.scratchTail[:0])

	for _, id := range s.scratchTail {
		for _, pred := range view.Predecessors(id) {
			if !s.tail.Contains(pred) {
				s.continuations = append(s.continuations, id)

				break
			}
		}
	}
}

// hasOrphanAssignments reports whether some continuation's Assignment(A)
// predecessors live inside the tail while another's live outside it in
// an arm. This arises when the set already contains Assignment(A)
// nodes left over from an enclosing or previous branch rewrite that
// this Run's fresh classification splits across the tail/arm boundary
// differently than before (spec §4.8 step 5).
func (s *Single) hasOrphanAssignments(view cfgraph.ReadView) bool {
	var inTail, inBranch bool

	for _, id := range s.continuations {
		for _, pred := range view.Predecessors(id) {
			if !view.HasAssignment(pred, cfgraph.FlagA) {
				continue
			}

			if s.tail.Contains(pred) {
				inTail = true
			} else {
				inBranch = true
			}
			if inTail && inBranch {
				return true
			}
		}
	}

	return false
}

// setTailIfNeeded pulls id into the tail, removing it from whichever
// arm currently holds it. It is a no-op if id is already in the tail.
func (s *Single) setTailIfNeeded(id int) {
	if s.tail.Insert(id) {
		return
	}

	for i := range s.branches {
		if s.branches[i].Set.Remove(id) {
			break
		}
	}
}

func (s *Single) trimOrphanAssignments(view cfgraph.ReadView) {
	for _, id := range s.continuations {
		for _, pred := range view.Predecessors(id) {
			if !view.HasAssignment(pred, cfgraph.FlagA) {
				continue
			}

			predPreds := view.Predecessors(pred)
			if len(predPreds) == 1 && view.HasAssignment(predPreds[0], cfgraph.FlagC) {
				s.setTailIfNeeded(predPreds[0])
			}

			s.setTailIfNeeded(pred)
		}
	}
}

func (s *Single) trimOrphansIfNeeded(view cfgraph.ReadView, pool *bitset.Pool) {
	if !s.hasOrphanAssignments(view) {
		return
	}

	s.trimOrphanAssignments(view)
	s.findContinuations(view)

	kept := s.branches[:0]
	for _, arm := range s.branches {
		if arm.Set.IsEmpty() {
			pool.Put(arm.Set)
		} else {
			kept = append(kept, arm)
		}
	}
	s.branches = kept
}

func (s *Single) findSetOf(id int) (*bitset.Set, bool) {
	for i := range s.branches {
		if s.branches[i].Set.Contains(id) {
			return s.branches[i].Set, true
		}
	}

	return nil, false
}

func (s *Single) setContinuationEdges(view cfgraph.View, head, continuation int) {
	for index, tail := range s.continuations {
		s.temporary = append(s.temporary[:0], view.Predecessors(tail)...)

		for _, predecessor := range s.temporary {
			var branch int
			switch set, ok := s.findSetOf(predecessor); {
			case ok:
				branch = view.AddAssignment(cfgraph.FlagA, index)
				set.Insert(branch)
			case predecessor == head:
				branch = view.AddAssignment(cfgraph.FlagA, index)
			default:
				continue
			}

			view.ReplaceEdge(predecessor, tail, branch)
			view.AddEdge(branch, continuation)

			s.additional = append(s.additional, branch)
		}

		view.AddEdge(continuation, tail)
	}
}

func (s *Single) setContinuationMerges(view cfgraph.View, continuation int) {
	for i := range s.branches {
		set := s.branches[i].Set

		s.temporary = s.temporary[:0]
		for _, pred := range view.Predecessors(continuation) {
			if set.Contains(pred) {
				s.temporary = append(s.temporary, pred)
			}
		}

		if len(s.temporary) <= 1 {
			continue
		}

		dummy := view.AddNoOperation()
		for _, predecessor := range s.temporary {
			view.ReplaceEdge(predecessor, continuation, dummy)
		}
		view.AddEdge(dummy, continuation)
		set.Insert(dummy)

		s.additional = append(s.additional, dummy)
	}
}

func (s *Single) setNewContinuation(view cfgraph.View, head int) int {
	continuation := view.AddSelection(cfgraph.FlagA)
	s.tail.Insert(continuation)
	s.additional = append(s.additional, continuation)

	s.setContinuationEdges(view, head, continuation)

	return continuation
}

// fillEmptyBranches inserts a no-operation node on every head→tail
// edge so that every arm has at least one body node (spec §4.8 step
// 8). Done last, since which arms ended up empty is only known once
// classification and trimming have settled.
func (s *Single) fillEmptyBranches(view cfgraph.View, head int) {
	s.temporary = append(s.temporary[:0], view.Successors(head)...)

	for _, id := range s.temporary {
		if !s.tail.Contains(id) {
			continue
		}

		dummy := view.AddNoOperation()
		view.ReplaceEdge(head, id, dummy)
		view.AddEdge(dummy, id)

		s.additional = append(s.additional, dummy)
	}
}

// Run restructures the acyclic region induced by set, rooted at head,
// into a canonical branch and returns its continuation node. pool
// supplies the arm and tail Sets Run allocates; a caller driving many
// Run calls (Bulk) should thread the same pool through all of them.
//
// Complexity: O(|set| + edges touched) per the dominator pass, plus
// the rewrite steps below it.
func (s *Single) Run(view cfgraph.View, head int, set bitset.Slice, pool *bitset.Pool) int {
	s.additional = s.additional[:0]

	s.findDestinations(view, head, set, pool)
	s.findContinuations(view)
	s.trimOrphansIfNeeded(view, pool)

	var continuation int
	if len(s.continuations) == 1 {
		continuation = s.continuations[0]
	} else {
		continuation = s.setNewContinuation(view, head)
	}

	s.setContinuationMerges(view, continuation)
	s.fillEmptyBranches(view, head)

	return continuation
}
