package repeat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowstruct/bitset"
	"github.com/katalvlaran/flowstruct/cfgraph"
	"github.com/katalvlaran/flowstruct/repeat"
)

// selfLoop builds 0->1, 1->1, 1->2 (spec §8(a)).
func selfLoop() (*cfgraph.Graph, [3]int) {
	g := cfgraph.New()
	var ids [3]int
	for i := range ids {
		ids[i] = g.AddOriginal()
	}
	g.AddEdge(ids[0], ids[1])
	g.AddEdge(ids[1], ids[1])
	g.AddEdge(ids[1], ids[2])

	return g, ids
}

func TestSingleSelfLoopAlreadyHasLatchShape(t *testing.T) {
	g, ids := selfLoop()
	region := ids[1:2] // {1}

	s := repeat.New()
	set := bitset.New()
	set.Extend(region)

	start := s.Run(g, set.AsSlice())

	assert.Equal(t, ids[1], start)
	assert.Empty(t, s.Additional(), "node 1 already has the successor shape of a latch (itself and the exit), so no synthesis is needed")
	assert.ElementsMatch(t, []int{ids[0], ids[1]}, g.Predecessors(ids[1]))
	assert.ElementsMatch(t, []int{ids[1], ids[2]}, g.Successors(ids[1]))
}

// twoEntryLoop builds 0->2, 1->2, 2->3, 3->2, 3->4 (spec §8(b)).
func twoEntryLoop() (*cfgraph.Graph, [5]int) {
	g := cfgraph.New()
	var ids [5]int
	for i := range ids {
		ids[i] = g.AddOriginal()
	}
	g.AddEdge(ids[0], ids[2])
	g.AddEdge(ids[1], ids[2])
	g.AddEdge(ids[2], ids[3])
	g.AddEdge(ids[3], ids[2])
	g.AddEdge(ids[3], ids[4])

	return g, ids
}

func TestSingleTwoEntryLoopSingleEntrySingleExitCoincide(t *testing.T) {
	g, ids := twoEntryLoop()
	region := []int{ids[2], ids[3]}

	s := repeat.New()
	set := bitset.New()
	set.Extend(region)

	start := s.Run(g, set.AsSlice())

	assert.Equal(t, ids[2], start, "the sole entry is node 2")
	assert.Empty(t, s.Additional(), "the repeat predecessor of the entry and the exit predecessor of the exit coincide at node 3")
}

// irreducibleTwoEntryCycle builds 0->1, 0->2, 1->2, 2->1, 2->3 (spec
// §8(e), with an added exit edge so the region is not an infinite
// loop with no way out).
func irreducibleTwoEntryCycle() (*cfgraph.Graph, [4]int) {
	g := cfgraph.New()
	var ids [4]int
	for i := range ids {
		ids[i] = g.AddOriginal()
	}
	g.AddEdge(ids[0], ids[1])
	g.AddEdge(ids[0], ids[2])
	g.AddEdge(ids[1], ids[2])
	g.AddEdge(ids[2], ids[1])
	g.AddEdge(ids[2], ids[3])

	return g, ids
}

func TestSingleIrreducibleTwoEntryCycleSynthesizesEntrySelector(t *testing.T) {
	g, ids := irreducibleTwoEntryCycle()
	region := []int{ids[1], ids[2]}

	s := repeat.New()
	set := bitset.New()
	set.Extend(region)

	start := s.Run(g, set.AsSlice())

	require.NotEmpty(t, s.Additional())
	assert.NotEqual(t, ids[1], start)
	assert.NotEqual(t, ids[2], start)
	assert.Equal(t, cfgraph.Selection, g.Kind(start))
	assert.Equal(t, cfgraph.FlagC, g.Selection(start))
	assert.ElementsMatch(t, []int{ids[1], ids[2]}, g.Successors(start))

	latchPreds := 0
	for _, pred := range g.Predecessors(start) {
		if g.Kind(pred) == cfgraph.Selection {
			// the synthesized latch's edge back to start
			assert.Equal(t, cfgraph.FlagB, g.Selection(pred))
			latchPreds++

			continue
		}
		assert.Equal(t, cfgraph.Assignment, g.Kind(pred))
		flag, value := g.Assignment(pred)
		assert.Equal(t, cfgraph.FlagC, flag)
		assert.Contains(t, []int{0, 1}, value)
	}
	assert.Equal(t, 1, latchPreds, "apart from the entry assignments, only the latch feeds start")

	var sawLatch bool
	for _, id := range s.Additional() {
		if g.Kind(id) == cfgraph.Selection && g.Selection(id) == cfgraph.FlagB {
			sawLatch = true
		}
	}
	assert.True(t, sawLatch, "the two-entry cycle has no node already shaped like a latch, so one is synthesized")
}

func TestSingleReusedAcrossRuns(t *testing.T) {
	g1, ids1 := selfLoop()
	g2, ids2 := irreducibleTwoEntryCycle()

	s := repeat.New()

	set1 := bitset.New()
	set1.Extend(ids1[1:2])
	s.Run(g1, set1.AsSlice())
	assert.Empty(t, s.Additional())

	set2 := bitset.New()
	set2.Extend([]int{ids2[1], ids2[2]})
	s.Run(g2, set2.AsSlice())
	assert.NotEmpty(t, s.Additional())
}
