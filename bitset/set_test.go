package bitset_test

import (
	"testing"

	"github.com/katalvlaran/flowstruct/bitset"
)

func TestSetInsertRemoveContains(t *testing.T) {
	s := bitset.New()

	if s.Contains(3) {
		t.Fatalf("fresh set must not contain 3")
	}

	if was := s.Insert(3); was {
		t.Fatalf("first insert of 3 must report false")
	}
	if !s.Contains(3) {
		t.Fatalf("set must contain 3 after insert")
	}
	if was := s.Insert(3); !was {
		t.Fatalf("second insert of 3 must report true (already present)")
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}

	if was := s.Remove(3); !was {
		t.Fatalf("remove of present 3 must report true")
	}
	if s.Contains(3) {
		t.Fatalf("set must not contain 3 after remove")
	}
	if was := s.Remove(3); was {
		t.Fatalf("remove of absent 3 must report false")
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

func TestSetRemoveOutOfRange(t *testing.T) {
	s := bitset.New()
	if s.Remove(100) {
		t.Fatalf("remove out of range must report false, not panic")
	}
	if s.Contains(-1) {
		t.Fatalf("negative index must never be contained")
	}
}

func TestSetAscendingDescending(t *testing.T) {
	s := bitset.New()
	for _, id := range []int{5, 1, 3, 0} {
		s.Insert(id)
	}

	got := s.Ascending(nil)
	want := []int{0, 1, 3, 5}
	if !equalInts(got, want) {
		t.Fatalf("ascending = %v, want %v", got, want)
	}

	got = s.Descending(nil)
	want = []int{5, 3, 1, 0}
	if !equalInts(got, want) {
		t.Fatalf("descending = %v, want %v", got, want)
	}
}

func TestSetClearRetainsCapacity(t *testing.T) {
	s := bitset.New()
	s.Insert(10)
	before := s.Maximum()

	s.Clear()

	if s.Len() != 0 {
		t.Fatalf("len after clear = %d, want 0", s.Len())
	}
	if s.Maximum() != before {
		t.Fatalf("maximum after clear = %d, want %d (capacity retained)", s.Maximum(), before)
	}
	if s.Contains(10) {
		t.Fatalf("10 must not be a member after clear")
	}
}

func TestSetCloneFromAndSlice(t *testing.T) {
	src := bitset.New()
	src.Insert(2)
	src.Insert(7)

	dst := bitset.New()
	dst.Insert(99) // should be wiped by CloneFrom
	dst.CloneFrom(src)

	if dst.Contains(99) {
		t.Fatalf("clone must not retain destination's prior members")
	}
	if !dst.Contains(2) || !dst.Contains(7) {
		t.Fatalf("clone must contain source's members")
	}
	if dst.Len() != 2 {
		t.Fatalf("clone len = %d, want 2", dst.Len())
	}

	view := src.AsSlice()
	other := bitset.New()
	other.CloneFromSlice(view)
	if other.Len() != 2 || !other.Contains(2) || !other.Contains(7) {
		t.Fatalf("CloneFromSlice did not reproduce source membership")
	}
}

func TestSetExtend(t *testing.T) {
	s := bitset.New()
	s.Extend([]int{4, 4, 2, 0})

	if s.Len() != 3 {
		t.Fatalf("len after extend = %d, want 3 (dedup dupes)", s.Len())
	}
	for _, id := range []int{0, 2, 4} {
		if !s.Contains(id) {
			t.Fatalf("expected %d to be a member", id)
		}
	}
}

func TestPoolReusesClearedSets(t *testing.T) {
	pool := bitset.NewPool()

	s1 := pool.Get()
	s1.Insert(1)
	s1.Insert(2)
	pool.Put(s1)

	s2 := pool.Get()
	if !s2.IsEmpty() {
		t.Fatalf("set popped from pool must be cleared")
	}
	if s2 != s1 {
		t.Fatalf("pool did not hand back the pushed set instance")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
