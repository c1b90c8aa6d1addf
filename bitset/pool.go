package bitset

// Pool is a reusable stack of cleared Sets, threaded through the bulk
// drivers to amortise allocation across the many small regions a single
// restructuring run visits (spec §4.1, §9 "Scratch reuse"). It is a
// per-call resource, not global state: correctness never depends on
// what a popped Set used to contain, only that Get always returns an
// empty one.
//
// Pool is not safe for concurrent use — flowstruct's passes are
// single-threaded (spec §5), and a Pool must not be shared across
// goroutines any more than a View or a Set may be.
type Pool struct {
	free []*Set
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{}
}

// Get pops a cleared Set off the pool, allocating a new one only if the
// pool is empty.
func (p *Pool) Get() *Set {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free = p.free[:n-1]

		return s
	}

	return New()
}

// Put clears s and pushes it back onto the pool for reuse.
func (p *Pool) Put(s *Set) {
	s.Clear()
	p.free = append(p.free, s)
}
