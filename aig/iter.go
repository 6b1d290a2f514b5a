package aig

// NodeIter walks every input, then every latch, then every AND gate of
// a Store, each kind in position order (ascending variable-index order
// whenever every AND gate's LHS is canonical). The constant is not
// produced. Outputs are not variables and are never produced by
// NodeIter; use OutputCount/GetOutput to walk them. Grounded on
// original_source/libaig/src/node_iter.c's counting has_next/next
// pair, restructured as a HasNext/Next pair with Next returning
// (Node, error) and no separate free step - the same simplification
// debug_console.go's Step applies to its own command loop, folding
// what would otherwise be several cooperating methods into one call a
// caller drives in a loop.
type NodeIter struct {
	s    *Store
	next uint64 // position of the next node among inputs, latches, then AND gates
}

// NewNodeIter returns an iterator positioned before the first input.
func (s *Store) NewNodeIter() *NodeIter {
	return &NodeIter{s: s, next: 0}
}

// HasNext reports whether a call to Next will yield another node.
func (it *NodeIter) HasNext() bool {
	return it.next < it.s.inputCount+it.s.latchCount+it.s.andCount
}

// Next returns the next node. Calling Next after HasNext reports false
// returns KindOutOfRange.
func (it *NodeIter) Next() (Node, error) {
	if !it.HasNext() {
		return Node{}, newErr(KindOutOfRange, "node iterator exhausted at index %d", it.next)
	}
	var n Node
	var err error
	switch i := it.next; {
	case i < it.s.inputCount:
		n, err = it.s.GetInput(i)
	case i < it.s.inputCount+it.s.latchCount:
		n, err = it.s.GetLatch(i - it.s.inputCount)
	default:
		n, err = it.s.GetAnd(i - it.s.inputCount - it.s.latchCount)
	}
	if err != nil {
		return Node{}, err
	}
	it.next++
	return n, nil
}

// FanoutIter walks every latch whose next references a fixed variable
// index, followed by every AND gate whose rhs0 or rhs1 references it.
// Grounded on original_source/libaig/src/fanout.c's is_fanout/
// advance_to_next, which iterate exactly the latch range then the
// AND range and never touch outputs -- an output consumes a variable
// but is not itself a node any other node can fan out through, per
// the glossary's "via latch.next or and.rhs" definition.
type FanoutIter struct {
	s         *Store
	target    uint64
	nextLatch uint64
	nextAnd   uint64
}

// NewFanoutIter returns a FanoutIter over every latch or AND gate that
// references variable target as an operand.
func (s *Store) NewFanoutIter(target uint64) *FanoutIter {
	return &FanoutIter{s: s, target: target}
}

// FanoutEntry names one node that references the iterator's target
// variable, and whether that reference came from a latch's next or an
// AND gate's rhs.
type FanoutEntry struct {
	IsLatch bool
	Node    Node
}

func (it *FanoutIter) latchMatches() (Node, bool, error) {
	for it.nextLatch < it.s.latchCount {
		n, err := it.s.GetLatchNoSymbol(it.nextLatch)
		if err != nil {
			return Node{}, false, err
		}
		it.nextLatch++
		if n.Next == it.target {
			return n, true, nil
		}
	}
	return Node{}, false, nil
}

func (it *FanoutIter) andMatches() (Node, bool, error) {
	for it.nextAnd < it.s.andCount {
		n, err := it.s.GetAnd(it.nextAnd)
		if err != nil {
			return Node{}, false, err
		}
		it.nextAnd++
		if n.RHS[0] == it.target || n.RHS[1] == it.target {
			return n, true, nil
		}
	}
	return Node{}, false, nil
}

// HasNext reports whether a call to Next will yield another entry. It
// must scan ahead to find out, the same cost fanout.c's is_fanout
// predicate pays on every advance_to_next.
func (it *FanoutIter) HasNext() bool {
	save := *it
	_, ok, err := save.latchMatches()
	if err == nil && ok {
		return true
	}
	save = *it
	save.nextLatch = it.s.latchCount
	_, ok, err = save.andMatches()
	return err == nil && ok
}

// Next returns the next fan-out entry, preferring latches over AND
// gates when both remain.
func (it *FanoutIter) Next() (FanoutEntry, error) {
	if n, ok, err := it.latchMatches(); err != nil {
		return FanoutEntry{}, err
	} else if ok {
		return FanoutEntry{IsLatch: true, Node: n}, nil
	}
	it.nextLatch = it.s.latchCount
	n, ok, err := it.andMatches()
	if err != nil {
		return FanoutEntry{}, err
	}
	if !ok {
		return FanoutEntry{}, newErr(KindOutOfRange, "fanout iterator exhausted for variable %d", it.target)
	}
	return FanoutEntry{IsLatch: false, Node: n}, nil
}

// FanoutCount returns the cardinality of target's fan-out: the number
// of latches whose next is target plus the number of AND gates whose
// rhs0 or rhs1 is target. Grounded on
// original_source/libaig/src/fanout_count.c's aig_fanout_count, which
// walks the same two ranges purely to tally them rather than yield
// each match.
func (s *Store) FanoutCount(target uint64) (uint64, error) {
	it := s.NewFanoutIter(target)
	var count uint64
	for it.HasNext() {
		if _, err := it.Next(); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}
