package aig

import (
	"strings"
	"testing"
)

// TestGetNodeDispatch exercises property 6: for every v in [0, I+L+A],
// get_node(v) returns a node whose variable index equals v (or the
// constant for v=0); beyond that range it fails out-of-range.
func TestGetNodeDispatch(t *testing.T) {
	s, err := Parse(scenario2Source, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	n, err := s.GetNode(0)
	if err != nil || n.Kind != NodeConstant || n.IsTrue {
		t.Fatalf("GetNode(0) = %+v, %v, want constant FALSE", n, err)
	}

	for v := uint64(1); v <= s.InputCount()+s.LatchCount()+s.AndCount(); v++ {
		n, err := s.GetNode(v)
		if err != nil {
			t.Fatalf("GetNode(%d): %v", v, err)
		}
		if n.VariableIndex != v {
			t.Fatalf("GetNode(%d).VariableIndex = %d, want %d", v, n.VariableIndex, v)
		}
	}

	if _, err := s.GetNode(s.MaxIndex() + 1); !IsKind(err, KindOutOfRange) {
		t.Fatalf("GetNode(M+1) = %v, want out-of-range", err)
	}
}

// TestLazyMonotonicity exercises property 4: repeating the same get_*
// call twice yields identical node values, and accessors never rewind
// the cursor.
func TestLazyMonotonicity(t *testing.T) {
	s, err := Parse(scenario2Source, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	first, err := s.GetAnd(0)
	if err != nil {
		t.Fatalf("GetAnd(0): %v", err)
	}
	before := s.cur
	second, err := s.GetAnd(0)
	if err != nil {
		t.Fatalf("GetAnd(0) again: %v", err)
	}
	if s.cur.section < before.section || (s.cur.section == before.section && s.cur.index < before.index) {
		t.Fatalf("cursor rewound from %+v to %+v", before, s.cur)
	}
	if first != second {
		t.Fatalf("GetAnd(0) returned different values: %+v != %+v", first, second)
	}
}

func TestInferableLHSLeavesAndLHSEmpty(t *testing.T) {
	s, err := Parse(scenario2Source, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	and0, err := s.GetAnd(0)
	if err != nil {
		t.Fatalf("GetAnd(0): %v", err)
	}
	if and0.LHS != s.InputCount()+s.LatchCount()+0+1 {
		t.Fatalf("GetAnd(0).LHS = %d, want canonical position", and0.LHS)
	}
	if !s.andLHS.isEmpty() {
		t.Fatalf("and_lhs materialized despite canonical LHS")
	}
}

func TestDeviatingLHSMaterializesAndLHS(t *testing.T) {
	// Two AND gates; the second's LHS deviates from its canonical
	// position (I+L+2=4 would be canonical; variable 5 is used
	// instead, made available by M=5 exceeding I+L+A=4).
	src := "aag 5 2 0 1 2\n2\n4\n10\n6 2 4\n10 2 6\n"

	s, err := Parse(src, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	and1, err := s.GetAnd(1)
	if err != nil {
		t.Fatalf("GetAnd(1): %v", err)
	}
	if and1.VariableIndex != 5 {
		t.Fatalf("GetAnd(1).VariableIndex = %d, want 5 (literal 10 / 2)", and1.VariableIndex)
	}
	if s.andLHS.isEmpty() {
		t.Fatalf("and_lhs should be materialized after a deviating LHS")
	}

	and0, err := s.GetAnd(0)
	if err != nil {
		t.Fatalf("GetAnd(0): %v", err)
	}
	if and0.VariableIndex != 3 {
		t.Fatalf("GetAnd(0).VariableIndex = %d, want 3 (back-filled canonical)", and0.VariableIndex)
	}
}

func TestStrictModeRejectsCanonicalDeviation(t *testing.T) {
	// Input literal 4 deviates from the canonical literal 2 for input 0.
	src := "aag 2 1 0 0 0\n4\n"

	if _, err := Parse(src, Options{Strict: true, Eager: true}); !IsKind(err, KindIllegalSequence) {
		t.Fatalf("Parse(strict) = %v, want illegal-sequence", err)
	}

	if _, err := Parse(src, Options{Strict: false, Eager: true}); err != nil {
		t.Fatalf("Parse(lax) = %v, want success", err)
	}
}

func TestLookupByNameMiss(t *testing.T) {
	s, err := Parse(scenario3Source, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := s.LookupByName("nonexistent"); !IsKind(err, KindNotFound) {
		t.Fatalf("LookupByName(nonexistent) = %v, want not-found", err)
	}
}

func TestLoadReaderDoesNotCloseCallerStream(t *testing.T) {
	r := strings.NewReader(scenario2Source)
	if _, err := LoadReader(r, Options{}); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	// The caller retains ownership; a second read attempt against the
	// same reader should still be possible from where parsing left off
	// without LoadReader having closed anything out from under it.
	buf := make([]byte, 1)
	if _, err := r.ReadAt(buf, 0); err != nil {
		t.Fatalf("reader unusable after LoadReader: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/does-not-exist.aag", Options{}); !IsKind(err, KindIO) {
		t.Fatalf("Load(missing) = %v, want io", err)
	}
}
