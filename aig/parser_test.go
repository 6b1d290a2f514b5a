package aig

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	s, err := Parse("aag 10 3 2 4 1\n3\n5\n7\n12 13\n14 15\n16\n18\n20\n21\n20 2 4\n", Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.MaxIndex() != 10 || s.InputCount() != 3 || s.LatchCount() != 2 ||
		s.OutputCount() != 4 || s.AndCount() != 1 {
		t.Fatalf("header = M=%d I=%d L=%d O=%d A=%d, want 10 3 2 4 1",
			s.MaxIndex(), s.InputCount(), s.LatchCount(), s.OutputCount(), s.AndCount())
	}
}

func TestHeaderRejectsBadMagic(t *testing.T) {
	if _, err := Parse("xyz 0 0 0 0 0\n", Options{}); !IsKind(err, KindIllegalSequence) {
		t.Fatalf("Parse(bad magic) = %v, want illegal-sequence", err)
	}
}

func TestHeaderRejectsInconsistentCounts(t *testing.T) {
	// M=0 cannot be less than I+L+A=1.
	if _, err := Parse("aag 0 1 0 0 0\n", Options{}); !IsKind(err, KindOutOfRange) {
		t.Fatalf("Parse(bad counts) = %v, want out-of-range", err)
	}
}

func TestHeaderOverflow(t *testing.T) {
	huge := "aag 99999999999999999999999999 0 0 0 0\n"
	if _, err := Parse(huge, Options{}); !IsKind(err, KindOverflow) {
		t.Fatalf("Parse(huge) = %v, want overflow", err)
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	s, err := Parse(scenario3Source, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out0, err := s.GetOutputNoSymbol(0)
	if err != nil {
		t.Fatalf("GetOutput(0): %v", err)
	}
	lit := out0.TargetVariableIndex*2 + boolToUint64(out0.Negated)
	if lit != 3 {
		t.Fatalf("reconstructed output literal = %d, want 3", lit)
	}
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
