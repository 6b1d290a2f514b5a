package aig

import "testing"

func TestWidth(t *testing.T) {
	cases := []struct {
		limit uint64
		want  uint
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{7, 3},
		{8, 4},
		{255, 8},
		{256, 9},
	}
	for _, c := range cases {
		if got := width(c.limit); got != c.want {
			t.Fatalf("width(%d) = %d, want %d", c.limit, got, c.want)
		}
	}
}

func TestBitBufferAppendGet(t *testing.T) {
	var b bitBuffer
	const limit = 13 // needs 4 bits

	values := []uint64{0, 1, 13, 7, 2, 13, 0}
	for _, v := range values {
		if err := b.append(v, limit); err != nil {
			t.Fatalf("append(%d, %d): %v", v, limit, err)
		}
	}

	if got := b.len(); got != uint64(len(values)) {
		t.Fatalf("len() = %d, want %d", got, len(values))
	}

	for i, want := range values {
		got, err := b.get(uint64(i), limit)
		if err != nil {
			t.Fatalf("get(%d): %v", i, err)
		}
		if got != want {
			t.Fatalf("get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestBitBufferAppendExceedsLimit(t *testing.T) {
	var b bitBuffer
	if err := b.append(5, 4); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("append(5, 4) = %v, want invalid-argument", err)
	}
}

func TestBitBufferGetOutOfRange(t *testing.T) {
	var b bitBuffer
	if err := b.append(1, 1); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := b.get(1, 1); !IsKind(err, KindOutOfRange) {
		t.Fatalf("get(1, 1) = %v, want out-of-range", err)
	}
}

func TestBitBufferReset(t *testing.T) {
	var b bitBuffer
	_ = b.append(1, 1)
	b.reset()
	if !b.isEmpty() {
		t.Fatalf("isEmpty() = false after reset")
	}
	if b.len() != 0 {
		t.Fatalf("len() = %d after reset, want 0", b.len())
	}
}
