package aig

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
)

// Store is a lazily-loading, random-access AIG. It composes a bitBuffer
// per packed array, a cursor driving the resumable parser, and a
// flat symbol table, the same way nes.NewConsole wires RAM, PPU, APU,
// Controller and CPUBus together behind one constructor: the caller
// only ever sees Store's methods, never the parser/bitBuffer/cursor
// machinery underneath.
type Store struct {
	r      *bufio.Reader
	closer io.Closer // non-nil only when this Store owns the underlying file

	strict bool
	eager  bool
	binary bool

	maxIndex    uint64
	inputCount  uint64
	latchCount  uint64
	outputCount uint64
	andCount    uint64

	cur cursor

	latchNext bitBuffer
	outputs   bitBuffer
	andLHS    bitBuffer // empty until some gate's LHS deviates from canonical
	andRHS    bitBuffer // interleaved rhs0, rhs1 pairs

	symtab []*string // flat: [0,I) inputs, [I,I+L) latches, [I+L,I+L+O) outputs

	levels   []uint64 // memoized per variable index, valid when levelSet[v]
	levelSet []bool
}

// New wraps an already-open, positioned reader as an AIG source. The
// caller retains ownership of r; Close never closes it. Options
// controls strictness and eager parsing.
func New(r io.Reader, opts Options) (*Store, error) {
	s := &Store{
		r:      bufio.NewReader(r),
		strict: opts.Strict,
		eager:  opts.Eager,
	}
	if err := s.parseHeader(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadReader is an alias of New retained for parity with
// original_source/libaig/src/load.c's aig_loadf, which likewise never
// closes the stream the caller handed it, on success or failure.
func LoadReader(r io.Reader, opts Options) (*Store, error) {
	return New(r, opts)
}

// Load opens path and parses it as an AIG source. Unlike LoadReader,
// Load owns the file it opens: if parsing fails, Load closes the file
// itself before returning, mirroring aig_load's behavior precisely
// (aig_loadf leaves that decision to the caller since the caller owns
// the handle there).
func Load(path string, opts Options) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(KindIO, err, "opening %s", path)
	}

	s := &Store{
		r:      bufio.NewReader(f),
		closer: f,
		strict: opts.Strict,
		eager:  opts.Eager,
	}
	if err := s.parseHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// Parse treats content as an in-memory AIGER source. The returned
// Store owns nothing closeable; Close is a no-op.
func Parse(content string, opts Options) (*Store, error) {
	return New(strings.NewReader(content), opts)
}

// Close releases any file this Store itself opened via Load. It is a
// no-op for Stores built with New/LoadReader/Parse, which never took
// ownership of their source.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	if err != nil {
		return wrapErr(KindIO, err, "closing AIG source")
	}
	return nil
}

// MaxIndex returns M, the header's maximum variable index.
func (s *Store) MaxIndex() uint64 { return s.maxIndex }

// InputCount returns I, the number of inputs.
func (s *Store) InputCount() uint64 { return s.inputCount }

// LatchCount returns L, the number of latches.
func (s *Store) LatchCount() uint64 { return s.latchCount }

// OutputCount returns O, the number of outputs.
func (s *Store) OutputCount() uint64 { return s.outputCount }

// AndCount returns A, the number of AND gates.
func (s *Store) AndCount() uint64 { return s.andCount }

// Binary reports whether the source used the binary ("aig") dialect.
func (s *Store) Binary() bool { return s.binary }

// getInput returns the variable index of input i, inferring its
// position since inputs are never value-stored (see
// original_source/libaig/src/infer.c's get_inferred_input). withSymbol
// additionally resolves i's name, advancing the symbol table section
// if it has not yet been read.
func (s *Store) getInput(i uint64, withSymbol bool) (Node, error) {
	if i >= s.inputCount {
		return Node{}, newErr(KindOutOfRange, "input index %d out of range (I=%d)", i, s.inputCount)
	}
	if err := s.ensureInputsParsed(i); err != nil {
		return Node{}, err
	}
	n := Node{Kind: NodeInput, VariableIndex: i + 1}
	if withSymbol {
		if err := s.ensureSymtabParsed(i); err != nil {
			return Node{}, err
		}
		n.Name = s.symtab[i]
	}
	return n, nil
}

// GetInput returns input i along with its symbol table name, if any.
func (s *Store) GetInput(i uint64) (Node, error) { return s.getInput(i, true) }

// GetInputNoSymbol is GetInput without the symbol-table lookup,
// avoiding driving the parser past the AND-gate section when the
// caller does not need names.
func (s *Store) GetInputNoSymbol(i uint64) (Node, error) { return s.getInput(i, false) }

func (s *Store) getLatch(i uint64, withSymbol bool) (Node, error) {
	if i >= s.latchCount {
		return Node{}, newErr(KindOutOfRange, "latch index %d out of range (L=%d)", i, s.latchCount)
	}
	if err := s.ensureLatchesParsed(i); err != nil {
		return Node{}, err
	}
	next, err := s.latchNext.get(i, s.litLimit())
	if err != nil {
		return Node{}, err
	}
	n := Node{
		Kind:          NodeLatch,
		VariableIndex: s.inputCount + i + 1,
		Next:          literalVar(next),
		NextNegated:   literalNegated(next),
	}
	if withSymbol {
		if err := s.ensureSymtabParsed(s.inputCount + i); err != nil {
			return Node{}, err
		}
		n.Name = s.symtab[s.inputCount+i]
	}
	return n, nil
}

// GetLatch returns latch i along with its symbol table name, if any.
func (s *Store) GetLatch(i uint64) (Node, error) { return s.getLatch(i, true) }

// GetLatchNoSymbol is GetLatch without the symbol-table lookup.
func (s *Store) GetLatchNoSymbol(i uint64) (Node, error) { return s.getLatch(i, false) }

func (s *Store) getOutput(i uint64, withSymbol bool) (Node, error) {
	if i >= s.outputCount {
		return Node{}, newErr(KindOutOfRange, "output index %d out of range (O=%d)", i, s.outputCount)
	}
	if err := s.ensureOutputsParsed(i); err != nil {
		return Node{}, err
	}
	lit, err := s.outputs.get(i, s.litLimit())
	if err != nil {
		return Node{}, err
	}
	n := Node{
		Kind:                NodeOutput,
		TargetVariableIndex: literalVar(lit),
		Negated:             literalNegated(lit),
	}
	if withSymbol {
		idx := s.inputCount + s.latchCount + i
		if err := s.ensureSymtabParsed(idx); err != nil {
			return Node{}, err
		}
		n.Name = s.symtab[idx]
	}
	return n, nil
}

// GetOutput returns output i along with its symbol table name, if any.
func (s *Store) GetOutput(i uint64) (Node, error) { return s.getOutput(i, true) }

// GetOutputNoSymbol is GetOutput without the symbol-table lookup.
func (s *Store) GetOutputNoSymbol(i uint64) (Node, error) { return s.getOutput(i, false) }

// GetAnd returns AND gate i. AND gates carry no symbol table entries.
// LHS is inferred from gate position unless and_lhs has been
// materialized by an earlier deviation (see parseOneAnd).
func (s *Store) GetAnd(i uint64) (Node, error) {
	if i >= s.andCount {
		return Node{}, newErr(KindOutOfRange, "and index %d out of range (A=%d)", i, s.andCount)
	}
	if err := s.ensureAndsParsed(i); err != nil {
		return Node{}, err
	}

	v := s.inputCount + s.latchCount + i + 1
	if !s.andLHS.isEmpty() {
		lhsLit, err := s.andLHS.get(i, s.litLimit())
		if err != nil {
			return Node{}, err
		}
		v = literalVar(lhsLit)
	}

	rhs0, err := s.andRHS.get(2*i, s.litLimit())
	if err != nil {
		return Node{}, err
	}
	rhs1, err := s.andRHS.get(2*i+1, s.litLimit())
	if err != nil {
		return Node{}, err
	}

	return Node{
		Kind:          NodeAnd,
		VariableIndex: v,
		LHS:           v,
		RHS:           [2]uint64{literalVar(rhs0), literalVar(rhs1)},
		RHSNegated:    [2]bool{literalNegated(rhs0), literalNegated(rhs1)},
	}, nil
}

// GetNode dispatches on where variable index v falls among the header
// counts, returning the node that owns it. v==0 is the constant FALSE
// node. Driving the parser to completion is unavoidable here since
// membership in the AND range cannot be decided without having parsed
// every AND gate's (possibly materialized) LHS.
func (s *Store) GetNode(v uint64) (Node, error) {
	if v == 0 {
		return Node{Kind: NodeConstant, IsTrue: false}, nil
	}
	owned := s.inputCount + s.latchCount + s.andCount
	if v > owned {
		return Node{}, newErr(KindOutOfRange, "variable index %d exceeds I+L+A=%d", v, owned)
	}
	if v <= s.inputCount {
		return s.GetInput(v - 1)
	}
	if v <= s.inputCount+s.latchCount {
		return s.GetLatch(v - s.inputCount - 1)
	}
	if err := s.parseAll(); err != nil {
		return Node{}, err
	}
	for i := uint64(0); i < s.andCount; i++ {
		n, err := s.GetAnd(i)
		if err != nil {
			return Node{}, err
		}
		if n.VariableIndex == v {
			return n, nil
		}
	}
	return Node{}, newErr(KindNotFound, "no AND gate owns variable index %d", v)
}

// LookupByName returns the node whose symbol table entry equals name,
// exactly as original_source/libaig/src/lookup.c's aig_lookup_node
// performs a linear scan over the full symbol table. The entire source
// must be parsed first since a name may label any input, latch, or
// output regardless of file position.
func (s *Store) LookupByName(name string) (Node, error) {
	if err := s.parseAll(); err != nil {
		return Node{}, err
	}

	for i := uint64(0); i < s.inputCount; i++ {
		if s.symtab[i] != nil && *s.symtab[i] == name {
			return s.GetInputNoSymbol(i)
		}
	}
	for i := uint64(0); i < s.latchCount; i++ {
		idx := s.inputCount + i
		if s.symtab[idx] != nil && *s.symtab[idx] == name {
			return s.GetLatchNoSymbol(i)
		}
	}
	for i := uint64(0); i < s.outputCount; i++ {
		idx := s.inputCount + s.latchCount + i
		if s.symtab[idx] != nil && *s.symtab[idx] == name {
			return s.GetOutputNoSymbol(i)
		}
	}

	glog.V(1).Infof("aig: LookupByName(%q): no match among %d symbols", name, len(s.symtab))
	return Node{}, newErr(KindNotFound, "no symbol named %q", name)
}
