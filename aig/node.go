package aig

// NodeKind tags which variant a Node holds. Dispatch over NodeKind
// (here, and in GetNode's range check in store.go) is grounded on
// nes/mapper.go's NewMapper(number, ...) switch, which picks a mapper
// implementation by a small integer the same way GetNode picks a node
// kind by where a variable index falls.
type NodeKind int

const (
	NodeConstant NodeKind = iota
	NodeInput
	NodeLatch
	NodeOutput
	NodeAnd
)

func (k NodeKind) String() string {
	switch k {
	case NodeConstant:
		return "constant"
	case NodeInput:
		return "input"
	case NodeLatch:
		return "latch"
	case NodeOutput:
		return "output"
	case NodeAnd:
		return "and"
	default:
		return "unknown"
	}
}

// Node is a value-type view of one graph node. Not every field is
// meaningful for every Kind; see the per-kind comments below. Name is a
// borrowed pointer into the store's symbol table (per spec §3's
// ownership model) valid until the store is discarded or, in lax mode,
// until the same slot's symbol is overwritten.
type Node struct {
	Kind NodeKind

	// IsTrue is meaningful only for NodeConstant: true names literal 1
	// (constant TRUE), false names literal 0/variable 0 (constant
	// FALSE). The library only ever constructs the FALSE constant
	// (variable 0); TRUE is reachable solely via a negated reference to
	// it, never as its own node.
	IsTrue bool

	// VariableIndex is this node's own net index. Meaningless for
	// NodeConstant (always 0) and NodeOutput (outputs are addressed by
	// literal, not variable index — see TargetVariableIndex).
	VariableIndex uint64

	// Name is the symbol table entry for this node's position, if any.
	// Set only for NodeInput, NodeLatch, and NodeOutput.
	Name *string

	// Next and NextNegated describe a latch's next-state reference.
	// Meaningful only for NodeLatch.
	Next        uint64
	NextNegated bool

	// TargetVariableIndex and Negated describe which net an output
	// reflects, and with what polarity. Meaningful only for NodeOutput.
	// Named accurately per spec.md §9's design note: the source's
	// "output" node conflates this with VariableIndex, which is
	// preserved in spirit but not in naming here.
	TargetVariableIndex uint64
	Negated             bool

	// LHS, RHS and RHSNegated describe an AND gate. Meaningful only for
	// NodeAnd; LHS duplicates VariableIndex (an AND gate's own net
	// index) for symmetry with the source's node.and_gate.lhs field.
	LHS        uint64
	RHS        [2]uint64
	RHSNegated [2]bool
}

// literalVar extracts the variable index encoded in literal lit.
func literalVar(lit uint64) uint64 {
	return lit / 2
}

// literalNegated reports whether literal lit carries the negated
// polarity bit.
func literalNegated(lit uint64) bool {
	return lit%2 == 1
}

// makeLiteral encodes a (variable, polarity) pair as a literal, the
// inverse of literalVar/literalNegated. Grounded on the same
// shift/mask-pair idiom as nes/cpu.go's status.encode, generalized from
// eight fixed flag bits to one polarity bit over an arbitrary variable.
func makeLiteral(v uint64, negated bool) uint64 {
	lit := v * 2
	if negated {
		lit++
	}
	return lit
}
