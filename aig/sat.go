package aig

import (
	"fmt"
	"io"
	"strings"
)

// NodeSATTerm returns n's SMT-LIB2 term, the same string declareNode/
// constrainNode reference when n appears as an operand elsewhere,
// exposed standalone for ad-hoc use per spec.md §6.2's
// aig_node_to_sat_term. Outputs have no term of their own; they are
// not declarable nodes, so NodeSATTerm returns their target's term,
// wrapped in "(not ...)" when the output is negated.
func NodeSATTerm(n Node) string {
	if n.Kind == NodeOutput {
		return negatedTerm(n.TargetVariableIndex, n.Negated)
	}
	return termName(n.VariableIndex)
}

// NodeSATDefine returns n's standalone declaration line, or "" for a
// constant or output (neither is declared; see declareNode). Exposed
// for ad-hoc use per spec.md §6.2's aig_node_to_sat_define.
func NodeSATDefine(n Node) string {
	var sb strings.Builder
	_ = declareNode(&sb, n)
	return sb.String()
}

// NodeSATConstraint returns n's standalone constraint line, or "" for
// a constant, input, or output (none is constrained; see
// constrainNode). Exposed for ad-hoc use per spec.md §6.2's
// aig_node_to_sat_constraint.
func NodeSATConstraint(n Node) string {
	var sb strings.Builder
	_ = constrainNode(&sb, n)
	return sb.String()
}

// termName renders the term for variable index v: the literal
// constant name for v==0 (this library only ever constructs the FALSE
// constant), or "s<v>" otherwise. Negation is applied by the caller,
// wrapping in "(not ...)", never baked into termName itself.
func termName(v uint64) string {
	if v == 0 {
		return "False"
	}
	return fmt.Sprintf("s%d", v)
}

// negatedTerm renders v's term, wrapped in "(not ...)" if negated.
func negatedTerm(v uint64, negated bool) string {
	t := termName(v)
	if negated {
		return fmt.Sprintf("(not %s)", t)
	}
	return t
}

// declareNode writes n's declaration, grounded on
// original_source/libaig/src/sat.c's node_to_sat_define: a
// "(declare-fun s<v> () Bool)" line with the node's symbol name
// appended as a trailing comment when it has one. Constants and
// outputs emit nothing -- constants need no declaration, and outputs
// reuse their target variable's existing term per spec.md §9's
// preserved-as-intentional design note, rather than redeclaring it as
// the original C tool does.
func declareNode(w io.Writer, n Node) error {
	if n.Kind == NodeConstant || n.Kind == NodeOutput {
		return nil
	}
	if n.Name != nil {
		_, err := fmt.Fprintf(w, "(declare-fun %s () Bool) ; %s\n", termName(n.VariableIndex), *n.Name)
		return err
	}
	_, err := fmt.Fprintf(w, "(declare-fun %s () Bool)\n", termName(n.VariableIndex))
	return err
}

// constrainNode writes n's constraint, grounded on node_to_sat_constraint.
// Constants, inputs, and outputs emit no constraint: a latch asserts
// its own term equal to its (possibly negated) next-state term; an AND
// gate asserts its own term equal to the conjunction of its (possibly
// negated) operand terms.
func constrainNode(w io.Writer, n Node) error {
	switch n.Kind {
	case NodeLatch:
		_, err := fmt.Fprintf(w, "(assert (= %s %s))\n",
			termName(n.VariableIndex), negatedTerm(n.Next, n.NextNegated))
		return err
	case NodeAnd:
		_, err := fmt.Fprintf(w, "(assert (= %s (and %s %s)))\n",
			termName(n.VariableIndex),
			negatedTerm(n.RHS[0], n.RHSNegated[0]),
			negatedTerm(n.RHS[1], n.RHSNegated[1]))
		return err
	default:
		return nil
	}
}

// WriteSMTLIB2 emits every node's declaration, then every node's
// constraint, grounded directly on
// original_source/libaig/src/sat.c's aig_to_sat_file: two full passes
// over the node set, the first writing only declarations, the second
// only constraints, so a constraint can never reference a name not yet
// declared above it. An AIG with no inputs, latches, or AND gates (and
// hence no declarable nodes) emits nothing at all.
func (s *Store) WriteSMTLIB2(w io.Writer) error {
	if err := s.parseAll(); err != nil {
		return err
	}

	it := s.NewNodeIter()
	for it.HasNext() {
		n, err := it.Next()
		if err != nil {
			return err
		}
		if err := declareNode(w, n); err != nil {
			return wrapErr(KindIO, err, "writing node declaration")
		}
	}

	it = s.NewNodeIter()
	for it.HasNext() {
		n, err := it.Next()
		if err != nil {
			return err
		}
		if err := constrainNode(w, n); err != nil {
			return wrapErr(KindIO, err, "writing node constraint")
		}
	}

	return nil
}

// ToSATString returns WriteSMTLIB2's output as a string, grounded on
// original_source/libaig/src/sat.c's aig_to_sat_string, which wraps
// aig_to_sat_file around an in-memory buffer for callers that want the
// whole document rather than a stream.
func (s *Store) ToSATString() (string, error) {
	var sb strings.Builder
	if err := s.WriteSMTLIB2(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
