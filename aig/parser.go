package aig

import (
	"io"
	"math"
	"strings"

	"github.com/golang/glog"
)

// This file implements C2, the resumable section-staged parser. Each
// parse*Section method assumes the cursor already sits inside its
// section, resumes from the cursor's index, and stops at the requested
// index or moves the cursor on to the next section, the way
// nes/cpubus.go and nes/ppubus.go dispatch reads and writes by address
// range -- here the dispatch is by cursor section instead of address.
// Exact header/number/whitespace grammar is grounded on
// original_source/libaig/src/parse.c.

func isAigerSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// readByte reads one byte, distinguishing a clean end of input (eof
// true, err nil) from a genuine stream error (err of KindIO).
func (s *Store) readByte() (b byte, eof bool, err error) {
	b, err = s.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, true, nil
		}
		return 0, false, wrapErr(KindIO, err, "reading AIGER source")
	}
	return b, false, nil
}

func (s *Store) peekByte() (b byte, eof bool, err error) {
	b, eof, err = s.readByte()
	if err != nil || eof {
		return b, eof, err
	}
	_ = s.r.UnreadByte()
	return b, false, nil
}

func (s *Store) unreadByte() {
	_ = s.r.UnreadByte()
}

// expectByte requires the next byte to be exactly c.
func (s *Store) expectByte(c byte) error {
	b, eof, err := s.readByte()
	if err != nil {
		return err
	}
	if eof {
		return newErr(KindIllegalSequence, "expected %q, found end of input", c)
	}
	if b != c {
		s.unreadByte()
		return newErr(KindIllegalSequence, "expected %q, found %q", c, b)
	}
	return nil
}

// skipWhitespaceLax consumes a run of zero or more whitespace bytes.
func (s *Store) skipWhitespaceLax() error {
	for {
		b, eof, err := s.readByte()
		if err != nil {
			return err
		}
		if eof {
			return nil
		}
		if !isAigerSpace(b) {
			s.unreadByte()
			return nil
		}
	}
}

// skipFieldSep consumes the separator required between two fields on
// the same line: exactly one space in strict mode, any run of
// whitespace in lax mode.
func (s *Store) skipFieldSep() error {
	if s.strict {
		return s.expectByte(' ')
	}
	return s.skipWhitespaceLax()
}

// skipLineEnd consumes the required line terminator: exactly one
// newline in strict mode, any run of whitespace in lax mode.
func (s *Store) skipLineEnd() error {
	if s.strict {
		return s.expectByte('\n')
	}
	return s.skipWhitespaceLax()
}

// parseNum reads an unsigned decimal integer. It fails with
// KindIllegalSequence if no digit is present, KindOverflow if the
// accumulated value would exceed 2^64-1.
func (s *Store) parseNum() (uint64, error) {
	b, eof, err := s.readByte()
	if err != nil {
		return 0, err
	}
	if eof || b < '0' || b > '9' {
		if !eof {
			s.unreadByte()
		}
		return 0, newErr(KindIllegalSequence, "expected a decimal digit")
	}

	v := uint64(b - '0')
	for {
		d, eof, err := s.readByte()
		if err != nil {
			return 0, err
		}
		if eof {
			break
		}
		if d < '0' || d > '9' {
			s.unreadByte()
			break
		}
		digit := uint64(d - '0')
		if (math.MaxUint64-digit)/10 < v {
			return 0, newErr(KindOverflow, "decimal literal exceeds 2^64-1")
		}
		v = v*10 + digit
	}
	return v, nil
}

// parseLiteralLine parses a single decimal literal terminated by the
// mode-appropriate line end, used for input, output, and
// single-literal binary-dialect latch lines.
func (s *Store) parseLiteralLine() (uint64, error) {
	v, err := s.parseNum()
	if err != nil {
		return 0, err
	}
	if err := s.skipLineEnd(); err != nil {
		return 0, err
	}
	return v, nil
}

// requireHeaderTerminator consumes the header line's terminator,
// rejecting a further field on the header line the way AIGER 1.9
// extensions would introduce one (spec.md's out-of-scope note).
func (s *Store) requireHeaderTerminator() error {
	if s.strict {
		return s.expectByte('\n')
	}

	sawNewline := false
	for {
		b, eof, err := s.readByte()
		if err != nil {
			return err
		}
		if eof {
			break
		}
		if !isAigerSpace(b) {
			s.unreadByte()
			break
		}
		if b == '\n' {
			sawNewline = true
		}
	}
	if !sawNewline {
		return newErr(KindUnsupported, "AIGER 1.9 header extensions are not supported")
	}
	return nil
}

// litLimit is the inclusive upper bound every stored literal must
// satisfy: 2M+1, per spec.md §3.
func (s *Store) litLimit() uint64 {
	return 2*s.maxIndex + 1
}

// parseHeader parses the three-byte dialect magic and the five decimal
// header counts, allocating the store's buffers once M, I, L, O, A are
// known. It is called exactly once, synchronously, at construction.
func (s *Store) parseHeader() error {
	if !s.strict {
		if err := s.skipWhitespaceLax(); err != nil {
			return err
		}
	}

	b0, eof, err := s.readByte()
	if err != nil {
		return err
	}
	if eof || b0 != 'a' {
		return newErr(KindIllegalSequence, "expected AIGER magic 'aag' or 'aig'")
	}

	b1, eof, err := s.readByte()
	if err != nil {
		return err
	}
	if eof {
		return newErr(KindIllegalSequence, "truncated AIGER magic")
	}
	switch b1 {
	case 'a':
		s.binary = false
	case 'i':
		s.binary = true
	default:
		return newErr(KindIllegalSequence, "unknown AIGER dialect byte %q", b1)
	}

	b2, eof, err := s.readByte()
	if err != nil {
		return err
	}
	if eof || b2 != 'g' {
		return newErr(KindIllegalSequence, "malformed AIGER magic")
	}

	if err := s.skipFieldSep(); err != nil {
		return err
	}
	if s.maxIndex, err = s.parseNum(); err != nil {
		return err
	}
	if err := s.skipFieldSep(); err != nil {
		return err
	}
	if s.inputCount, err = s.parseNum(); err != nil {
		return err
	}
	if err := s.skipFieldSep(); err != nil {
		return err
	}
	if s.latchCount, err = s.parseNum(); err != nil {
		return err
	}
	if err := s.skipFieldSep(); err != nil {
		return err
	}
	if s.outputCount, err = s.parseNum(); err != nil {
		return err
	}
	if err := s.skipFieldSep(); err != nil {
		return err
	}
	if s.andCount, err = s.parseNum(); err != nil {
		return err
	}
	if err := s.requireHeaderTerminator(); err != nil {
		return err
	}

	if s.maxIndex < s.inputCount+s.latchCount+s.andCount {
		return newErr(KindOutOfRange, "M=%d must be >= I+L+A=%d", s.maxIndex, s.inputCount+s.latchCount+s.andCount)
	}
	if s.strict && s.binary && s.maxIndex != s.inputCount+s.latchCount+s.andCount {
		return newErr(KindOutOfRange, "strict binary AIGER requires M == I+L+A")
	}

	s.symtab = make([]*string, s.inputCount+s.latchCount+s.outputCount)
	s.levels = make([]uint64, s.maxIndex+1)
	s.levelSet = make([]bool, s.maxIndex+1)
	s.cur = cursor{section: sectionInputs, index: 0}

	glog.V(1).Infof("aig: header M=%d I=%d L=%d O=%d A=%d binary=%v strict=%v",
		s.maxIndex, s.inputCount, s.latchCount, s.outputCount, s.andCount, s.binary, s.strict)

	if s.eager {
		return s.advanceTo(sectionDone)
	}
	return nil
}

// parseOneInput consumes (or, for the binary dialect, skips) input
// line i. Inputs are never value-stored -- see SPEC_FULL.md §5 -- a
// deviating literal is only ever checked, never kept, matching
// original_source/libaig/src/infer.c's get_input always falling back
// to the position formula.
func (s *Store) parseOneInput(i uint64) error {
	if s.binary {
		return nil
	}
	lit, err := s.parseLiteralLine()
	if err != nil {
		return err
	}
	if s.strict {
		canonical := makeLiteral(i+1, false)
		if lit != canonical {
			return newErr(KindIllegalSequence, "input %d literal %d deviates from canonical %d in strict mode", i, lit, canonical)
		}
	}
	return nil
}

func (s *Store) parseInputsSection(upto uint64) error {
	for s.cur.index <= upto && s.cur.index < s.inputCount {
		if err := s.parseOneInput(s.cur.index); err != nil {
			return err
		}
		s.cur.index++
	}
	if s.cur.index >= s.inputCount {
		s.cur.section = sectionLatches
		s.cur.index = 0
	}
	return nil
}

// parseOneLatch consumes latch line i. Latch current is, like input
// position, never value-stored; only next is meaningful data.
func (s *Store) parseOneLatch(i uint64) error {
	var nextLit uint64
	var err error

	if s.binary {
		nextLit, err = s.parseLiteralLine()
		if err != nil {
			return err
		}
	} else {
		currentLit, err := s.parseNum()
		if err != nil {
			return err
		}
		if err := s.skipFieldSep(); err != nil {
			return err
		}
		nextLit, err = s.parseNum()
		if err != nil {
			return err
		}
		if err := s.skipLineEnd(); err != nil {
			return err
		}
		if s.strict {
			canonical := makeLiteral(s.inputCount+i+1, false)
			if currentLit != canonical {
				return newErr(KindIllegalSequence, "latch %d current %d deviates from canonical %d in strict mode", i, currentLit, canonical)
			}
		}
	}

	if nextLit > s.litLimit() {
		return newErr(KindOutOfRange, "latch %d next literal %d exceeds 2M+1", i, nextLit)
	}
	return s.latchNext.append(nextLit, s.litLimit())
}

func (s *Store) parseLatchesSection(upto uint64) error {
	for s.cur.index <= upto && s.cur.index < s.latchCount {
		if err := s.parseOneLatch(s.cur.index); err != nil {
			return err
		}
		s.cur.index++
	}
	if s.cur.index >= s.latchCount {
		s.cur.section = sectionOutputs
		s.cur.index = 0
	}
	return nil
}

func (s *Store) parseOneOutput(i uint64) error {
	lit, err := s.parseLiteralLine()
	if err != nil {
		return err
	}
	if lit > s.litLimit() {
		return newErr(KindOutOfRange, "output %d literal %d exceeds 2M+1", i, lit)
	}
	return s.outputs.append(lit, s.litLimit())
}

func (s *Store) parseOutputsSection(upto uint64) error {
	for s.cur.index <= upto && s.cur.index < s.outputCount {
		if err := s.parseOneOutput(s.cur.index); err != nil {
			return err
		}
		s.cur.index++
	}
	if s.cur.index >= s.outputCount {
		s.cur.section = sectionAnds
		s.cur.index = 0
	}
	return nil
}

// parseOneAnd consumes AND gate line i in the ASCII dialect, applying
// the inferable-then-stored LHS optimization from
// original_source/libaig/src/infer.c: a gate whose LHS is still
// canonical, while no earlier gate has forced materialization, is left
// out of and_lhs entirely; the first deviation back-fills every prior
// gate's canonical LHS before appending its own. The binary dialect's
// delta-compressed encoding is unimplemented per spec.md §4.2 and
// Non-goals.
func (s *Store) parseOneAnd(i uint64) error {
	if s.binary {
		return newErr(KindUnsupported, "binary AND-gate decoding is not implemented")
	}

	lhsLit, err := s.parseNum()
	if err != nil {
		return err
	}
	if err := s.skipFieldSep(); err != nil {
		return err
	}
	rhs0Lit, err := s.parseNum()
	if err != nil {
		return err
	}
	if err := s.skipFieldSep(); err != nil {
		return err
	}
	rhs1Lit, err := s.parseNum()
	if err != nil {
		return err
	}
	if err := s.skipLineEnd(); err != nil {
		return err
	}

	limit := s.litLimit()
	if lhsLit > limit || rhs0Lit > limit || rhs1Lit > limit {
		return newErr(KindOutOfRange, "AND gate %d literal exceeds 2M+1", i)
	}

	canonical := makeLiteral(s.inputCount+s.latchCount+i+1, false)
	if lhsLit == canonical && s.andLHS.isEmpty() {
		// inferred position; nothing to store
	} else {
		if s.andLHS.isEmpty() {
			glog.V(1).Infof("aig: AND gate %d LHS %d deviates from canonical %d, materializing and_lhs", i, lhsLit, canonical)
			for j := uint64(0); j < i; j++ {
				c := makeLiteral(s.inputCount+s.latchCount+j+1, false)
				if err := s.andLHS.append(c, limit); err != nil {
					return err
				}
			}
		}
		if err := s.andLHS.append(lhsLit, limit); err != nil {
			return err
		}
	}

	if err := s.andRHS.append(rhs0Lit, limit); err != nil {
		return err
	}
	return s.andRHS.append(rhs1Lit, limit)
}

func (s *Store) parseAndsSection(upto uint64) error {
	for s.cur.index <= upto && s.cur.index < s.andCount {
		if err := s.parseOneAnd(s.cur.index); err != nil {
			return err
		}
		s.cur.index++
	}
	if s.cur.index >= s.andCount {
		s.cur.section = sectionSymtab
		s.cur.index = 0
	}
	return nil
}

// readSymbolName reads a symbol name, which runs to the next newline
// (or end of input) and may contain spaces or be empty.
func (s *Store) readSymbolName() (string, error) {
	var sb strings.Builder
	for {
		b, eof, err := s.readByte()
		if err != nil {
			return "", err
		}
		if eof || b == '\n' {
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

// symtabIndex maps a symbol record's (kind, position) to its composite
// index in the flat symtab array (i -> pos, l -> I+pos, o -> I+L+pos).
func (s *Store) symtabIndex(kind byte, pos uint64) (uint64, error) {
	switch kind {
	case 'i':
		if pos >= s.inputCount {
			return 0, newErr(KindOutOfRange, "symbol position %d out of range for inputs", pos)
		}
		return pos, nil
	case 'l':
		if pos >= s.latchCount {
			return 0, newErr(KindOutOfRange, "symbol position %d out of range for latches", pos)
		}
		return s.inputCount + pos, nil
	case 'o':
		if pos >= s.outputCount {
			return 0, newErr(KindOutOfRange, "symbol position %d out of range for outputs", pos)
		}
		return s.inputCount + s.latchCount + pos, nil
	default:
		return 0, newErr(KindInvalidArgument, "unknown symbol kind %q", kind)
	}
}

// parseSymtabSection consumes `<kind><pos> <name>\n` records until
// the record at index upto (counting records from 0) has been read, a
// comment marker 'c' is found, or the
// stream ends. A leading 'c' or a clean end of stream both terminate
// the section (cursor -> DONE) without error.
func (s *Store) parseSymtabSection(upto uint64) error {
	for s.cur.index <= upto {
		if !s.strict {
			if err := s.skipWhitespaceLax(); err != nil {
				return err
			}
		}

		b, eof, err := s.peekByte()
		if err != nil {
			return err
		}
		if eof {
			s.cur.section = sectionDone
			return nil
		}
		if b == 'c' {
			_, _, _ = s.readByte()
			s.cur.section = sectionDone
			return nil
		}
		if b != 'i' && b != 'l' && b != 'o' {
			return newErr(KindIllegalSequence, "expected symbol kind 'i', 'l', 'o', or 'c', found %q", b)
		}
		_, _, _ = s.readByte()

		pos, err := s.parseNum()
		if err != nil {
			return err
		}
		if err := s.skipFieldSep(); err != nil {
			return err
		}
		name, err := s.readSymbolName()
		if err != nil {
			return err
		}

		idx, err := s.symtabIndex(b, pos)
		if err != nil {
			return err
		}
		if s.strict && s.symtab[idx] != nil {
			return newErr(KindAlreadyExists, "duplicate symbol for position %d", idx)
		}
		s.symtab[idx] = &name

		s.cur.index++
	}
	return nil
}

// advanceTo drives the cursor's state machine through every
// intervening section until it reaches target, fully consuming each
// one. This is how a request for a later section transparently
// completes earlier, still-unread sections.
func (s *Store) advanceTo(target section) error {
	for s.cur.section < target {
		var err error
		switch s.cur.section {
		case sectionInputs:
			err = s.parseInputsSection(math.MaxUint64)
		case sectionLatches:
			err = s.parseLatchesSection(math.MaxUint64)
		case sectionOutputs:
			err = s.parseOutputsSection(math.MaxUint64)
		case sectionAnds:
			err = s.parseAndsSection(math.MaxUint64)
		case sectionSymtab:
			err = s.parseSymtabSection(math.MaxUint64)
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ensureInputsParsed, ensureLatchesParsed, ensureOutputsParsed,
// ensureAndsParsed and ensureSymtabParsed are the idempotent,
// cursor-advancing parse_* operations from spec.md §4.2's public
// surface: passing an upto already consumed returns immediately;
// passing a higher upto advances through any preceding unread sections
// first.

func (s *Store) ensureInputsParsed(upto uint64) error {
	if err := s.advanceTo(sectionInputs); err != nil {
		return err
	}
	if s.cur.section != sectionInputs {
		return nil
	}
	return s.parseInputsSection(upto)
}

func (s *Store) ensureLatchesParsed(upto uint64) error {
	if err := s.advanceTo(sectionLatches); err != nil {
		return err
	}
	if s.cur.section != sectionLatches {
		return nil
	}
	return s.parseLatchesSection(upto)
}

func (s *Store) ensureOutputsParsed(upto uint64) error {
	if err := s.advanceTo(sectionOutputs); err != nil {
		return err
	}
	if s.cur.section != sectionOutputs {
		return nil
	}
	return s.parseOutputsSection(upto)
}

func (s *Store) ensureAndsParsed(upto uint64) error {
	if err := s.advanceTo(sectionAnds); err != nil {
		return err
	}
	if s.cur.section != sectionAnds {
		return nil
	}
	return s.parseAndsSection(upto)
}

func (s *Store) ensureSymtabParsed(upto uint64) error {
	if err := s.advanceTo(sectionSymtab); err != nil {
		return err
	}
	if s.cur.section != sectionSymtab {
		return nil
	}
	return s.parseSymtabSection(upto)
}

// parseAll drives the cursor all the way to DONE, consuming every
// section but the free-form comments after a 'c' marker.
func (s *Store) parseAll() error {
	return s.advanceTo(sectionDone)
}
