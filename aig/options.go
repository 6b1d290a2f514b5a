package aig

// Options configures how a Store parses its source. The zero value
// (Strict: false, Eager: false) is the most permissive, laziest mode.
// Grounded on nes.NewConsole's single debug bool toggle — a plain
// struct of constructor parameters, not a config-file/env layer; there
// is no daemon here for such a layer to serve.
type Options struct {
	// Strict enforces exact AIGER whitespace (a single space between
	// fields, a single trailing newline) and canonical literal
	// positions for inputs and latch currents. A non-canonical AND-gate
	// LHS is accepted in both modes; it materializes and_lhs.
	Strict bool

	// Eager parses the entire source up front at construction time
	// instead of advancing the parser lazily as accessors demand.
	Eager bool
}
