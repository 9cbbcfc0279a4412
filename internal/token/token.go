package token

import (
	"argot/internal/argv"
)

// Token represents a single classified argv token with its location.
type Token struct {
	Kind Kind
	Span argv.Span
	// Text is the token as it appeared on the command line. For a
	// short option split out of a cluster this is the single flag
	// (e.g. "-b" out of "-abc").
	Text string
	// Name is the option name without dashes; empty for non-option
	// tokens.
	Name string
	// Inline is the value attached to the token itself: the part
	// after "=" in --name=value, or the cluster remainder consumed
	// by a value-taking short option.
	Inline string
	// HasInline distinguishes --name= (empty inline value) from
	// --name (no inline value).
	HasInline bool
}

// IsOption reports whether the token names an option.
func (t Token) IsOption() bool {
	return t.Kind == LongOpt || t.Kind == ShortOpt
}

// IsData reports whether the token can fill a value slot.
func (t Token) IsData() bool {
	return t.Kind == Value || t.Kind == RawTail
}
