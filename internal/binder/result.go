package binder

import (
	"argot/internal/spec"
)

// Binding is one resolved value. Explicit is true only when the value
// came from argv tokens; values taken from the environment hook or a
// declared default keep it false, which is what the validator's
// "explicitly set" rule tests.
type Binding struct {
	Value    spec.Value
	Explicit bool
	FromEnv  bool
	// Raw keeps the raw texts that produced the value, in appearance
	// order. Empty for defaulted bindings.
	Raw []string
}

// Frame is the bound state of one scope. Frames stack root to leaf as
// binding descends into subcommands; identities are unique within a
// frame only.
type Frame struct {
	// Command is the declared subcommand name ("" for the root).
	Command string
	Spec    *spec.Spec
	Values  map[string]Binding

	// slot is the next positional slot to fill; bound counts
	// positional values bound in this frame. bound stays 0 while
	// subcommand matching is still allowed.
	slot  int
	bound int
}

// Result is the outcome of a successful binding pass, owned by the
// caller. Path holds the resolved subcommand names root to leaf; Rest
// holds raw tokens past the "--" terminator that no positional slot
// absorbed.
type Result struct {
	Frames []Frame
	Path   []string
	Rest   []string
}

// Leaf returns the innermost frame.
func (r *Result) Leaf() *Frame {
	return &r.Frames[len(r.Frames)-1]
}

// Lookup finds a binding by identity, searching leaf frame first.
func (r *Result) Lookup(name string) (Binding, bool) {
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if b, ok := r.Frames[i].Values[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Explicit reports whether the identity was set from argv tokens in
// the given frame.
func (fr *Frame) Explicit(name string) bool {
	b, ok := fr.Values[name]
	return ok && b.Explicit
}

// Set reports whether the identity carries any value in the frame,
// explicit or defaulted.
func (fr *Frame) Set(name string) bool {
	_, ok := fr.Values[name]
	return ok
}
