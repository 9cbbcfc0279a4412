package spec

// Spec is the root description of one scope: its options, positional
// slots, subcommands, and constraints, in declaration order. Built
// once by a Builder and immutable afterwards; safe to share across
// concurrent parse invocations.
type Spec struct {
	Program string
	Version string

	Options     []*Option
	Positionals []*Positional
	Commands    []*Subcommand
	Constraints []Constraint

	// Lookup indexes, filled by Build. byLong maps canonical names
	// and aliases; byShort maps single-character aliases.
	byLong  map[string]*Option
	byShort map[string]*Option
}

// Option resolves a long name or alias (without dashes). Nil when the
// name is not declared in this scope.
func (s *Spec) Option(name string) *Option {
	return s.byLong[name]
}

// ShortOption resolves a one-character alias. Nil when not declared.
func (s *Spec) ShortOption(ch string) *Option {
	return s.byShort[ch]
}

// Command resolves a subcommand by name or alias. Nil when not declared.
func (s *Spec) Command(name string) *Subcommand {
	for _, c := range s.Commands {
		if c.Matches(name) {
			return c
		}
	}
	return nil
}

// DefaultCommand returns the subcommand marked as default, if any.
func (s *Spec) DefaultCommand() *Subcommand {
	for _, c := range s.Commands {
		if c.Default {
			return c
		}
	}
	return nil
}

// Positional resolves a positional slot by name. Nil when not declared.
func (s *Spec) Positional(name string) *Positional {
	for _, p := range s.Positionals {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// HasTarget reports whether name identifies an option or positional
// declared in this scope. Constraint targets must satisfy it.
func (s *Spec) HasTarget(name string) bool {
	if _, ok := s.byLong[name]; ok {
		return true
	}
	return s.Positional(name) != nil
}

// ShortTakesValue implements the tokenizer's option table: it reports
// whether the short option ch exists in this scope and consumes a
// value, which decides how a short cluster is split.
func (s *Spec) ShortTakesValue(ch string) bool {
	o := s.byShort[ch]
	return o != nil && o.TakesValue()
}

// index builds the lookup maps. Called by Build after verification;
// duplicates were already reported, later declarations lose.
func (s *Spec) index() {
	s.byLong = make(map[string]*Option, len(s.Options))
	s.byShort = make(map[string]*Option)
	for _, o := range s.Options {
		for _, n := range o.Names() {
			if _, exists := s.byLong[n]; !exists {
				s.byLong[n] = o
			}
		}
		if o.Short != "" {
			if _, exists := s.byShort[o.Short]; !exists {
				s.byShort[o.Short] = o
			}
		}
	}
	for _, c := range s.Commands {
		if c.Spec != nil {
			c.Spec.index()
		}
	}
}
