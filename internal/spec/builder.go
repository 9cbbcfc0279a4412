package spec

import (
	"argot/internal/diag"
)

// Builder accumulates registrations for one scope. Registration order
// is declaration order everywhere it matters: positional slots fill in
// it, constraints are evaluated in it, and snapshots preserve it.
type Builder struct {
	spec *Spec
}

func New(program string) *Builder {
	return &Builder{spec: &Spec{Program: program}}
}

func (b *Builder) Version(v string) *Builder {
	b.spec.Version = v
	return b
}

// Option registers an option from a struct literal. The Default value,
// if any, must already carry the option's Type.
func (b *Builder) Option(o Option) *Builder {
	b.spec.Options = append(b.spec.Options, &o)
	return b
}

// Flag is shorthand for a boolean option.
func (b *Builder) Flag(name, short, help string) *Builder {
	return b.Option(Option{Name: name, Short: short, Type: TypeBool, Help: help})
}

// Positional registers a positional slot.
func (b *Builder) Positional(p Positional) *Builder {
	b.spec.Positionals = append(b.spec.Positionals, &p)
	return b
}

// Command registers a subcommand. The Spec field of c is ignored; fn
// populates the nested scope through its own builder. fn may be nil
// for a command with no options of its own.
func (b *Builder) Command(c Subcommand, fn func(*Builder)) *Builder {
	child := New(b.spec.Program)
	if fn != nil {
		fn(child)
	}
	c.Spec = child.spec
	b.spec.Commands = append(b.spec.Commands, &c)
	return b
}

// Require declares that target must be set after defaulting.
func (b *Builder) Require(target string) *Builder {
	return b.constraint(Required, target)
}

// MutuallyExclusive declares that at most one of targets may be
// explicitly set.
func (b *Builder) MutuallyExclusive(targets ...string) *Builder {
	return b.constraint(MutuallyExclusive, targets...)
}

// RequiresAll declares that when subject is set, every companion must
// be set too.
func (b *Builder) RequiresAll(subject string, companions ...string) *Builder {
	return b.constraint(RequiresAll, append([]string{subject}, companions...)...)
}

// RequiresOne declares that when subject is set, at least one
// companion must be set.
func (b *Builder) RequiresOne(subject string, companions ...string) *Builder {
	return b.constraint(RequiresOne, append([]string{subject}, companions...)...)
}

// Conflicts declares that a and b may not both be explicitly set.
func (b *Builder) Conflicts(first, second string) *Builder {
	return b.constraint(Conflicts, first, second)
}

// Constraint registers a raw constraint record. Manifest loading goes
// through this; hand-written specs read better with the named methods
// above. Arity mistakes surface as diagnostics at Build time.
func (b *Builder) Constraint(kind ConstraintKind, targets ...string) *Builder {
	return b.constraint(kind, targets...)
}

func (b *Builder) constraint(kind ConstraintKind, targets ...string) *Builder {
	b.spec.Constraints = append(b.spec.Constraints, Constraint{Kind: kind, Targets: targets})
	return b
}

// Build verifies the structural invariants of every scope, reporting
// 3000-range diagnostics, and returns the finished spec. The spec is
// usable only when ok is true. Required option flags are synthesized
// into Required constraints placed ahead of explicitly declared ones,
// in option declaration order, so violation reports stay deterministic.
func (b *Builder) Build(reporter diag.Reporter) (*Spec, bool) {
	synthesizeRequired(b.spec)
	ok := verify(b.spec, reporter)
	b.spec.index()
	return b.spec, ok
}

func synthesizeRequired(s *Spec) {
	var req []Constraint
	for _, o := range s.Options {
		if o.Required {
			req = append(req, Constraint{Kind: Required, Targets: []string{o.Name}})
		}
	}
	for _, p := range s.Positionals {
		if p.Arity == ArityOne && p.Default == nil {
			req = append(req, Constraint{Kind: Required, Targets: []string{p.Name}})
		}
	}
	if len(req) > 0 {
		s.Constraints = append(req, s.Constraints...)
	}
	for _, c := range s.Commands {
		if c.Spec != nil {
			synthesizeRequired(c.Spec)
		}
	}
}
