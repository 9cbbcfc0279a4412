package spec

// Option describes a single named option. Name is the canonical long
// name without dashes; Short is a one-character alias ("" for none);
// Aliases holds additional long names.
type Option struct {
	Name       string
	Short      string
	Aliases    []string
	Type       Type
	Repeatable bool
	Required   bool
	Default    *Value
	// EnvVar, when non-empty, names an environment variable consulted
	// at bind time before the declared default is applied.
	EnvVar  string
	Choices []string
	Domain  *Domain
	Help    string
}

// IsFlag reports whether the option is a boolean flag, i.e. it never
// consumes a following token as its value.
func (o *Option) IsFlag() bool {
	return o.Type == TypeBool
}

// TakesValue reports whether the option consumes a value token.
func (o *Option) TakesValue() bool {
	return !o.IsFlag()
}

// Names returns every long name the option answers to, canonical first.
func (o *Option) Names() []string {
	out := make([]string, 0, 1+len(o.Aliases))
	out = append(out, o.Name)
	out = append(out, o.Aliases...)
	return out
}

// Positional describes a positional parameter slot.
type Positional struct {
	Name    string
	Arity   Arity
	Type    Type
	Default *Value
	Choices []string
	Help    string
}

// Subcommand describes a nested command owning its own Spec. The
// nested spec forms a tree, never a cycle; children hold no pointer
// back to the parent.
type Subcommand struct {
	Name    string
	Aliases []string
	// Default marks the subcommand entered when binding ends at the
	// owning scope without naming one.
	Default bool
	Spec    *Spec
}

// Matches reports whether name is the subcommand's name or an alias.
func (c *Subcommand) Matches(name string) bool {
	if name == c.Name {
		return true
	}
	for _, a := range c.Aliases {
		if name == a {
			return true
		}
	}
	return false
}
