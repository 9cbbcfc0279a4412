package spec

// ConstraintKind enumerates the structural constraints evaluated by
// the validator after a successful binding pass.
type ConstraintKind uint8

const (
	// Required is violated if the target is unset after defaulting.
	Required ConstraintKind = iota
	// MutuallyExclusive is violated if more than one target is
	// explicitly set. A value equal to its default but not supplied
	// on the command line does not count.
	MutuallyExclusive
	// RequiresAll is violated if the subject (Targets[0]) is set but
	// not all of its companions are.
	RequiresAll
	// RequiresOne is violated if the subject (Targets[0]) is set but
	// none of its companions is.
	RequiresOne
	// Conflicts is violated if both targets are explicitly set.
	Conflicts
)

func (k ConstraintKind) String() string {
	switch k {
	case Required:
		return "required"
	case MutuallyExclusive:
		return "mutually_exclusive"
	case RequiresAll:
		return "requires_all"
	case RequiresOne:
		return "requires_one"
	case Conflicts:
		return "conflicts"
	}
	return "unknown"
}

// ParseConstraintKind resolves a kind from its manifest form.
func ParseConstraintKind(s string) (ConstraintKind, bool) {
	switch s {
	case "required":
		return Required, true
	case "mutually_exclusive":
		return MutuallyExclusive, true
	case "requires_all":
		return RequiresAll, true
	case "requires_one":
		return RequiresOne, true
	case "conflicts":
		return Conflicts, true
	}
	return Required, false
}

// Constraint ties a kind to its targets. Targets reference option or
// positional identities declared in the same scope; for RequiresAll
// and RequiresOne the first target is the subject and the rest are its
// companions. Target order is declaration order and is preserved in
// violation records.
type Constraint struct {
	Kind    ConstraintKind
	Targets []string
}
