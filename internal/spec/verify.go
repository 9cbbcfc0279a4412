package spec

import (
	"fmt"

	"argot/internal/argv"
	"argot/internal/diag"
)

// verify checks the structural invariants of a scope and recurses into
// its subcommands. Diagnostics carry no argv span (nothing has been
// parsed yet); the offending identities go into Targets.
func verify(s *Spec, reporter diag.Reporter) bool {
	ok := verifyScope(s, s.Program, reporter)
	for _, c := range s.Commands {
		if c.Spec == nil {
			continue
		}
		if !verify(c.Spec, reporter) {
			ok = false
		}
	}
	return ok
}

func verifyScope(s *Spec, scope string, reporter diag.Reporter) bool {
	ok := true
	fail := func(code diag.Code, msg string, targets ...string) {
		reporter.Report(diag.NewError(code, argv.Span{}, msg).WithTargets(targets...))
		ok = false
	}
	warn := func(code diag.Code, msg string, targets ...string) {
		reporter.Report(diag.New(diag.SevWarning, code, argv.Span{}, msg).WithTargets(targets...))
	}

	seen := make(map[string]bool)
	claim := func(name, what string) {
		if name == "" {
			fail(diag.SpecEmptyName, fmt.Sprintf("%s: %s declared with an empty name", scope, what))
			return
		}
		if seen[name] {
			fail(diag.SpecDuplicateName, fmt.Sprintf("%s: %q is declared more than once", scope, name), name)
			return
		}
		seen[name] = true
	}

	for _, o := range s.Options {
		claim(o.Name, "option")
		for _, a := range o.Aliases {
			claim(a, "option alias")
		}
		if o.Short != "" {
			claim(o.Short, "short alias")
		}
		verifyDomain(o.Name, o.Type, o.Choices, o.Domain, o.Default, scope, fail)
		if o.Required && o.Default != nil {
			warn(diag.SpecRequiredWithDefault,
				fmt.Sprintf("%s: option %q is required but declares a default; the default always satisfies it", scope, o.Name), o.Name)
		}
	}

	variadicAt := -1
	for i, p := range s.Positionals {
		claim(p.Name, "positional")
		verifyDomain(p.Name, p.Type, p.Choices, nil, p.Default, scope, fail)
		if variadicAt >= 0 {
			code := diag.SpecVariadicNotLast
			if p.Arity == ArityVariadic {
				code = diag.SpecMultipleVariadic
			}
			fail(code, fmt.Sprintf("%s: positional %q follows variadic %q", scope, p.Name, s.Positionals[variadicAt].Name), p.Name)
		}
		if p.Arity == ArityVariadic && variadicAt < 0 {
			variadicAt = i
		}
	}

	defaults := 0
	cmdSeen := make(map[string]bool)
	for _, c := range s.Commands {
		if c.Name == "" {
			fail(diag.SpecEmptyName, fmt.Sprintf("%s: subcommand declared with an empty name", scope))
		}
		for _, n := range append([]string{c.Name}, c.Aliases...) {
			if cmdSeen[n] {
				fail(diag.SpecDuplicateName, fmt.Sprintf("%s: subcommand name %q is declared more than once", scope, n), n)
			}
			cmdSeen[n] = true
		}
		if c.Default {
			defaults++
			if defaults > 1 {
				fail(diag.SpecDuplicateDefault, fmt.Sprintf("%s: subcommand %q is a second default", scope, c.Name), c.Name)
			}
		}
	}

	for _, con := range s.Constraints {
		if !constraintAritySane(con) {
			fail(diag.SpecBadConstraint,
				fmt.Sprintf("%s: %s constraint declares %d target(s)", scope, con.Kind, len(con.Targets)),
				con.Targets...)
			continue
		}
		for _, t := range con.Targets {
			if !hasDeclaredTarget(s, t) {
				fail(diag.SpecUnknownTarget,
					fmt.Sprintf("%s: %s constraint references undeclared %q", scope, con.Kind, t), t)
			}
		}
	}

	return ok
}

func constraintAritySane(c Constraint) bool {
	switch c.Kind {
	case Required:
		return len(c.Targets) == 1
	case Conflicts:
		return len(c.Targets) == 2
	default:
		return len(c.Targets) >= 2
	}
}

// hasDeclaredTarget is the pre-index variant of Spec.HasTarget: Build
// verifies before the lookup maps exist.
func hasDeclaredTarget(s *Spec, name string) bool {
	for _, o := range s.Options {
		if o.Name == name {
			return true
		}
	}
	for _, p := range s.Positionals {
		if p.Name == name {
			return true
		}
	}
	return false
}

func verifyDomain(name string, t Type, choices []string, dom *Domain, def *Value, scope string, fail func(diag.Code, string, ...string)) {
	if t == TypeEnum && len(choices) == 0 {
		fail(diag.SpecEnumWithoutChoices, fmt.Sprintf("%s: enum entry %q declares no choices", scope, name), name)
		return
	}
	if dom != nil {
		if dom.MinInt != nil && dom.MaxInt != nil && *dom.MinInt > *dom.MaxInt {
			fail(diag.SpecBadDomain, fmt.Sprintf("%s: %q declares min %d above max %d", scope, name, *dom.MinInt, *dom.MaxInt), name)
		}
		if dom.MinFloat != nil && dom.MaxFloat != nil && *dom.MinFloat > *dom.MaxFloat {
			fail(diag.SpecBadDomain, fmt.Sprintf("%s: %q declares min %v above max %v", scope, name, *dom.MinFloat, *dom.MaxFloat), name)
		}
	}
	if def == nil {
		return
	}
	// Re-converting the rendered default exercises exactly the checks
	// bind-time values go through.
	if _, err := Convert(t, def.Render(), choices, dom); err != nil && def.List == nil {
		fail(diag.SpecDefaultOutsideDomain, fmt.Sprintf("%s: default for %q: %v", scope, name, err), name)
	}
}
