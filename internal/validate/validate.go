// Package validate evaluates declared constraints against a binding
// result. It runs only on a Result produced by a clean binding pass
// and is exhaustive: every violation is reported, in constraint
// declaration order, frame by frame from root to leaf, so a user sees
// all problems in one run. Violations are 2000-range diagnostics
// carrying the constraint kind and the target identities involved.
package validate

import (
	"fmt"
	"strings"

	"argot/internal/argv"
	"argot/internal/binder"
	"argot/internal/diag"
	"argot/internal/spec"
)

// Validate checks every frame of res. It returns true when no
// constraint is violated.
func Validate(res *binder.Result, reporter diag.Reporter) bool {
	ok := true
	for i := range res.Frames {
		if !validateFrame(&res.Frames[i], reporter) {
			ok = false
		}
	}
	return ok
}

func validateFrame(fr *binder.Frame, reporter diag.Reporter) bool {
	ok := true
	violate := func(code diag.Code, msg string, targets []string) {
		reporter.Report(diag.NewError(code, argv.Span{}, msg).WithTargets(targets...))
		ok = false
	}

	for _, con := range fr.Spec.Constraints {
		switch con.Kind {
		case spec.Required:
			target := con.Targets[0]
			if !fr.Set(target) {
				violate(diag.ConRequired,
					fmt.Sprintf("%s must be provided", describe(fr.Spec, target)),
					con.Targets)
			}

		case spec.MutuallyExclusive:
			set := explicitSubset(fr, con.Targets)
			if len(set) > 1 {
				violate(diag.ConMutuallyExclusive,
					fmt.Sprintf("%s may not be combined", describeAll(fr.Spec, set)),
					set)
			}

		case spec.RequiresAll:
			subject, companions := con.Targets[0], con.Targets[1:]
			if !fr.Set(subject) {
				break
			}
			var missing []string
			for _, c := range companions {
				if !fr.Set(c) {
					missing = append(missing, c)
				}
			}
			if len(missing) > 0 {
				violate(diag.ConRequiresAll,
					fmt.Sprintf("%s requires %s", describe(fr.Spec, subject), describeAll(fr.Spec, missing)),
					append([]string{subject}, missing...))
			}

		case spec.RequiresOne:
			subject, companions := con.Targets[0], con.Targets[1:]
			if !fr.Set(subject) {
				break
			}
			satisfied := false
			for _, c := range companions {
				if fr.Set(c) {
					satisfied = true
					break
				}
			}
			if !satisfied {
				violate(diag.ConRequiresOne,
					fmt.Sprintf("%s requires one of %s", describe(fr.Spec, subject), describeAll(fr.Spec, companions)),
					con.Targets)
			}

		case spec.Conflicts:
			if fr.Explicit(con.Targets[0]) && fr.Explicit(con.Targets[1]) {
				violate(diag.ConConflicts,
					fmt.Sprintf("%s conflicts with %s",
						describe(fr.Spec, con.Targets[0]), describe(fr.Spec, con.Targets[1])),
					con.Targets)
			}
		}
	}
	return ok
}

// explicitSubset filters targets down to the ones explicitly supplied
// on the command line, preserving declaration order. A value equal to
// its default but not supplied does not count.
func explicitSubset(fr *binder.Frame, targets []string) []string {
	var out []string
	for _, t := range targets {
		if fr.Explicit(t) {
			out = append(out, t)
		}
	}
	return out
}

// describe renders an identity for messages: options get their dashes
// back, positionals stay bare.
func describe(sp *spec.Spec, name string) string {
	if sp.Option(name) != nil {
		return "--" + name
	}
	return fmt.Sprintf("argument %q", name)
}

func describeAll(sp *spec.Spec, names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = describe(sp, n)
	}
	return strings.Join(parts, ", ")
}
