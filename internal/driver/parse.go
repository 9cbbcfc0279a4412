package driver

import (
	"argot/internal/argv"
	"argot/internal/binder"
	"argot/internal/diag"
	"argot/internal/spec"
	"argot/internal/validate"
)

type ParseResult struct {
	Args argv.List
	// Result is nil when binding failed.
	Result *binder.Result
	Bag    *diag.Bag
}

// OK reports whether binding succeeded and no constraint was violated.
func (r *ParseResult) OK() bool {
	return r.Result != nil && !r.Bag.HasErrors()
}

// Parse runs the full pipeline: bind args against sp, then, when
// binding succeeds, evaluate every constraint. Binding failures stop
// the pass with a single diagnostic; constraint violations are
// collected exhaustively into the bag.
func Parse(sp *spec.Spec, args []string, maxDiagnostics int) *ParseResult {
	return ParseEnv(sp, args, maxDiagnostics, nil)
}

// ParseEnv is Parse with an explicit environment lookup hook. A nil
// env uses the process environment.
func ParseEnv(sp *spec.Spec, args []string, maxDiagnostics int, env func(string) string) *ParseResult {
	list := argv.New(args)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	var res *binder.Result
	var ok bool
	if env == nil {
		res, ok = binder.Bind(sp, list, reporter)
	} else {
		res, ok = binder.BindEnv(sp, list, reporter, env)
	}
	if !ok {
		return &ParseResult{Args: list, Bag: bag}
	}

	validate.Validate(res, reporter)
	return &ParseResult{Args: list, Result: res, Bag: bag}
}
