package snapshot

import (
	"strings"

	"argot/internal/binder"
	"argot/internal/spec"
)

// Canonical re-serializes a binding result into an argument vector
// that, parsed against the same spec, binds to the same values. Only
// explicitly supplied bindings are emitted; environment and default
// values reproduce themselves on re-parse. Options use the
// --name=value form so values that resemble options survive, and a
// "--" terminator is inserted before the first dash-leading positional
// value and before the raw tail.
func Canonical(res *binder.Result) []string {
	var out []string
	for i := range res.Frames {
		fr := &res.Frames[i]
		out = append(out, canonicalOptions(fr)...)
		if i+1 < len(res.Frames) {
			out = append(out, res.Frames[i+1].Command)
		}
	}

	leaf := res.Leaf()
	positionals := canonicalPositionals(leaf)

	terminated := false
	for _, p := range positionals {
		if !terminated && strings.HasPrefix(p, "-") {
			out = append(out, "--")
			terminated = true
		}
		out = append(out, p)
	}
	if len(res.Rest) > 0 {
		if !terminated {
			out = append(out, "--")
		}
		out = append(out, res.Rest...)
	}
	return out
}

func canonicalOptions(fr *binder.Frame) []string {
	var out []string
	for _, opt := range fr.Spec.Options {
		bnd, ok := fr.Values[opt.Name]
		if !ok || !bnd.Explicit {
			continue
		}
		switch {
		case opt.IsFlag() && bnd.Value.IsList():
			for range bnd.Value.List {
				out = append(out, "--"+opt.Name)
			}
		case opt.IsFlag():
			if bnd.Value.Bool {
				out = append(out, "--"+opt.Name)
			} else {
				out = append(out, "--"+opt.Name+"=false")
			}
		case bnd.Value.IsList():
			for _, item := range bnd.Value.List {
				out = append(out, "--"+opt.Name+"="+item.Render())
			}
		default:
			out = append(out, "--"+opt.Name+"="+bnd.Value.Render())
		}
	}
	return out
}

func canonicalPositionals(fr *binder.Frame) []string {
	var out []string
	for _, p := range fr.Spec.Positionals {
		bnd, ok := fr.Values[p.Name]
		if !ok || !bnd.Explicit {
			continue
		}
		if p.Arity == spec.ArityVariadic && bnd.Value.IsList() {
			for _, item := range bnd.Value.List {
				out = append(out, item.Render())
			}
			continue
		}
		out = append(out, bnd.Value.Render())
	}
	return out
}
