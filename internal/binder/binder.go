// Package binder consumes the token stream against an active spec
// scope and produces a Result: typed values per identity, the resolved
// subcommand path, and the raw tail. Binding is fail-fast: the first
// structural error (1000-range diagnostic) aborts the pass and no
// partial Result is returned, because the token stream cannot be
// reliably interpreted past it.
package binder

import (
	"fmt"
	"os"

	"argot/internal/argv"
	"argot/internal/diag"
	"argot/internal/lexer"
	"argot/internal/spec"
	"argot/internal/token"
)

type binder struct {
	args     argv.List
	lx       *lexer.Lexer
	reporter diag.Reporter
	env      func(string) string
	res      *Result
	failed   bool
}

// Bind runs a full binding pass over args against sp. The returned
// Result is nil when ok is false; the diagnostic explaining the
// failure has been sent to reporter.
func Bind(sp *spec.Spec, args argv.List, reporter diag.Reporter) (*Result, bool) {
	return BindEnv(sp, args, reporter, os.Getenv)
}

// BindEnv is Bind with an explicit environment lookup, the override
// hook consulted for unset options before declared defaults. Tests
// inject a fake here.
func BindEnv(sp *spec.Spec, args argv.List, reporter diag.Reporter, env func(string) string) (*Result, bool) {
	b := &binder{
		args:     args,
		lx:       lexer.New(args, lexer.Options{Table: sp}),
		reporter: reporter,
		env:      env,
		res:      &Result{},
	}
	b.push("", sp)
	b.run()
	if b.failed {
		return nil, false
	}
	return b.res, true
}

func (b *binder) push(command string, sp *spec.Spec) {
	b.res.Frames = append(b.res.Frames, Frame{
		Command: command,
		Spec:    sp,
		Values:  make(map[string]Binding),
	})
	b.lx.SetTable(sp)
}

func (b *binder) leaf() *Frame {
	return b.res.Leaf()
}

func (b *binder) fail(code diag.Code, sp argv.Span, tok string, msg string, targets ...string) {
	b.reporter.Report(diag.NewError(code, sp, msg).WithToken(tok).WithTargets(targets...))
	b.failed = true
}

func (b *binder) run() {
	for !b.failed {
		tok := b.lx.Next()
		switch tok.Kind {
		case token.EOF:
			b.finish()
			return
		case token.Terminator:
			// The tail tokens follow individually as RawTail.
		case token.RawTail:
			b.bindData(tok)
		case token.LongOpt:
			opt := b.leaf().Spec.Option(tok.Name)
			if opt == nil {
				b.fail(diag.BindUnknownOption, tok.Span, tok.Text,
					fmt.Sprintf("unknown option %q", "--"+tok.Name))
				return
			}
			b.bindOption(opt, tok)
		case token.ShortOpt:
			opt := b.leaf().Spec.ShortOption(tok.Name)
			if opt == nil {
				b.fail(diag.BindUnknownOption, tok.Span, tok.Text,
					fmt.Sprintf("unknown option %q", "-"+tok.Name))
				return
			}
			b.bindOption(opt, tok)
		case token.Value:
			b.bindData(tok)
		}
	}
}

// bindOption resolves the option's value and stores it in the active
// frame. Single-value options follow last-occurrence-wins; repeatable
// options accumulate in appearance order; flags toggle or, when
// repeatable, count.
func (b *binder) bindOption(opt *spec.Option, tok token.Token) {
	fr := b.leaf()

	if opt.IsFlag() {
		val := spec.BoolValue(true)
		if tok.HasInline {
			// Only --flag=literal reaches here; clusters never
			// attach an inline value to a boolean.
			conv, err := spec.Convert(spec.TypeBool, tok.Inline, nil, nil)
			if err != nil {
				b.fail(diag.BindUnexpectedInline, tok.Span, tok.Text,
					fmt.Sprintf("option %q is a flag: %v", "--"+opt.Name, err), opt.Name)
				return
			}
			val = conv
		}
		fr.store(opt, val, tok.Text)
		return
	}

	raw := tok.Inline
	if !tok.HasInline {
		next := b.lx.Peek()
		if next.Kind != token.Value {
			b.fail(diag.BindMissingValue, tok.Span, tok.Text,
				fmt.Sprintf("option %q requires a value", tok.Text), opt.Name)
			return
		}
		b.lx.Next()
		raw = next.Text
	}

	val, err := spec.Convert(opt.Type, raw, opt.Choices, opt.Domain)
	if err != nil {
		b.fail(diag.BindBadValue, tok.Span, raw,
			fmt.Sprintf("option %q: %v", "--"+opt.Name, err), opt.Name)
		return
	}
	fr.store(opt, val, raw)
}

// bindData resolves an unclassified value token: a subcommand when one
// can still match, a positional slot otherwise. Subcommand matching
// wins over positional consumption while no positional has been bound
// in the frame; tokens after "--" never match subcommands.
func (b *binder) bindData(tok token.Token) {
	fr := b.leaf()

	if tok.Kind == token.Value && fr.bound == 0 && len(fr.Spec.Commands) > 0 {
		if cmd := fr.Spec.Command(tok.Text); cmd != nil {
			b.res.Path = append(b.res.Path, cmd.Name)
			b.push(cmd.Name, cmd.Spec)
			return
		}
		if len(fr.Spec.Positionals) == 0 {
			b.fail(diag.BindUnknownSubcommand, tok.Span, tok.Text,
				fmt.Sprintf("unknown subcommand %q", tok.Text))
			return
		}
	}

	for fr.slot < len(fr.Spec.Positionals) {
		p := fr.Spec.Positionals[fr.slot]
		val, err := spec.Convert(p.Type, tok.Text, p.Choices, nil)
		if err != nil {
			b.fail(diag.BindBadValue, tok.Span, tok.Text,
				fmt.Sprintf("positional %q: %v", p.Name, err), p.Name)
			return
		}
		if p.Arity == spec.ArityVariadic {
			bnd := fr.Values[p.Name]
			if !bnd.Explicit {
				bnd.Value = spec.ListValue(p.Type, val)
			} else {
				bnd.Value = bnd.Value.Append(val)
			}
			bnd.Explicit = true
			bnd.Raw = append(bnd.Raw, tok.Text)
			fr.Values[p.Name] = bnd
		} else {
			fr.Values[p.Name] = Binding{Value: val, Explicit: true, Raw: []string{tok.Text}}
			fr.slot++
		}
		fr.bound++
		return
	}

	if tok.Kind == token.RawTail {
		b.res.Rest = append(b.res.Rest, tok.Text)
		return
	}
	b.fail(diag.BindExtraPositional, tok.Span, tok.Text,
		fmt.Sprintf("unexpected argument %q", tok.Text))
}

// store writes an option binding into the frame.
func (fr *Frame) store(opt *spec.Option, val spec.Value, raw string) {
	bnd := fr.Values[opt.Name]
	if opt.Repeatable {
		if !bnd.Explicit {
			bnd.Value = spec.ListValue(opt.Type, val)
		} else {
			bnd.Value = bnd.Value.Append(val)
		}
	} else {
		bnd.Value = val
	}
	bnd.Explicit = true
	bnd.FromEnv = false
	bnd.Raw = append(bnd.Raw, raw)
	fr.Values[opt.Name] = bnd
}

// finish runs after the token stream is exhausted: descend into a
// default subcommand where one is declared, then resolve environment
// overrides and declared defaults for everything left unbound.
func (b *binder) finish() {
	for {
		fr := b.leaf()
		cmd := fr.Spec.DefaultCommand()
		if cmd == nil || fr.bound > 0 {
			break
		}
		b.res.Path = append(b.res.Path, cmd.Name)
		b.push(cmd.Name, cmd.Spec)
	}
	for i := range b.res.Frames {
		if !b.applyDefaults(&b.res.Frames[i]) {
			return
		}
	}
}

func (b *binder) applyDefaults(fr *Frame) bool {
	for _, opt := range fr.Spec.Options {
		if fr.Explicit(opt.Name) {
			continue
		}
		if opt.EnvVar != "" && b.env != nil {
			if raw := b.env(opt.EnvVar); raw != "" {
				val, err := spec.Convert(opt.Type, raw, opt.Choices, opt.Domain)
				if err != nil {
					b.fail(diag.BindBadValue, argv.Span{}, raw,
						fmt.Sprintf("environment %s for option %q: %v", opt.EnvVar, "--"+opt.Name, err), opt.Name)
					return false
				}
				fr.Values[opt.Name] = Binding{Value: val, FromEnv: true}
				continue
			}
		}
		if opt.Default != nil {
			fr.Values[opt.Name] = Binding{Value: *opt.Default}
		}
	}
	for _, p := range fr.Spec.Positionals {
		if fr.Set(p.Name) {
			continue
		}
		if p.Default != nil {
			fr.Values[p.Name] = Binding{Value: *p.Default}
		}
	}
	return true
}
