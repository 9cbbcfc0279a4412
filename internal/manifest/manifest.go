// Package manifest loads argument specs from TOML files, the
// declarative alternative to the builder API. A manifest is compiled
// into the same verified Spec the builder produces, so every
// structural check applies identically to both paths.
package manifest

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"argot/internal/diag"
	"argot/internal/spec"
)

// File mirrors the TOML document layout:
//
//	[program]
//	name = "grid"
//	version = "1.0.0"
//
//	[[option]]
//	name = "jobs"
//	short = "j"
//	type = "int"
//	default = "4"
//	min = 1
//	max = 64
//
//	[[command]]
//	name = "build"
//	  [[command.option]]
//	  name = "release"
//	  type = "bool"
type File struct {
	Program     Program          `toml:"program"`
	Options     []OptionDecl     `toml:"option"`
	Positionals []PositionalDecl `toml:"positional"`
	Commands    []CommandDecl    `toml:"command"`
	Constraints []ConstraintDecl `toml:"constraint"`
}

type Program struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// OptionDecl is one [[option]] table. Default is a pointer so an
// absent key is distinguishable from an empty string; Min and Max
// decode as int64 or float64 depending on how the manifest writes
// them.
type OptionDecl struct {
	Name       string   `toml:"name"`
	Short      string   `toml:"short"`
	Aliases    []string `toml:"aliases"`
	Type       string   `toml:"type"`
	Repeatable bool     `toml:"repeatable"`
	Required   bool     `toml:"required"`
	Default    *string  `toml:"default"`
	Env        string   `toml:"env"`
	Choices    []string `toml:"choices"`
	Min        any      `toml:"min"`
	Max        any      `toml:"max"`
	Help       string   `toml:"help"`
}

type PositionalDecl struct {
	Name    string   `toml:"name"`
	Arity   string   `toml:"arity"`
	Type    string   `toml:"type"`
	Default *string  `toml:"default"`
	Choices []string `toml:"choices"`
	Help    string   `toml:"help"`
}

type CommandDecl struct {
	Name        string           `toml:"name"`
	Aliases     []string         `toml:"aliases"`
	Default     bool             `toml:"default"`
	Options     []OptionDecl     `toml:"option"`
	Positionals []PositionalDecl `toml:"positional"`
	Commands    []CommandDecl    `toml:"command"`
	Constraints []ConstraintDecl `toml:"constraint"`
}

type ConstraintDecl struct {
	Kind    string   `toml:"kind"`
	Targets []string `toml:"targets"`
}

// Load reads and compiles a manifest file. Structural spec problems
// are reported as diagnostics through reporter; syntactic and
// translation problems come back as the error.
func Load(path string, reporter diag.Reporter) (*spec.Spec, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	sp, err := compile(&f, meta, reporter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sp, nil
}

// Parse compiles manifest source held in memory.
func Parse(src string, reporter diag.Reporter) (*spec.Spec, error) {
	var f File
	meta, err := toml.Decode(src, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return compile(&f, meta, reporter)
}

func compile(f *File, meta toml.MetaData, reporter diag.Reporter) (*spec.Spec, error) {
	if !meta.IsDefined("program") {
		return nil, fmt.Errorf("missing [program]")
	}
	if strings.TrimSpace(f.Program.Name) == "" {
		return nil, fmt.Errorf("missing [program].name")
	}

	b := spec.New(f.Program.Name)
	b.Version(f.Program.Version)
	if err := populate(b, f.Options, f.Positionals, f.Commands, f.Constraints); err != nil {
		return nil, err
	}

	sp, ok := b.Build(reporter)
	if !ok {
		return nil, fmt.Errorf("manifest declares an invalid spec")
	}
	return sp, nil
}

func populate(b *spec.Builder, options []OptionDecl, positionals []PositionalDecl, commands []CommandDecl, constraints []ConstraintDecl) error {
	for _, d := range options {
		o, err := buildOption(d)
		if err != nil {
			return err
		}
		b.Option(o)
	}
	for _, d := range positionals {
		p, err := buildPositional(d)
		if err != nil {
			return err
		}
		b.Positional(p)
	}
	for _, d := range commands {
		var nested error
		b.Command(spec.Subcommand{Name: d.Name, Aliases: d.Aliases, Default: d.Default}, func(c *spec.Builder) {
			nested = populate(c, d.Options, d.Positionals, d.Commands, d.Constraints)
		})
		if nested != nil {
			return fmt.Errorf("command %q: %w", d.Name, nested)
		}
	}
	for _, d := range constraints {
		kind, ok := spec.ParseConstraintKind(d.Kind)
		if !ok {
			return fmt.Errorf("constraint on %v: unknown kind %q", d.Targets, d.Kind)
		}
		b.Constraint(kind, d.Targets...)
	}
	return nil
}

func buildOption(d OptionDecl) (spec.Option, error) {
	t, err := declType(d.Type, d.Choices)
	if err != nil {
		return spec.Option{}, fmt.Errorf("option %q: %w", d.Name, err)
	}
	dom, err := declDomain(t, d.Min, d.Max)
	if err != nil {
		return spec.Option{}, fmt.Errorf("option %q: %w", d.Name, err)
	}
	o := spec.Option{
		Name:       d.Name,
		Short:      d.Short,
		Aliases:    d.Aliases,
		Type:       t,
		Repeatable: d.Repeatable,
		Required:   d.Required,
		EnvVar:     d.Env,
		Choices:    d.Choices,
		Domain:     dom,
		Help:       d.Help,
	}
	if d.Default != nil {
		v, err := spec.Convert(t, *d.Default, d.Choices, dom)
		if err != nil {
			return spec.Option{}, fmt.Errorf("option %q: bad default: %w", d.Name, err)
		}
		o.Default = &v
	}
	return o, nil
}

func buildPositional(d PositionalDecl) (spec.Positional, error) {
	t, err := declType(d.Type, d.Choices)
	if err != nil {
		return spec.Positional{}, fmt.Errorf("positional %q: %w", d.Name, err)
	}
	arity, ok := spec.ParseArity(d.Arity)
	if !ok {
		return spec.Positional{}, fmt.Errorf("positional %q: unknown arity %q", d.Name, d.Arity)
	}
	p := spec.Positional{
		Name:    d.Name,
		Arity:   arity,
		Type:    t,
		Choices: d.Choices,
		Help:    d.Help,
	}
	if d.Default != nil {
		v, err := spec.Convert(t, *d.Default, d.Choices, nil)
		if err != nil {
			return spec.Positional{}, fmt.Errorf("positional %q: bad default: %w", d.Name, err)
		}
		p.Default = &v
	}
	return p, nil
}

// declType resolves the declared type name. An omitted type means
// string, or enum when a choice set is declared.
func declType(name string, choices []string) (spec.Type, error) {
	if name == "" {
		if len(choices) > 0 {
			return spec.TypeEnum, nil
		}
		return spec.TypeString, nil
	}
	t, ok := spec.ParseType(name)
	if !ok {
		return spec.TypeString, fmt.Errorf("unknown type %q", name)
	}
	return t, nil
}

// declDomain translates min/max keys into a typed domain. TOML hands
// back int64 for integer literals and float64 for float literals.
func declDomain(t spec.Type, minRaw, maxRaw any) (*spec.Domain, error) {
	if minRaw == nil && maxRaw == nil {
		return nil, nil
	}
	switch t {
	case spec.TypeInt:
		dom := &spec.Domain{}
		var err error
		if dom.MinInt, err = intBound("min", minRaw); err != nil {
			return nil, err
		}
		if dom.MaxInt, err = intBound("max", maxRaw); err != nil {
			return nil, err
		}
		return dom, nil
	case spec.TypeFloat:
		dom := &spec.Domain{}
		var err error
		if dom.MinFloat, err = floatBound("min", minRaw); err != nil {
			return nil, err
		}
		if dom.MaxFloat, err = floatBound("max", maxRaw); err != nil {
			return nil, err
		}
		return dom, nil
	default:
		return nil, fmt.Errorf("min/max are only valid on int and float, not %s", t)
	}
}

func intBound(key string, raw any) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	i, ok := raw.(int64)
	if !ok {
		return nil, fmt.Errorf("%s must be an integer, got %v", key, raw)
	}
	return &i, nil
}

func floatBound(key string, raw any) (*float64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case int64:
		f := float64(v)
		return &f, nil
	default:
		return nil, fmt.Errorf("%s must be a number, got %v", key, raw)
	}
}
