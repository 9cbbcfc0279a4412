package manifest_test

import (
	"strings"
	"testing"

	"argot/internal/argv"
	"argot/internal/binder"
	"argot/internal/diag"
	"argot/internal/manifest"
	"argot/internal/spec"
)

const gridManifest = `
[program]
name = "grid"
version = "2.0.0"

[[option]]
name = "verbose"
short = "v"
type = "bool"
help = "enable verbose output"

[[option]]
name = "jobs"
short = "j"
type = "int"
default = "4"
min = 1
max = 64
env = "GRID_JOBS"

[[option]]
name = "level"
choices = ["low", "high"]

[[positional]]
name = "input"
arity = "optional"
type = "path"

[[positional]]
name = "extras"
arity = "variadic"

[[constraint]]
kind = "conflicts"
targets = ["verbose", "level"]

[[command]]
name = "build"
aliases = ["b"]
default = true

  [[command.option]]
  name = "release"
  short = "r"
  type = "bool"

  [[command.constraint]]
  kind = "required"
  targets = ["release"]
`

func load(t *testing.T, src string) *spec.Spec {
	t.Helper()
	bag := diag.NewBag(16)
	sp, err := manifest.Parse(src, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("parse failed: %v (diagnostics %v)", err, bag.Items())
	}
	return sp
}

func TestParseFullManifest(t *testing.T) {
	sp := load(t, gridManifest)

	if sp.Program != "grid" || sp.Version != "2.0.0" {
		t.Fatalf("program header = %q/%q", sp.Program, sp.Version)
	}

	jobs := sp.Option("jobs")
	if jobs == nil || jobs.Type != spec.TypeInt || jobs.EnvVar != "GRID_JOBS" {
		t.Fatalf("jobs mis-declared: %+v", jobs)
	}
	if jobs.Default == nil || jobs.Default.Int != 4 {
		t.Errorf("jobs default not converted: %+v", jobs.Default)
	}
	if jobs.Domain == nil || *jobs.Domain.MinInt != 1 || *jobs.Domain.MaxInt != 64 {
		t.Errorf("jobs domain not translated: %+v", jobs.Domain)
	}

	// A choice set with no declared type means enum.
	if level := sp.Option("level"); level == nil || level.Type != spec.TypeEnum {
		t.Errorf("level should default to enum: %+v", level)
	}

	if len(sp.Positionals) != 2 || sp.Positionals[1].Arity != spec.ArityVariadic {
		t.Fatalf("positionals mis-declared: %+v", sp.Positionals)
	}

	build := sp.Command("b")
	if build == nil || build.Name != "build" || !build.Default {
		t.Fatalf("build command mis-declared: %+v", build)
	}
	if build.Spec.Option("release") == nil {
		t.Error("nested option lost")
	}
	if len(build.Spec.Constraints) != 1 || build.Spec.Constraints[0].Kind != spec.Required {
		t.Errorf("nested constraint lost: %+v", build.Spec.Constraints)
	}
}

// A manifest-compiled spec drives the binder exactly like a built one.
func TestManifestSpecBinds(t *testing.T) {
	sp := load(t, gridManifest)

	bag := diag.NewBag(16)
	res, ok := binder.BindEnv(sp, argv.New([]string{"-j", "8", "build", "-r"}),
		diag.BagReporter{Bag: bag}, func(string) string { return "" })
	if !ok {
		t.Fatalf("binding failed: %v", bag.Items())
	}
	if len(res.Path) != 1 || res.Path[0] != "build" {
		t.Fatalf("path = %v", res.Path)
	}
	if v, ok := res.Lookup("jobs"); !ok || v.Value.Int != 8 {
		t.Errorf("jobs = %+v", v)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "missing program table",
			src:  `[[option]]` + "\n" + `name = "x"`,
			want: "missing [program]",
		},
		{
			name: "missing program name",
			src:  "[program]\nversion = \"1.0\"",
			want: "missing [program].name",
		},
		{
			name: "unknown type",
			src:  "[program]\nname = \"p\"\n[[option]]\nname = \"x\"\ntype = \"duration\"",
			want: `unknown type "duration"`,
		},
		{
			name: "bad default",
			src:  "[program]\nname = \"p\"\n[[option]]\nname = \"x\"\ntype = \"int\"\ndefault = \"ten\"",
			want: "bad default",
		},
		{
			name: "unknown arity",
			src:  "[program]\nname = \"p\"\n[[positional]]\nname = \"x\"\narity = \"many\"",
			want: `unknown arity "many"`,
		},
		{
			name: "unknown constraint kind",
			src:  "[program]\nname = \"p\"\n[[constraint]]\nkind = \"xor\"\ntargets = [\"a\", \"b\"]",
			want: `unknown kind "xor"`,
		},
		{
			name: "domain on string option",
			src:  "[program]\nname = \"p\"\n[[option]]\nname = \"x\"\nmin = 1",
			want: "only valid on int and float",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Parse(tt.src, diag.NopReporter{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

// Structural spec mistakes surface as 3000-range diagnostics through
// the reporter, not as translation errors.
func TestInvalidSpecReportsDiagnostics(t *testing.T) {
	src := "[program]\nname = \"p\"\n" +
		"[[option]]\nname = \"x\"\n" +
		"[[option]]\nname = \"x\"\n"

	bag := diag.NewBag(16)
	_, err := manifest.Parse(src, diag.BagReporter{Bag: bag})
	if err == nil {
		t.Fatal("expected an error for a duplicate option")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SpecDuplicateName {
			found = true
		}
	}
	if !found {
		t.Errorf("no duplicate-name diagnostic: %v", bag.Items())
	}
}
