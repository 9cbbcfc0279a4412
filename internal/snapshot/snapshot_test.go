package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"argot/internal/argv"
	"argot/internal/binder"
	"argot/internal/diag"
	"argot/internal/snapshot"
	"argot/internal/spec"
)

func testSpec(t *testing.T) *spec.Spec {
	t.Helper()
	def := spec.IntValue(4)
	b := spec.New("grid")
	b.Version("2.0.0").
		Flag("verbose", "v", "enable verbose output").
		Option(spec.Option{Name: "jobs", Short: "j", Type: spec.TypeInt, Default: &def}).
		Option(spec.Option{Name: "level", Type: spec.TypeEnum, Choices: []string{"low", "high"}}).
		Option(spec.Option{Name: "tag", Type: spec.TypeString, Repeatable: true}).
		Positional(spec.Positional{Name: "input", Arity: spec.ArityOptional, Type: spec.TypePath}).
		Positional(spec.Positional{Name: "extras", Arity: spec.ArityVariadic, Type: spec.TypeString}).
		Command(spec.Subcommand{Name: "build", Aliases: []string{"b"}, Default: true}, func(c *spec.Builder) {
			c.Flag("release", "r", "optimized build")
		}).
		Command(spec.Subcommand{Name: "clean"}, nil)

	bag := diag.NewBag(16)
	sp, ok := b.Build(diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("spec build failed: %v", bag.Items())
	}
	return sp
}

func TestFromSpecStructure(t *testing.T) {
	snap := snapshot.FromSpec(testSpec(t))

	if snap.Schema != snapshot.Schema || snap.Program != "grid" || snap.Version != "2.0.0" {
		t.Fatalf("header wrong: %+v", snap)
	}
	root := snap.Root
	if len(root.Options) != 4 || root.Options[0].Name != "verbose" {
		t.Fatalf("options lost declaration order: %+v", root.Options)
	}

	verbose := root.Options[0]
	wantStrings := []string{"--verbose", "-v"}
	if len(verbose.Strings) != 2 || verbose.Strings[0] != wantStrings[0] || verbose.Strings[1] != wantStrings[1] {
		t.Errorf("verbose strings = %v, want %v", verbose.Strings, wantStrings)
	}
	if verbose.TakesValue() {
		t.Error("bool option must not take a value")
	}

	jobs := root.Options[1]
	if !jobs.HasDefault || jobs.Default != "4" {
		t.Errorf("jobs default not resolved: %+v", jobs)
	}

	if root.DefaultCommand != "build" {
		t.Errorf("default command = %q, want build", root.DefaultCommand)
	}
	if got := root.Command("b"); got == nil || got.Name != "build" {
		t.Errorf("alias lookup failed: %+v", got)
	}
	if got := root.Command("build"); len(got.Options) != 1 || got.Options[0].Name != "release" {
		t.Errorf("nested node wrong: %+v", got)
	}
}

// Two snapshots of the same spec must serialize to identical bytes, so
// completion scripts and caches are stable across regenerations.
func TestDeterminism(t *testing.T) {
	sp := testSpec(t)
	a, err := msgpack.Marshal(snapshot.FromSpec(sp))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	b, err := msgpack.Marshal(snapshot.FromSpec(sp))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("snapshot serialization is not deterministic")
	}
}

func parse(t *testing.T, sp *spec.Spec, args []string) *binder.Result {
	t.Helper()
	bag := diag.NewBag(16)
	res, ok := binder.BindEnv(sp, argv.New(args), diag.BagReporter{Bag: bag}, func(string) string { return "" })
	if !ok {
		t.Fatalf("binding %q failed: %v", args, bag.Items())
	}
	return res
}

// Re-parsing the canonical re-serialization of a result must bind the
// same values, path, and rest.
func TestCanonicalRoundTrip(t *testing.T) {
	sp := testSpec(t)
	inputs := [][]string{
		{"-v", "--jobs", "8"},
		{"--tag=a", "--tag=b", "--level", "high"},
		{"in.txt", "x", "y"},
		{"--jobs=2", "--", "-dashed", "tail1", "tail2"},
		{"build", "-r"},
		{"b"},
		{},
	}
	for _, in := range inputs {
		first := parse(t, sp, in)
		canon := snapshot.Canonical(first)
		second := parse(t, sp, canon)

		if len(first.Path) != len(second.Path) {
			t.Fatalf("input %q: path %v != %v (canonical %q)", in, first.Path, second.Path, canon)
		}
		for i := range first.Path {
			if first.Path[i] != second.Path[i] {
				t.Fatalf("input %q: path %v != %v", in, first.Path, second.Path)
			}
		}
		if len(first.Rest) != len(second.Rest) {
			t.Fatalf("input %q: rest %v != %v (canonical %q)", in, first.Rest, second.Rest, canon)
		}
		for i := range first.Frames {
			a, b := first.Frames[i], second.Frames[i]
			for name, bnd := range a.Values {
				other, ok := b.Values[name]
				if !ok || !bnd.Value.Equal(other.Value) {
					t.Errorf("input %q: %s = %+v, reparsed %+v", in, name, bnd.Value, other.Value)
				}
			}
		}
	}
}
