package binder_test

import (
	"testing"

	"argot/internal/argv"
	"argot/internal/binder"
	"argot/internal/diag"
	"argot/internal/spec"
)

func mustBuild(t *testing.T, fn func(*spec.Builder)) *spec.Spec {
	t.Helper()
	b := spec.New("app")
	fn(b)
	bag := diag.NewBag(16)
	sp, ok := b.Build(diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("spec build failed: %v", bag.Items())
	}
	return sp
}

func noEnv(string) string { return "" }

func bind(t *testing.T, sp *spec.Spec, args ...string) (*binder.Result, *diag.Bag, bool) {
	t.Helper()
	bag := diag.NewBag(16)
	res, ok := binder.BindEnv(sp, argv.New(args), diag.BagReporter{Bag: bag}, noEnv)
	return res, bag, ok
}

func mustBind(t *testing.T, sp *spec.Spec, args ...string) *binder.Result {
	t.Helper()
	res, bag, ok := bind(t, sp, args...)
	if !ok {
		t.Fatalf("binding %q failed: %v", args, bag.Items())
	}
	return res
}

func expectFail(t *testing.T, sp *spec.Spec, code diag.Code, args ...string) diag.Diagnostic {
	t.Helper()
	res, bag, ok := bind(t, sp, args...)
	if ok {
		t.Fatalf("binding %q succeeded, expected %v", args, code)
	}
	if res != nil {
		t.Fatalf("failed binding must not return a partial result")
	}
	if bag.Len() != 1 {
		t.Fatalf("fail-fast binding must emit exactly one diagnostic, got %v", bag.Items())
	}
	d := bag.Items()[0]
	if d.Code != code {
		t.Fatalf("binding %q: got %v, want %v", args, d.Code, code)
	}
	return d
}

func TestShortClusterExpansion(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Flag("all", "a", "").
			Flag("brief", "b", "").
			Option(spec.Option{Name: "config", Short: "c", Type: spec.TypeString})
	})
	res := mustBind(t, sp, "-abc", "val")

	for _, name := range []string{"all", "brief"} {
		b, ok := res.Lookup(name)
		if !ok || !b.Value.Bool || !b.Explicit {
			t.Errorf("%s: expected explicit true, got %+v", name, b)
		}
	}
	c, _ := res.Lookup("config")
	if c.Value.Str != "val" {
		t.Errorf("config = %q, want %q", c.Value.Str, "val")
	}
}

func TestClusterInlineValue(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Flag("all", "a", "").
			Option(spec.Option{Name: "output", Short: "o", Type: spec.TypePath})
	})
	res := mustBind(t, sp, "-aoout.txt")
	o, _ := res.Lookup("output")
	if o.Value.Str != "out.txt" {
		t.Errorf("output = %q, want out.txt", o.Value.Str)
	}
}

func TestLastOccurrenceWins(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Option(spec.Option{Name: "opt", Type: spec.TypeInt})
	})
	res := mustBind(t, sp, "--opt=1", "--opt=2")
	o, _ := res.Lookup("opt")
	if o.Value.IsList() || o.Value.Int != 2 {
		t.Errorf("non-repeatable option: got %+v, want scalar 2", o.Value)
	}
	if len(o.Raw) != 2 {
		t.Errorf("raw history should keep both occurrences, got %v", o.Raw)
	}
}

func TestRepeatableAccumulates(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Option(spec.Option{Name: "opt", Type: spec.TypeInt, Repeatable: true})
	})
	res := mustBind(t, sp, "--opt=1", "--opt=2")
	o, _ := res.Lookup("opt")
	if !o.Value.IsList() || len(o.Value.List) != 2 {
		t.Fatalf("repeatable option: got %+v, want [1 2]", o.Value)
	}
	if o.Value.List[0].Int != 1 || o.Value.List[1].Int != 2 {
		t.Errorf("order must follow appearance: %+v", o.Value.List)
	}
}

func TestRepeatableFlagCounts(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Option(spec.Option{Name: "verbose", Short: "v", Type: spec.TypeBool, Repeatable: true})
	})
	res := mustBind(t, sp, "-vvv")
	v, _ := res.Lookup("verbose")
	if !v.Value.IsList() || len(v.Value.List) != 3 {
		t.Errorf("-vvv should count 3, got %+v", v.Value)
	}
}

func TestSubcommandBeatsPositional(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Positional(spec.Positional{Name: "target", Arity: spec.ArityOptional, Type: spec.TypeString}).
			Command(spec.Subcommand{Name: "build"}, func(c *spec.Builder) {
				c.Flag("release", "r", "")
			})
	})
	res := mustBind(t, sp, "build", "-r")
	if len(res.Path) != 1 || res.Path[0] != "build" {
		t.Fatalf("path = %v, want [build]", res.Path)
	}
	if _, ok := res.Leaf().Values["target"]; ok {
		t.Error("root positional must stay unfilled when the token names a subcommand")
	}
	r, _ := res.Lookup("release")
	if !r.Value.Bool {
		t.Error("subcommand flag not bound")
	}
}

func TestPositionalBlocksLaterSubcommand(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Positional(spec.Positional{Name: "first", Arity: spec.ArityOptional, Type: spec.TypeString}).
			Positional(spec.Positional{Name: "second", Arity: spec.ArityOptional, Type: spec.TypeString}).
			Command(spec.Subcommand{Name: "build"}, nil)
	})
	// "x" fills a positional, so the following "build" is data, not a
	// scope switch.
	res := mustBind(t, sp, "x", "build")
	if len(res.Path) != 0 {
		t.Fatalf("path = %v, want empty", res.Path)
	}
	second, _ := res.Lookup("second")
	if second.Value.Str != "build" {
		t.Errorf("second = %q, want %q", second.Value.Str, "build")
	}
}

func TestSubcommandAlias(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Command(spec.Subcommand{Name: "install", Aliases: []string{"i"}}, nil)
	})
	res := mustBind(t, sp, "i")
	if len(res.Path) != 1 || res.Path[0] != "install" {
		t.Fatalf("alias must resolve to the canonical name, path = %v", res.Path)
	}
}

func TestScopeSwitchRestartsOptionSet(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Flag("rootflag", "", "").
			Command(spec.Subcommand{Name: "sub"}, func(c *spec.Builder) {
				c.Flag("subflag", "", "")
			})
	})
	// Root options are not recognized after the scope switch.
	expectFail(t, sp, diag.BindUnknownOption, "sub", "--rootflag")
	// And subcommand options are not recognized before it.
	expectFail(t, sp, diag.BindUnknownOption, "--subflag", "sub")
}

func TestVariadicAbsorbsRemaining(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Positional(spec.Positional{Name: "dest", Arity: spec.ArityOne, Type: spec.TypeString}).
			Positional(spec.Positional{Name: "files", Arity: spec.ArityVariadic, Type: spec.TypePath})
	})
	res := mustBind(t, sp, "out", "a.c", "b.c", "c.c")
	files, _ := res.Lookup("files")
	if !files.Value.IsList() || len(files.Value.List) != 3 {
		t.Fatalf("files = %+v, want 3 entries", files.Value)
	}
}

func TestLiteralTail(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Flag("x", "", "").
			Positional(spec.Positional{Name: "script", Arity: spec.ArityOptional, Type: spec.TypePath})
	})
	res := mustBind(t, sp, "--x", "--", "--not-an-option", "-y", "more")
	script, _ := res.Lookup("script")
	if script.Value.Str != "--not-an-option" {
		t.Errorf("tail token should fill the open positional slot, got %+v", script)
	}
	if len(res.Rest) != 2 || res.Rest[0] != "-y" || res.Rest[1] != "more" {
		t.Errorf("rest = %v, want [-y more]", res.Rest)
	}
}

func TestBindingErrors(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Flag("verbose", "v", "").
			Option(spec.Option{Name: "jobs", Short: "j", Type: spec.TypeInt}).
			Option(spec.Option{Name: "level", Type: spec.TypeEnum, Choices: []string{"low", "high"}})
	})

	t.Run("unknown long option", func(t *testing.T) {
		d := expectFail(t, sp, diag.BindUnknownOption, "--bogus")
		if d.Token != "--bogus" {
			t.Errorf("diagnostic token = %q, want --bogus", d.Token)
		}
	})
	t.Run("unknown short in cluster", func(t *testing.T) {
		expectFail(t, sp, diag.BindUnknownOption, "-vq")
	})
	t.Run("missing value at end of input", func(t *testing.T) {
		expectFail(t, sp, diag.BindMissingValue, "--jobs")
	})
	t.Run("missing value before option", func(t *testing.T) {
		expectFail(t, sp, diag.BindMissingValue, "--jobs", "--verbose")
	})
	t.Run("type conversion failure", func(t *testing.T) {
		expectFail(t, sp, diag.BindBadValue, "--jobs", "many")
	})
	t.Run("enum out of domain", func(t *testing.T) {
		expectFail(t, sp, diag.BindBadValue, "--level", "medium")
	})
	t.Run("extra positional", func(t *testing.T) {
		expectFail(t, sp, diag.BindExtraPositional, "stray")
	})
	t.Run("inline value on a flag", func(t *testing.T) {
		expectFail(t, sp, diag.BindUnexpectedInline, "--verbose=loud")
	})
	t.Run("flag accepts boolean inline", func(t *testing.T) {
		res := mustBind(t, sp, "--verbose=false")
		v, _ := res.Lookup("verbose")
		if v.Value.Bool {
			t.Error("--verbose=false should bind false")
		}
	})
}

func TestUnknownSubcommand(t *testing.T) {
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Command(spec.Subcommand{Name: "build"}, nil)
	})
	expectFail(t, sp, diag.BindUnknownSubcommand, "deploy")
}

func TestDefaults(t *testing.T) {
	def := spec.IntValue(4)
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Option(spec.Option{Name: "jobs", Type: spec.TypeInt, Default: &def}).
			Positional(spec.Positional{Name: "dir", Arity: spec.ArityOptional, Type: spec.TypePath,
				Default: ptr(spec.PathValue("."))})
	})
	res := mustBind(t, sp)
	jobs, _ := res.Lookup("jobs")
	if jobs.Explicit || jobs.Value.Int != 4 {
		t.Errorf("jobs = %+v, want non-explicit 4", jobs)
	}
	dir, _ := res.Lookup("dir")
	if dir.Value.Str != "." {
		t.Errorf("dir = %+v, want default .", dir)
	}

	res = mustBind(t, sp, "--jobs", "8")
	jobs, _ = res.Lookup("jobs")
	if !jobs.Explicit || jobs.Value.Int != 8 {
		t.Errorf("explicit value must beat the default: %+v", jobs)
	}
}

func TestEnvOverrideHook(t *testing.T) {
	def := spec.IntValue(1)
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Option(spec.Option{Name: "jobs", Type: spec.TypeInt, Default: &def, EnvVar: "APP_JOBS"})
	})
	env := func(key string) string {
		if key == "APP_JOBS" {
			return "6"
		}
		return ""
	}

	bag := diag.NewBag(16)
	res, ok := binder.BindEnv(sp, argv.New(nil), diag.BagReporter{Bag: bag}, env)
	if !ok {
		t.Fatalf("bind failed: %v", bag.Items())
	}
	jobs, _ := res.Lookup("jobs")
	if jobs.Value.Int != 6 || !jobs.FromEnv || jobs.Explicit {
		t.Fatalf("env must beat the default without becoming explicit: %+v", jobs)
	}

	res, ok = binder.BindEnv(sp, argv.New([]string{"--jobs", "9"}), diag.BagReporter{Bag: diag.NewBag(16)}, env)
	if !ok {
		t.Fatal("bind failed")
	}
	jobs, _ = res.Lookup("jobs")
	if jobs.Value.Int != 9 || jobs.FromEnv {
		t.Fatalf("argv must beat the environment: %+v", jobs)
	}

	bag = diag.NewBag(16)
	bad := func(string) string { return "not-a-number" }
	if _, ok := binder.BindEnv(sp, argv.New(nil), diag.BagReporter{Bag: bag}, bad); ok {
		t.Fatal("unparseable environment value must fail the bind")
	}
	if bag.Items()[0].Code != diag.BindBadValue {
		t.Fatalf("got %v, want BindBadValue", bag.Items()[0].Code)
	}
}

func TestDefaultSubcommandDescent(t *testing.T) {
	def := spec.IntValue(8080)
	sp := mustBuild(t, func(b *spec.Builder) {
		b.Command(spec.Subcommand{Name: "serve", Default: true}, func(c *spec.Builder) {
			c.Option(spec.Option{Name: "port", Type: spec.TypeInt, Default: &def})
		}).
			Command(spec.Subcommand{Name: "stop"}, nil)
	})

	res := mustBind(t, sp)
	if len(res.Path) != 1 || res.Path[0] != "serve" {
		t.Fatalf("path = %v, want [serve]", res.Path)
	}
	port, _ := res.Lookup("port")
	if port.Value.Int != 8080 {
		t.Errorf("defaults must apply inside the descended scope: %+v", port)
	}

	res = mustBind(t, sp, "stop")
	if len(res.Path) != 1 || res.Path[0] != "stop" {
		t.Fatalf("explicit subcommand must suppress the default, path = %v", res.Path)
	}
}

func ptr(v spec.Value) *spec.Value { return &v }
