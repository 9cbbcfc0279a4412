package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"argot/internal/argv"
	"argot/internal/diag"
	"argot/internal/diagfmt"
)

func sampleBag() (*diag.Bag, argv.List) {
	args := argv.New([]string{"-x", "-y"})
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.ConMutuallyExclusive, args.SpanOf(0), "-x and -y cannot be combined").
		WithTargets("x", "y").
		WithNote(args.SpanOf(1), "second of the pair"))
	bag.Add(diag.NewError(diag.ConRequired, args.EndSpan(), "--token is required").
		WithTargets("token"))
	return bag, args
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, _ := sampleBag()
	out := diagfmt.BuildDiagnosticsOutput(bag, diagfmt.JSONOpts{IncludeNotes: true})

	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}

	first := out.Diagnostics[0]
	if first.Code != "CON2002" || first.Severity != "ERROR" {
		t.Errorf("first record = %+v", first)
	}
	if len(first.Targets) != 2 || first.Targets[0] != "x" {
		t.Errorf("targets = %v", first.Targets)
	}
	if first.Location == nil || first.Location.Arg != 0 || first.Location.End != 2 {
		t.Errorf("location = %+v", first.Location)
	}
	if len(first.Notes) != 1 || first.Notes[0].Message != "second of the pair" {
		t.Errorf("notes = %+v", first.Notes)
	}

	// The required violation points past the input: no location.
	if out.Diagnostics[1].Location != nil {
		t.Errorf("spanless diagnostic got a location: %+v", out.Diagnostics[1].Location)
	}
}

func TestJSONTruncation(t *testing.T) {
	bag, _ := sampleBag()
	out := diagfmt.BuildDiagnosticsOutput(bag, diagfmt.JSONOpts{Max: 1})
	if out.Count != 1 || out.Diagnostics[0].Code != "CON2002" {
		t.Errorf("truncated output = %+v", out)
	}
	if bag.Len() != 2 {
		t.Error("truncation must not touch the bag")
	}
}

func TestJSONRendering(t *testing.T) {
	bag, _ := sampleBag()
	var buf strings.Builder
	if err := diagfmt.JSON(&buf, bag, diagfmt.JSONOpts{}); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var decoded diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 2 || decoded.Diagnostics[1].Code != "CON2001" {
		t.Errorf("decoded = %+v", decoded)
	}
	// Notes stay out unless asked for.
	if decoded.Diagnostics[0].Notes != nil {
		t.Errorf("notes included without IncludeNotes: %+v", decoded.Diagnostics[0].Notes)
	}
}
