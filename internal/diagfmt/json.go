package diagfmt

import (
	"encoding/json"
	"io"

	"argot/internal/argv"
	"argot/internal/diag"
)

// LocationJSON points into the argument vector: the argument index and
// the byte range inside that argument.
type LocationJSON struct {
	Arg   uint32 `json:"arg"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Token    string        `json:"token,omitempty"`
	Targets  []string      `json:"targets,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root structure of the JSON rendering.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput assembles the JSON structure without
// serializing, preserving bag order.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		rec := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Token:    d.Token,
			Targets:  d.Targets,
		}
		if !d.Primary.Empty() {
			rec.Location = makeLocation(d.Primary)
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			rec.Notes = make([]NoteJSON, len(d.Notes))
			for j, n := range d.Notes {
				rec.Notes[j] = NoteJSON{Message: n.Msg, Location: *makeLocation(n.Span)}
			}
		}
		diagnostics = append(diagnostics, rec)
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

func makeLocation(sp argv.Span) *LocationJSON {
	return &LocationJSON{Arg: sp.Arg, Start: sp.Start, End: sp.End}
}

// JSON serializes diagnostics as an indented object, one record per
// bag entry in bag order.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
