package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"argot/internal/argv"
	"argot/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	spotColor = color.New(color.FgHiRed, color.Bold)
)

// Pretty formats diagnostics for humans. Each record prints as
//
//	error[BND1003]: --jobs: "ten" is not an integer
//	  | grid --jobs ten build
//	  |             ^^^
//
// with the caret line underlining the offending argument inside the
// echoed vector. Diagnostics without a span, such as constraint
// violations over absent entries, print the header only. Iterates
// bag.Items() in order; the bag is never reordered here.
func Pretty(w io.Writer, bag *diag.Bag, args argv.List, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, args, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, args argv.List, opts PrettyOpts) {
	head := fmt.Sprintf("%s[%s]", severityLabel(d.Severity), d.Code.ID())
	if opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}
	fmt.Fprintf(w, "%s: %s\n", head, d.Message)

	if line, caret, ok := contextLines(d.Primary, args, opts); ok {
		fmt.Fprintf(w, "  | %s\n", line)
		fmt.Fprintf(w, "  | %s\n", caret)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
		}
	}
}

// contextLines builds the echoed vector and its caret underline. The
// underline width follows display width, not byte length, so wide
// runes stay covered.
func contextLines(sp argv.Span, args argv.List, opts PrettyOpts) (string, string, bool) {
	if sp.Empty() || int(sp.Arg) >= args.Len() {
		return "", "", false
	}

	var line strings.Builder
	indent := 0
	if opts.Program != "" {
		line.WriteString(opts.Program)
		line.WriteByte(' ')
		indent = runewidth.StringWidth(opts.Program) + 1
	}
	for i := 0; i < args.Len(); i++ {
		if i > 0 {
			line.WriteByte(' ')
		}
		text := args.At(i)
		if i < int(sp.Arg) {
			indent += runewidth.StringWidth(text) + 1
		}
		line.WriteString(text)
	}

	target := args.At(int(sp.Arg))
	start, end := int(sp.Start), int(sp.End)
	if start > len(target) {
		start = len(target)
	}
	if end > len(target) || end < start {
		end = len(target)
	}
	indent += runewidth.StringWidth(target[:start])
	marks := max(runewidth.StringWidth(target[start:end]), 1)

	caret := strings.Repeat(" ", indent) + strings.Repeat("^", marks)
	if opts.Color {
		caret = strings.Repeat(" ", indent) + spotColor.Sprint(strings.Repeat("^", marks))
	}
	return line.String(), caret, true
}

func severityLabel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
