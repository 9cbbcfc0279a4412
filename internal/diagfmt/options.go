package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	// Program is echoed ahead of the argument vector in context lines.
	Program   string
	Color     bool
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max          int // truncates the output, not the Bag
	IncludeNotes bool
}
