package lexer

// OptionTable is the thin contract between the lexer and the active
// spec scope: whether a short option consumes a value decides how a
// short cluster is split. The lexer never resolves long names; the
// binder does that against the full spec.
type OptionTable interface {
	ShortTakesValue(ch string) bool
}

// Options configures a Lexer.
type Options struct {
	// Table may be nil, in which case every cluster character is
	// treated as an individual flag.
	Table OptionTable
}

func (lx *Lexer) shortTakesValue(ch string) bool {
	return lx.opts.Table != nil && lx.opts.Table.ShortTakesValue(ch)
}
