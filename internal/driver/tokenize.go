// Package driver wires the pipeline stages together for the CLI and
// for embedders who want one call instead of assembling lexer, binder,
// and validator by hand.
package driver

import (
	"argot/internal/argv"
	"argot/internal/diag"
	"argot/internal/lexer"
	"argot/internal/spec"
	"argot/internal/token"
)

type TokenizeResult struct {
	Args   argv.List
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize classifies args without binding them. The whole stream is
// lexed against the root scope's option table; a real binding pass
// swaps tables on subcommand descent, so cluster splits shown here can
// differ from what binding would do past a subcommand.
func Tokenize(sp *spec.Spec, args []string, maxDiagnostics int) *TokenizeResult {
	list := argv.New(args)
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(list, lexer.Options{Table: sp})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		Args:   list,
		Tokens: tokens,
		Bag:    bag,
	}
}
