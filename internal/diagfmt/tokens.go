package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"argot/internal/token"
)

type TokenOutput struct {
	Kind   string       `json:"kind"`
	Text   string       `json:"text,omitempty"`
	Name   string       `json:"name,omitempty"`
	Inline string       `json:"inline,omitempty"`
	Span   LocationJSON `json:"span"`
}

// FormatTokensPretty writes one line per token: index, kind, text, and
// the argv span it covers.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.HasInline {
			fmt.Fprintf(w, " (inline %q)", tok.Inline)
		}
		fmt.Fprintf(w, " at %s", tok.Span)
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		rec := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Name: tok.Name,
			Span: *makeLocation(tok.Span),
		}
		if tok.HasInline {
			rec.Inline = tok.Inline
		}
		output = append(output, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
