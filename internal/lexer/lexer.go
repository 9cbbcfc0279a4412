// Package lexer classifies a raw argument vector into tokens. It is
// driven incrementally by the binder, which swaps the option table on
// every subcommand scope switch: cluster splitting depends on which
// short options take values in the scope that is active when the
// cluster is reached.
package lexer

import (
	"strings"

	"argot/internal/argv"
	"argot/internal/token"
)

type Lexer struct {
	args argv.List
	opts Options
	pos  int          // next argument index
	look *token.Token // 1-element lookahead buffer
	// clusterAt is the byte offset of the next unread flag character
	// inside the argument at pos; 0 means no cluster is in progress.
	clusterAt int
	// tail is set once the "--" terminator has been consumed.
	tail bool
}

func New(args argv.List, opts Options) *Lexer {
	return &Lexer{args: args, opts: opts}
}

// SetTable replaces the option table mid-stream. The binder calls it
// when binding descends into a subcommand scope. A buffered lookahead
// token keeps its original classification.
func (lx *Lexer) SetTable(t OptionTable) {
	lx.opts.Table = t
}

// Next returns the next token. After the input is exhausted it always
// returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.clusterAt > 0 {
		return lx.nextClusterFlag()
	}
	if lx.pos >= lx.args.Len() {
		return token.Token{Kind: token.EOF, Span: lx.args.EndSpan()}
	}

	arg := lx.args.At(lx.pos)
	switch {
	case lx.tail:
		return lx.emitWhole(token.RawTail, arg)

	case arg == "--":
		lx.tail = true
		return lx.emitWhole(token.Terminator, arg)

	case strings.HasPrefix(arg, "--"):
		return lx.scanLong(arg)

	case len(arg) > 1 && arg[0] == '-':
		if len(arg) == 2 {
			tok := lx.emitWhole(token.ShortOpt, arg)
			tok.Name = arg[1:]
			return tok
		}
		lx.clusterAt = 1
		return lx.nextClusterFlag()

	default:
		// Includes the bare "-" stdin convention.
		return lx.emitWhole(token.Value, arg)
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emitWhole(kind token.Kind, text string) token.Token {
	tok := token.Token{Kind: kind, Span: lx.args.SpanOf(lx.pos), Text: text}
	lx.pos++
	return tok
}

// scanLong handles --name and --name=value. The token keeps its
// classification even when the name is undeclared; the binder turns
// that into an UnknownOption diagnostic instead of silently treating
// the argument as data.
func (lx *Lexer) scanLong(arg string) token.Token {
	tok := token.Token{Kind: token.LongOpt, Span: lx.args.SpanOf(lx.pos), Text: arg}
	body := arg[2:]
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		tok.Name = body[:eq]
		tok.Inline = body[eq+1:]
		tok.HasInline = true
		tok.Span = lx.args.SpanWithin(lx.pos, 0, 2+eq)
	} else {
		tok.Name = body
	}
	lx.pos++
	return tok
}

// nextClusterFlag carves the next short option out of a cluster like
// -abc. A value-taking character swallows the remainder of the
// argument as its inline value (GNU style: -ovalue). A single "=" after
// the character is treated as the separator, so -o=x means -o x.
func (lx *Lexer) nextClusterFlag() token.Token {
	arg := lx.args.At(lx.pos)
	at := lx.clusterAt
	ch := arg[at : at+1]

	if lx.shortTakesValue(ch) && at+1 < len(arg) {
		inline := arg[at+1:]
		if inline[0] == '=' {
			inline = inline[1:]
		}
		tok := token.Token{
			Kind:      token.ShortOpt,
			Span:      lx.args.SpanWithin(lx.pos, at, len(arg)),
			Text:      "-" + arg[at:],
			Name:      ch,
			Inline:    inline,
			HasInline: true,
		}
		lx.clusterAt = 0
		lx.pos++
		return tok
	}

	tok := token.Token{
		Kind: token.ShortOpt,
		Span: lx.args.SpanWithin(lx.pos, at, at+1),
		Text: "-" + ch,
		Name: ch,
	}
	lx.clusterAt++
	if lx.clusterAt >= len(arg) {
		lx.clusterAt = 0
		lx.pos++
	}
	return tok
}
