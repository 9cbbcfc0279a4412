// Package token defines the lexical token kinds produced by classifying
// a raw argument vector.
// Invariants:
//   - Token.Text is the argument exactly as written (no unquoting).
//   - Token.Span points into the argv list; for tokens carved out of a
//     short cluster the span covers only the relevant bytes.
//   - Name never carries leading dashes.
//   - Everything after a bare "--" is RawTail, one token per argument.
package token
