// Package diag defines the structured diagnostic model shared by the
// parsing pipeline phases.
//
// Two disjoint tiers exist and are never merged:
//
//   - Binding diagnostics (1000-range codes) are structural: an option
//     that does not exist, a missing or unparseable value, a surplus
//     positional. The binder emits the first one and stops, because the
//     token stream cannot be interpreted past it.
//   - Constraint violations (2000-range codes) are semantic: required,
//     mutually-exclusive, requires-all/one, conflicts. The validator
//     collects every violation in constraint declaration order so the
//     caller sees all problems in one run.
//
// A third range (3000) covers spec construction errors reported by the
// builder before any parsing happens.
//
// Diagnostics are data only. The engine never writes to an output
// stream; rendering lives in internal/diagfmt and the CLI layer. Each
// Diagnostic carries the offending argv span, the raw token text where
// applicable, and the identities of the spec entries involved, so a
// caller can render them in any format or locale.
package diag
