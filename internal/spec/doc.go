// Package spec defines the immutable description of a command-line
// surface: options, positionals, subcommands, and the constraints that
// tie them together.
//
// A Spec is produced once by a Builder and never mutated afterwards, so
// it can be shared read-only across any number of concurrent parse
// invocations. Builder.Build verifies the structural invariants (unique
// names per scope, resolvable constraint targets, at most one variadic
// positional and only in last position) and reports violations as
// 3000-range diagnostics before any parsing happens.
//
// Identities are canonical long names without dashes ("verbose", not
// "--verbose"); positionals are identified by their declared name.
// Names are unique within one scope only, not across subcommands.
package spec
