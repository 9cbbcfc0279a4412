// Package complete turns a snapshot into a shell completion script.
// Each generator is a pure function from Snapshot to script text; the
// snapshot is its sole input, so scripts can be generated offline and
// cached.
//
// All three shells share the same dispatch model, which mirrors the
// binder exactly: the already-typed words are walked left to right,
// descending into a subcommand node when a bare word names one and no
// positional value has been seen in the current scope, skipping the
// value word of value-taking options, and going inert past the "--"
// terminator. Once a subcommand has been consumed its siblings are
// never offered again. Only the candidate emission syntax, identifier
// escaping, and the registration footer differ per shell.
package complete

import (
	"fmt"
	"strings"

	"argot/internal/snapshot"
)

// Generate dispatches on the shell name: "bash", "zsh", or "fish".
func Generate(shell string, snap *snapshot.Snapshot) (string, error) {
	switch shell {
	case "bash":
		return Bash(snap), nil
	case "zsh":
		return Zsh(snap), nil
	case "fish":
		return Fish(snap), nil
	default:
		return "", fmt.Errorf("unsupported shell %q (want bash, zsh, or fish)", shell)
	}
}

// Shells lists the supported generators in a stable order.
func Shells() []string {
	return []string{"bash", "zsh", "fish"}
}

const rootID = "root"

// visit walks the node tree depth-first in declaration order. Node ids
// are slash-joined canonical command paths rooted at "root", stable
// across regenerations.
func visit(root *snapshot.Node, fn func(id string, n *snapshot.Node)) {
	var rec func(id string, n *snapshot.Node)
	rec = func(id string, n *snapshot.Node) {
		fn(id, n)
		for i := range n.Commands {
			child := &n.Commands[i]
			rec(id+"/"+child.Name, child)
		}
	}
	rec(rootID, root)
}

// optionWords lists every option string recognized at the node.
func optionWords(n *snapshot.Node) []string {
	var out []string
	for _, o := range n.Options {
		out = append(out, o.Strings...)
	}
	return out
}

// valueOptionWords lists the option strings that consume a value word.
func valueOptionWords(n *snapshot.Node) []string {
	var out []string
	for _, o := range n.Options {
		if o.TakesValue() {
			out = append(out, o.Strings...)
		}
	}
	return out
}

// commandWords lists subcommand names and aliases declared at the node.
func commandWords(n *snapshot.Node) []string {
	var out []string
	for _, c := range n.Commands {
		out = append(out, c.Name)
		out = append(out, c.Aliases...)
	}
	return out
}

// ident sanitizes a name for use inside a shell function identifier.
func ident(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// caseWords renders a shell case pattern matching any of the words,
// e.g. "--jobs|-j".
func caseWords(words []string) string {
	return strings.Join(words, "|")
}
