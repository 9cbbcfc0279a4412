package complete

import (
	"fmt"
	"strings"

	"argot/internal/snapshot"
)

// bashMain is the dispatcher body shared by every generated bash
// script. It replays the typed words against the lookup tables the
// generator emits below it, tracking the active node the same way the
// binder tracks scope frames.
const bashMain = `__FN__() {
    local cur prev node next w i
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    node="root"
    local pos_seen=0 after_dd=0
    for ((i = 1; i < COMP_CWORD; i++)); do
        w="${COMP_WORDS[i]}"
        if [[ $after_dd -eq 1 ]]; then
            continue
        fi
        if [[ "$w" == "--" ]]; then
            after_dd=1
            continue
        fi
        if [[ "$w" == -* ]]; then
            if [[ "$w" != *=* ]] && __FN___valopt "$node" "$w"; then
                ((i++))
            fi
            continue
        fi
        next="$(__FN___child "$node" "$w")"
        if [[ $pos_seen -eq 0 && -n "$next" ]]; then
            node="$next"
        else
            pos_seen=1
        fi
    done

    if [[ $after_dd -eq 1 ]]; then
        return 0
    fi
    if [[ "$prev" == -* && "$prev" != *=* ]] && __FN___valopt "$node" "$prev"; then
        COMPREPLY=( $(compgen -W "$(__FN___choices "$node" "$prev")" -- "$cur") )
        return 0
    fi
    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$(__FN___opts "$node")" -- "$cur") )
        return 0
    fi
    local cand=""
    if [[ $pos_seen -eq 0 ]]; then
        cand="$(__FN___cmds "$node")"
    fi
    COMPREPLY=( $(compgen -W "$cand" -- "$cur") )
    return 0
}
`

// Bash emits a self-contained completion script: no dependency on the
// bash-completion package, lookup tables as case statements keyed by
// node id.
func Bash(snap *snapshot.Snapshot) string {
	fn := "_" + ident(snap.Program)
	var b strings.Builder
	fmt.Fprintf(&b, "# bash completion for %s\n\n", snap.Program)

	emitWordTable(&b, fn+"_opts", snap, optionWords)
	emitWordTable(&b, fn+"_cmds", snap, commandWords)
	emitValoptTable(&b, fn, snap)
	emitChoicesTable(&b, fn, snap)
	emitChildTable(&b, fn, snap)

	b.WriteString(strings.ReplaceAll(bashMain, "__FN__", fn))
	fmt.Fprintf(&b, "\ncomplete -F %s %s\n", fn, snap.Program)
	return b.String()
}

// emitWordTable writes a one-argument function echoing the word list
// for a node id. The case syntax is valid in both bash and zsh.
func emitWordTable(b *strings.Builder, name string, snap *snapshot.Snapshot, words func(*snapshot.Node) []string) {
	fmt.Fprintf(b, "%s() {\n    case \"$1\" in\n", name)
	visit(&snap.Root, func(id string, n *snapshot.Node) {
		if w := words(n); len(w) > 0 {
			fmt.Fprintf(b, "        %s) echo \"%s\" ;;\n", id, escDouble(strings.Join(w, " ")))
		}
	})
	b.WriteString("    esac\n}\n\n")
}

// emitValoptTable writes <fn>_valopt, succeeding when the option word
// in $2 consumes a following value word at the node in $1.
func emitValoptTable(b *strings.Builder, fn string, snap *snapshot.Snapshot) {
	fmt.Fprintf(b, "%s_valopt() {\n    case \"$1\" in\n", fn)
	visit(&snap.Root, func(id string, n *snapshot.Node) {
		w := valueOptionWords(n)
		if len(w) == 0 {
			return
		}
		fmt.Fprintf(b, "        %s)\n            case \"$2\" in\n", id)
		fmt.Fprintf(b, "                %s) return 0 ;;\n", caseWords(w))
		b.WriteString("            esac ;;\n")
	})
	b.WriteString("    esac\n    return 1\n}\n\n")
}

// emitChoicesTable writes <fn>_choices, echoing the bounded domain of
// the option word in $2 at the node in $1. Options without declared
// choices echo nothing and get no suggestions.
func emitChoicesTable(b *strings.Builder, fn string, snap *snapshot.Snapshot) {
	fmt.Fprintf(b, "%s_choices() {\n    case \"$1\" in\n", fn)
	visit(&snap.Root, func(id string, n *snapshot.Node) {
		var arms []string
		for _, o := range n.Options {
			if len(o.Choices) > 0 {
				arms = append(arms, fmt.Sprintf("                %s) echo \"%s\" ;;\n",
					caseWords(o.Strings), escDouble(strings.Join(o.Choices, " "))))
			}
		}
		if len(arms) == 0 {
			return
		}
		fmt.Fprintf(b, "        %s)\n            case \"$2\" in\n", id)
		for _, a := range arms {
			b.WriteString(a)
		}
		b.WriteString("            esac ;;\n")
	})
	b.WriteString("    esac\n}\n\n")
}

// emitChildTable writes <fn>_child, echoing the child node id when the
// word in $2 names or aliases a subcommand of the node in $1.
func emitChildTable(b *strings.Builder, fn string, snap *snapshot.Snapshot) {
	fmt.Fprintf(b, "%s_child() {\n    case \"$1\" in\n", fn)
	visit(&snap.Root, func(id string, n *snapshot.Node) {
		if len(n.Commands) == 0 {
			return
		}
		fmt.Fprintf(b, "        %s)\n            case \"$2\" in\n", id)
		for i := range n.Commands {
			c := &n.Commands[i]
			names := append([]string{c.Name}, c.Aliases...)
			fmt.Fprintf(b, "                %s) echo \"%s/%s\" ;;\n", caseWords(names), id, c.Name)
		}
		b.WriteString("            esac ;;\n")
	})
	b.WriteString("    esac\n}\n\n")
}

// escDouble escapes a string for a double-quoted bash/zsh literal.
func escDouble(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "$", "\\$", "`", "\\`")
	return r.Replace(s)
}
