package complete

import (
	"fmt"
	"strings"

	"argot/internal/snapshot"
)

// zshMain mirrors bashMain for zsh's completion system: words is
// 1-based with the program name at index 1, candidates go through
// compadd.
const zshMain = `__FN__() {
    local cur prev node next w
    integer i pos_seen=0 after_dd=0
    cur="${words[CURRENT]}"
    prev="${words[CURRENT-1]}"
    node="root"
    for (( i = 2; i < CURRENT; i++ )); do
        w="${words[i]}"
        if (( after_dd )); then
            continue
        fi
        if [[ "$w" == "--" ]]; then
            after_dd=1
            continue
        fi
        if [[ "$w" == -* ]]; then
            if [[ "$w" != *=* ]] && __FN___valopt "$node" "$w"; then
                (( i++ ))
            fi
            continue
        fi
        next="$(__FN___child "$node" "$w")"
        if (( ! pos_seen )) && [[ -n "$next" ]]; then
            node="$next"
        else
            pos_seen=1
        fi
    done

    if (( after_dd )); then
        return 0
    fi
    if [[ "$prev" == -* && "$prev" != *=* ]] && __FN___valopt "$node" "$prev"; then
        compadd -- ${=$(__FN___choices "$node" "$prev")}
        return 0
    fi
    if [[ "$cur" == -* ]]; then
        compadd -- ${=$(__FN___opts "$node")}
        return 0
    fi
    if (( ! pos_seen )); then
        compadd -- ${=$(__FN___cmds "$node")}
    fi
    return 0
}
`

// Zsh emits a #compdef script reusing the bash lookup tables, whose
// case syntax zsh shares verbatim.
func Zsh(snap *snapshot.Snapshot) string {
	fn := "_" + ident(snap.Program)
	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n# zsh completion for %s\n\n", snap.Program, snap.Program)

	emitWordTable(&b, fn+"_opts", snap, optionWords)
	emitWordTable(&b, fn+"_cmds", snap, commandWords)
	emitValoptTable(&b, fn, snap)
	emitChoicesTable(&b, fn, snap)
	emitChildTable(&b, fn, snap)

	b.WriteString(strings.ReplaceAll(zshMain, "__FN__", fn))
	fmt.Fprintf(&b, "\ncompdef %s %s\n", fn, snap.Program)
	return b.String()
}
