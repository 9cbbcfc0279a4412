package complete

import (
	"fmt"
	"strings"

	"argot/internal/snapshot"
)

// fishState walks the already-typed words and echoes three lines: the
// active node id, whether a positional has been consumed in that
// scope, and whether the "--" terminator has passed. The condition
// helpers below feed off it so every complete line stays declarative.
const fishState = `function __FN___state
    set -l tokens (commandline -opc)
    set -e tokens[1]
    set -l node root
    set -l pos_seen 0
    set -l after_dd 0
    set -l i 1
    while test $i -le (count $tokens)
        set -l w $tokens[$i]
        if test $after_dd -eq 1
            set i (math $i + 1)
            continue
        end
        if test "$w" = --
            set after_dd 1
        else if string match -q -- '-*' $w
            if not string match -q -- '*=*' $w; and __FN___valopt $node $w
                set i (math $i + 1)
            end
        else
            set -l next (__FN___child $node $w)
            if test $pos_seen -eq 0; and test -n "$next"
                set node $next
            else
                set pos_seen 1
            end
        end
        set i (math $i + 1)
    end
    echo $node
    echo $pos_seen
    echo $after_dd
end

function __FN___at
    set -l s (__FN___state)
    test "$s[1]" = "$argv[1]"; and test "$s[3]" -eq 0
end

function __FN___fresh
    set -l s (__FN___state)
    test "$s[1]" = "$argv[1]"; and test "$s[2]" -eq 0; and test "$s[3]" -eq 0
end
`

// Fish emits declarative complete lines guarded by node conditions.
// Option lines are only offered in their own scope, subcommands only
// while the scope has not consumed a positional.
func Fish(snap *snapshot.Snapshot) string {
	prog := snap.Program
	fn := "__" + ident(prog)
	var b strings.Builder
	fmt.Fprintf(&b, "# fish completion for %s\n\n", prog)

	emitFishValopt(&b, fn, snap)
	emitFishChild(&b, fn, snap)
	b.WriteString(strings.ReplaceAll(fishState, "__FN__", fn))
	b.WriteString("\n")

	visit(&snap.Root, func(id string, n *snapshot.Node) {
		for _, o := range n.Options {
			emitFishOption(&b, prog, fn, id, o)
		}
		if len(n.Commands) > 0 {
			names := commandWords(n)
			fmt.Fprintf(&b, "complete -c %s -n '%s_fresh %s' -a %s\n",
				prog, fn, id, escFish(strings.Join(names, " ")))
		}
	})
	return b.String()
}

func emitFishOption(b *strings.Builder, prog, fn, id string, o snapshot.Option) {
	cond := fmt.Sprintf("-n '%s_at %s'", fn, id)
	var suffix strings.Builder
	switch {
	case !o.TakesValue():
		// flags take no argument
	case len(o.Choices) > 0:
		fmt.Fprintf(&suffix, " -x -a %s", escFish(strings.Join(o.Choices, " ")))
	case o.Type == "path":
		suffix.WriteString(" -r")
	default:
		suffix.WriteString(" -x")
	}
	if o.Help != "" {
		fmt.Fprintf(&suffix, " -d %s", escFish(o.Help))
	}

	// fish binds one long and one short flag per line; extra long
	// aliases get their own lines.
	var short string
	var longs []string
	for _, s := range o.Strings {
		if strings.HasPrefix(s, "--") {
			longs = append(longs, strings.TrimPrefix(s, "--"))
		} else {
			short = strings.TrimPrefix(s, "-")
		}
	}
	for i, long := range longs {
		fmt.Fprintf(b, "complete -c %s %s -l %s", prog, cond, long)
		if i == 0 && short != "" {
			fmt.Fprintf(b, " -s %s", short)
		}
		b.WriteString(suffix.String())
		b.WriteString("\n")
	}
}

func emitFishValopt(b *strings.Builder, fn string, snap *snapshot.Snapshot) {
	fmt.Fprintf(b, "function %s_valopt\n    switch \"$argv[1]\"\n", fn)
	visit(&snap.Root, func(id string, n *snapshot.Node) {
		w := valueOptionWords(n)
		if len(w) == 0 {
			return
		}
		quoted := make([]string, len(w))
		for i, s := range w {
			quoted[i] = escFish(s)
		}
		fmt.Fprintf(b, "        case %s\n            switch \"$argv[2]\"\n", id)
		fmt.Fprintf(b, "                case %s\n                    return 0\n", strings.Join(quoted, " "))
		b.WriteString("            end\n")
	})
	b.WriteString("    end\n    return 1\nend\n\n")
}

func emitFishChild(b *strings.Builder, fn string, snap *snapshot.Snapshot) {
	fmt.Fprintf(b, "function %s_child\n    switch \"$argv[1]\"\n", fn)
	visit(&snap.Root, func(id string, n *snapshot.Node) {
		if len(n.Commands) == 0 {
			return
		}
		fmt.Fprintf(b, "        case %s\n            switch \"$argv[2]\"\n", id)
		for i := range n.Commands {
			c := &n.Commands[i]
			names := append([]string{c.Name}, c.Aliases...)
			fmt.Fprintf(b, "                case %s\n                    echo %s/%s\n",
				strings.Join(names, " "), id, c.Name)
		}
		b.WriteString("            end\n")
	})
	b.WriteString("    end\nend\n\n")
}

// escFish single-quotes a string for fish.
func escFish(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "'", "\\'")
	return "'" + r.Replace(s) + "'"
}
