// Package snapshot projects an immutable spec into a flat, serializable
// structure consumed by tooling: completion generators, external help
// renderers, caches. A Snapshot holds no reference to the live spec and
// is fully deterministic for identical input, so regenerated completion
// scripts are byte-stable and the structure can be cached on disk.
package snapshot

import (
	"argot/internal/spec"
)

// Schema is bumped whenever the serialized layout changes, so stale
// cache entries can be rejected.
const Schema uint16 = 1

// Option is the projection of one option: every dash string it answers
// to, its type tag, and the default rendered canonically.
type Option struct {
	Name       string   `json:"name" msgpack:"name"`
	Strings    []string `json:"strings" msgpack:"strings"`
	Type       string   `json:"type" msgpack:"type"`
	Repeatable bool     `json:"repeatable,omitempty" msgpack:"repeatable"`
	Required   bool     `json:"required,omitempty" msgpack:"required"`
	HasDefault bool     `json:"has_default,omitempty" msgpack:"has_default"`
	Default    string   `json:"default,omitempty" msgpack:"default"`
	Choices    []string `json:"choices,omitempty" msgpack:"choices"`
	Help       string   `json:"help,omitempty" msgpack:"help"`
}

// TakesValue mirrors the binder's rule for the projected option.
func (o Option) TakesValue() bool {
	return o.Type != "bool"
}

type Positional struct {
	Name       string   `json:"name" msgpack:"name"`
	Arity      string   `json:"arity" msgpack:"arity"`
	Type       string   `json:"type" msgpack:"type"`
	HasDefault bool     `json:"has_default,omitempty" msgpack:"has_default"`
	Default    string   `json:"default,omitempty" msgpack:"default"`
	Choices    []string `json:"choices,omitempty" msgpack:"choices"`
	Help       string   `json:"help,omitempty" msgpack:"help"`
}

// Node mirrors one scope. Commands keep declaration order; a node
// never points back at its parent.
type Node struct {
	Name           string       `json:"name" msgpack:"name"`
	Aliases        []string     `json:"aliases,omitempty" msgpack:"aliases"`
	Options        []Option     `json:"options,omitempty" msgpack:"options"`
	Positionals    []Positional `json:"positionals,omitempty" msgpack:"positionals"`
	Commands       []Node       `json:"commands,omitempty" msgpack:"commands"`
	DefaultCommand string       `json:"default_command,omitempty" msgpack:"default_command"`
}

type Snapshot struct {
	Schema  uint16 `json:"schema" msgpack:"schema"`
	Program string `json:"program" msgpack:"program"`
	Version string `json:"version,omitempty" msgpack:"version"`
	Root    Node   `json:"root" msgpack:"root"`
}

// FromSpec walks the spec once and builds its snapshot. Pure: no side
// effects, no retained references.
func FromSpec(sp *spec.Spec) *Snapshot {
	return &Snapshot{
		Schema:  Schema,
		Program: sp.Program,
		Version: sp.Version,
		Root:    buildNode(sp.Program, nil, sp),
	}
}

func buildNode(name string, aliases []string, sp *spec.Spec) Node {
	node := Node{Name: name, Aliases: aliases}

	for _, o := range sp.Options {
		proj := Option{
			Name:       o.Name,
			Strings:    optionStrings(o),
			Type:       o.Type.String(),
			Repeatable: o.Repeatable,
			Required:   o.Required,
			Choices:    o.Choices,
			Help:       o.Help,
		}
		if o.Default != nil {
			proj.HasDefault = true
			proj.Default = o.Default.Render()
		}
		node.Options = append(node.Options, proj)
	}

	for _, p := range sp.Positionals {
		proj := Positional{
			Name:    p.Name,
			Arity:   p.Arity.String(),
			Type:    p.Type.String(),
			Choices: p.Choices,
			Help:    p.Help,
		}
		if p.Default != nil {
			proj.HasDefault = true
			proj.Default = p.Default.Render()
		}
		node.Positionals = append(node.Positionals, proj)
	}

	for _, c := range sp.Commands {
		node.Commands = append(node.Commands, buildNode(c.Name, c.Aliases, c.Spec))
		if c.Default {
			node.DefaultCommand = c.Name
		}
	}
	return node
}

// optionStrings lists every dash string the option answers to:
// canonical long name first, then long aliases, then the short alias.
func optionStrings(o *spec.Option) []string {
	out := make([]string, 0, 2+len(o.Aliases))
	out = append(out, "--"+o.Name)
	for _, a := range o.Aliases {
		out = append(out, "--"+a)
	}
	if o.Short != "" {
		out = append(out, "-"+o.Short)
	}
	return out
}

// Command resolves a child node by name or alias. Nil when absent.
func (n *Node) Command(name string) *Node {
	for i := range n.Commands {
		c := &n.Commands[i]
		if c.Name == name {
			return c
		}
		for _, a := range c.Aliases {
			if a == name {
				return c
			}
		}
	}
	return nil
}
