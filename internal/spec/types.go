package spec

// Type tags the value domain of an option or positional.
type Type uint8

const (
	// TypeBool is a boolean flag value.
	TypeBool Type = iota
	// TypeInt is a 64-bit signed integer value.
	TypeInt
	// TypeFloat is a 64-bit float value.
	TypeFloat
	// TypeString is an opaque string value.
	TypeString
	// TypeEnum is a string restricted to a declared choice set.
	TypeEnum
	// TypePath is a filesystem path. Parsed like a string; the tag
	// exists so completion generators can offer file completion.
	TypePath
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypePath:
		return "path"
	}
	return "unknown"
}

// ParseType resolves a type tag from its textual form, as used in
// manifests. The second result is false for unrecognized names.
func ParseType(s string) (Type, bool) {
	switch s {
	case "bool":
		return TypeBool, true
	case "int":
		return TypeInt, true
	case "float":
		return TypeFloat, true
	case "string":
		return TypeString, true
	case "enum":
		return TypeEnum, true
	case "path":
		return TypePath, true
	}
	return TypeString, false
}

// Arity describes how many values a positional consumes.
type Arity uint8

const (
	// ArityOne means exactly one value must be supplied.
	ArityOne Arity = iota
	// ArityOptional means the positional may be left unfilled.
	ArityOptional
	// ArityVariadic means the positional absorbs all remaining
	// positional tokens. At most one per scope, and it must be last.
	ArityVariadic
)

// ParseArity resolves an arity from its manifest form. An empty string
// means ArityOne.
func ParseArity(s string) (Arity, bool) {
	switch s {
	case "", "one":
		return ArityOne, true
	case "optional":
		return ArityOptional, true
	case "variadic":
		return ArityVariadic, true
	}
	return ArityOne, false
}

func (a Arity) String() string {
	switch a {
	case ArityOne:
		return "one"
	case ArityOptional:
		return "optional"
	case ArityVariadic:
		return "variadic"
	}
	return "unknown"
}
