package token

// Kind represents the lexical category of an argv token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the argument vector.
	EOF

	// LongOpt represents a long option token (--name).
	LongOpt
	// ShortOpt represents a single short option token (-n).
	ShortOpt
	// Value represents an unclassified value token, resolved by the
	// binder into a subcommand name or a positional value.
	Value
	// Terminator represents the bare "--" literal-tail terminator.
	Terminator
	// RawTail represents an argument after the terminator, taken
	// verbatim regardless of leading dashes.
	RawTail
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case LongOpt:
		return "LongOpt"
	case ShortOpt:
		return "ShortOpt"
	case Value:
		return "Value"
	case Terminator:
		return "Terminator"
	case RawTail:
		return "RawTail"
	}
	return "Unknown"
}
