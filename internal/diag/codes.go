package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Binding (structural, fail-fast)
	BindInfo              Code = 1000
	BindUnknownOption     Code = 1001
	BindMissingValue      Code = 1002
	BindBadValue          Code = 1003
	BindExtraPositional   Code = 1004
	BindUnknownSubcommand Code = 1005
	BindUnexpectedInline  Code = 1006

	// Constraints (semantic, collected exhaustively)
	ConInfo              Code = 2000
	ConRequired          Code = 2001
	ConMutuallyExclusive Code = 2002
	ConRequiresAll       Code = 2003
	ConRequiresOne       Code = 2004
	ConConflicts         Code = 2005

	// Spec construction (builder-time)
	SpecInfo                   Code = 3000
	SpecEmptyName              Code = 3001
	SpecDuplicateName          Code = 3002
	SpecUnknownTarget          Code = 3003
	SpecVariadicNotLast        Code = 3004
	SpecMultipleVariadic       Code = 3005
	SpecDuplicateDefault       Code = 3006
	SpecEnumWithoutChoices     Code = 3007
	SpecDefaultOutsideDomain   Code = 3008
	SpecBadDomain              Code = 3009
	SpecRequiredWithDefault    Code = 3010
	SpecBadConstraint          Code = 3011
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	BindInfo:              "binding note",
	BindUnknownOption:     "unknown option",
	BindMissingValue:      "option requires a value",
	BindBadValue:          "value does not match the declared type",
	BindExtraPositional:   "unexpected extra positional argument",
	BindUnknownSubcommand: "unknown subcommand",
	BindUnexpectedInline:  "option does not take a value",

	ConInfo:              "constraint note",
	ConRequired:          "required entry is not set",
	ConMutuallyExclusive: "mutually exclusive options were combined",
	ConRequiresAll:       "option is missing required companions",
	ConRequiresOne:       "option requires at least one companion",
	ConConflicts:         "conflicting options were combined",

	SpecInfo:                    "spec note",
	SpecEmptyName:               "entry has an empty name",
	SpecDuplicateName:           "duplicate name or alias in scope",
	SpecUnknownTarget:           "constraint target is not declared in scope",
	SpecVariadicNotLast:         "variadic positional must be declared last",
	SpecMultipleVariadic:        "only one variadic positional is allowed",
	SpecDuplicateDefault:        "more than one default subcommand",
	SpecEnumWithoutChoices:      "enum entry declares no choices",
	SpecDefaultOutsideDomain:    "default value is outside the declared domain",
	SpecBadDomain:               "invalid value domain",
	SpecRequiredWithDefault:     "required entry also declares a default",
	SpecBadConstraint:           "constraint has the wrong number of targets",
}

// ID returns the stable short identifier for a code, e.g. "BND1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CON%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SPC%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsBinding reports whether the code belongs to the fail-fast binding tier.
func (c Code) IsBinding() bool {
	return c >= 1000 && c < 2000
}

// IsConstraint reports whether the code belongs to the constraint tier.
func (c Code) IsConstraint() bool {
	return c >= 2000 && c < 3000
}

// IsSpec reports whether the code belongs to the spec construction tier.
func (c Code) IsSpec() bool {
	return c >= 3000 && c < 4000
}
