package spec

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a typed value produced by conversion of a raw argv token or
// taken from a declared default. Exactly the field matching Type is
// meaningful; List is used when a repeatable option or variadic
// positional accumulates values.
type Value struct {
	Type  Type
	Bool  bool
	Int   int64
	Float float64
	Str   string
	List  []Value
}

func BoolValue(b bool) Value {
	return Value{Type: TypeBool, Bool: b}
}

func IntValue(i int64) Value {
	return Value{Type: TypeInt, Int: i}
}

func FloatValue(f float64) Value {
	return Value{Type: TypeFloat, Float: f}
}

func StringValue(s string) Value {
	return Value{Type: TypeString, Str: s}
}

func EnumValue(s string) Value {
	return Value{Type: TypeEnum, Str: s}
}

func PathValue(s string) Value {
	return Value{Type: TypePath, Str: s}
}

// ListValue wraps accumulated values. The element type is recorded so
// an empty list still knows what it holds.
func ListValue(t Type, items ...Value) Value {
	return Value{Type: t, List: items}
}

func (v Value) IsList() bool {
	return v.List != nil
}

// Append returns a list value with item added. A scalar receiver is
// promoted to a list holding the scalar first.
func (v Value) Append(item Value) Value {
	if v.List == nil {
		return Value{Type: v.Type, List: []Value{v, item}}
	}
	v.List = append(v.List, item)
	return v
}

// Render produces the canonical textual form of the value, used for
// snapshot defaults and canonical re-serialization. Lists render as
// comma-joined elements.
func (v Value) Render() string {
	if v.List != nil {
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.Render()
		}
		return strings.Join(parts, ",")
	}
	switch v.Type {
	case TypeBool:
		return strconv.FormatBool(v.Bool)
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return v.Str
	}
}

// Equal reports deep equality of two values.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type || (v.List == nil) != (other.List == nil) {
		return false
	}
	if v.List != nil {
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	}
	switch v.Type {
	case TypeBool:
		return v.Bool == other.Bool
	case TypeInt:
		return v.Int == other.Int
	case TypeFloat:
		return v.Float == other.Float
	default:
		return v.Str == other.Str
	}
}

// Domain restricts a numeric value to an inclusive range. Nil bounds
// are open.
type Domain struct {
	MinInt   *int64
	MaxInt   *int64
	MinFloat *float64
	MaxFloat *float64
}

// Convert parses raw as a value of type t and checks it against the
// choice set and numeric domain. The returned error is wrapped into a
// BindBadValue diagnostic by the binder.
func Convert(t Type, raw string, choices []string, dom *Domain) (Value, error) {
	switch t {
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a boolean", raw)
		}
		return BoolValue(b), nil

	case TypeInt:
		i, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not an integer", raw)
		}
		if dom != nil {
			if dom.MinInt != nil && i < *dom.MinInt {
				return Value{}, fmt.Errorf("%d is below the minimum %d", i, *dom.MinInt)
			}
			if dom.MaxInt != nil && i > *dom.MaxInt {
				return Value{}, fmt.Errorf("%d is above the maximum %d", i, *dom.MaxInt)
			}
		}
		return IntValue(i), nil

	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a number", raw)
		}
		if dom != nil {
			if dom.MinFloat != nil && f < *dom.MinFloat {
				return Value{}, fmt.Errorf("%v is below the minimum %v", f, *dom.MinFloat)
			}
			if dom.MaxFloat != nil && f > *dom.MaxFloat {
				return Value{}, fmt.Errorf("%v is above the maximum %v", f, *dom.MaxFloat)
			}
		}
		return FloatValue(f), nil

	case TypeEnum:
		for _, c := range choices {
			if raw == c {
				return EnumValue(raw), nil
			}
		}
		return Value{}, fmt.Errorf("%q is not one of %s", raw, strings.Join(choices, "|"))

	case TypePath:
		return PathValue(raw), nil

	default:
		return StringValue(raw), nil
	}
}
