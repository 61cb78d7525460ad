package engine

import (
	"fmt"
	"strconv"
)

// Type identifies the dynamic type of a Value.
type Type int

const (
	TypeNil Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeFunction
)

func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is anything that can live on the evaluation stack.
type Value interface {
	Type() Type
	String() string
}

type (
	// Nil is the absence of a value.
	Nil struct{}
	// Bool is a boolean value.
	Bool bool
	// Int is a 64-bit integer value.
	Int int64
	// Float is a 64-bit floating point value.
	Float float64
	// String is an immutable string value.
	String string
)

func (Nil) Type() Type     { return TypeNil }
func (Nil) String() string { return "nil" }

func (Bool) Type() Type { return TypeBool }

func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (Int) Type() Type       { return TypeInt }
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

func (Float) Type() Type { return TypeFloat }

func (v Float) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

func (String) Type() Type       { return TypeString }
func (v String) String() string { return string(v) }

// GoFunc is a host function callable from scripts. Arguments arrive as a
// slice in push order; the returned slice becomes the call's results. A
// returned error is raised as an interpreter-level runtime error.
type GoFunc struct {
	Name string
	Fn   func(s *State, args []Value) ([]Value, error)
}

func (*GoFunc) Type() Type { return TypeFunction }

func (f *GoFunc) String() string {
	if f.Name != "" {
		return "function: " + f.Name
	}
	return "function: builtin"
}

// ValueOf converts a Go value to its engine representation. Values pass
// through unchanged; unrecognized types are stringified.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Nil{}
	case Value:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case string:
		return String(x)
	case func(*State, []Value) ([]Value, error):
		return &GoFunc{Fn: x}
	case error:
		return String(x.Error())
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// As converts an engine value to the Go type T. Numeric values convert
// between int, int64, and float64; everything else must match exactly.
func As[T any](v Value) (T, error) {
	if direct, ok := any(v).(T); ok {
		return direct, nil
	}
	var zero T
	var conv any
	switch any(zero).(type) {
	case int:
		switch n := v.(type) {
		case Int:
			conv = int(n)
		case Float:
			conv = int(n)
		}
	case int64:
		switch n := v.(type) {
		case Int:
			conv = int64(n)
		case Float:
			conv = int64(n)
		}
	case float64:
		switch n := v.(type) {
		case Int:
			conv = float64(n)
		case Float:
			conv = float64(n)
		}
	case string:
		if s, ok := v.(String); ok {
			conv = string(s)
		}
	case bool:
		if b, ok := v.(Bool); ok {
			conv = bool(b)
		}
	}
	if conv == nil {
		return zero, fmt.Errorf("cannot use %s value as %T", v.Type(), zero)
	}
	return conv.(T), nil
}
