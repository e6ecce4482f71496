package hir

import (
	"fmt"
	"strings"
)

// TypeKind is the closed tagged union of the type lattice. Adding a variant
// requires a new concrete type here and a new case in TypeFormatter.Format.
type TypeKind interface {
	typeKind()
}

func (ModuleType) typeKind()     {}
func (IntType) typeKind()        {}
func (FloatType) typeKind()      {}
func (BoolType) typeKind()       {}
func (CharType) typeKind()       {}
func (StringType) typeKind()     {}
func (TimestampType) typeKind()  {}
func (ArrayType) typeKind()      {}
func (ObjectType) typeKind()     {}
func (UnionType) typeKind()      {}
func (VoidType) typeKind()       {}
func (FnType) typeKind()         {}
func (AliasType) typeKind()      {}
func (UnresolvedType) typeKind() {}
func (NeverType) typeKind()      {}
func (UnknownType) typeKind()    {}

type ModuleType struct{}
type IntType struct{}
type FloatType struct{}
type BoolType struct{}
type CharType struct{}
type StringType struct{}
type TimestampType struct{}

// ArrayType is a homogeneous array, e.g. [int].
type ArrayType struct {
	Item TypeHandle
}

// ObjectType is a structural record type, e.g. #{x: int, y: int}.
type ObjectType struct {
	Fields *OrderedMap[string, TypeHandle]
}

// UnionType is a set of alternative types, e.g. int | string.
type UnionType struct {
	Variants *OrderedSet[TypeHandle]
}

type VoidType struct{}

// FnParam names one parameter of an FnType.
type FnParam struct {
	Name string
	Type TypeHandle
}

// FnType describes a function or closure signature.
type FnType struct {
	IsClosure bool
	Params    []FnParam
	Ret       TypeHandle
}

// AliasType names another type, e.g. type Celsius = float.
type AliasType struct {
	Name string
	Of   TypeHandle
}

// UnresolvedType names a type that could not be looked up.
type UnresolvedType struct {
	Name string
}

// NeverType is the bottom type: a value of this type cannot exist (e.g. the
// result of an infinite loop with no break).
type NeverType struct{}

// UnknownType is the default/top type assigned in the absence of inference.
type UnknownType struct{}

// Type wraps a TypeKind in the type arena.
type Type struct {
	Kind TypeKind
}

// TypeFormatter renders a TypeHandle as surface syntax, per spec §6:
// int, float, bool, char, String, timestamp, [T], #{k: T, ...}, T | U | ...,
// (), fn (a: T, ...) -> R or |a: T, ...| -> R, alias name, unresolved name,
// !, ?.
type TypeFormatter struct {
	Types *Arena[Type]
}

// Format renders h as surface syntax. An invalid handle renders as "?".
func (f *TypeFormatter) Format(h TypeHandle) string {
	if !h.IsValid() {
		return "?"
	}
	t := f.Types.Get(uint32(h))
	switch k := t.Kind.(type) {
	case ModuleType:
		return "module"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case BoolType:
		return "bool"
	case CharType:
		return "char"
	case StringType:
		return "String"
	case TimestampType:
		return "timestamp"
	case ArrayType:
		return "[" + f.Format(k.Item) + "]"
	case ObjectType:
		var sb strings.Builder
		sb.WriteString("#{")
		i := 0
		k.Fields.Each(func(name string, th TypeHandle) bool {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %s", name, f.Format(th))
			i++
			return true
		})
		sb.WriteString("}")
		return sb.String()
	case UnionType:
		var sb strings.Builder
		i := 0
		k.Variants.Each(func(th TypeHandle) bool {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(f.Format(th))
			i++
			return true
		})
		return sb.String()
	case VoidType:
		return "()"
	case FnType:
		var sb strings.Builder
		if k.IsClosure {
			sb.WriteString("|")
		} else {
			sb.WriteString("fn (")
		}
		for i, p := range k.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			if p.Type.IsValid() {
				sb.WriteString(": ")
				sb.WriteString(f.Format(p.Type))
			}
		}
		if k.IsClosure {
			sb.WriteString("|")
		} else {
			sb.WriteString(")")
		}
		sb.WriteString(" -> ")
		sb.WriteString(f.Format(k.Ret))
		return sb.String()
	case AliasType:
		return strings.TrimSpace(k.Name)
	case UnresolvedType:
		return strings.TrimSpace(k.Name)
	case NeverType:
		return "!"
	case UnknownType:
		return "?"
	default:
		return "?"
	}
}
