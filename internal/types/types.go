// Package types implements the type descriptor system for the Chtholly
// semantic analyzer: interning and comparison of primitives, references,
// arrays, and nominal types (structs, classes, enums, functions/methods).
package types

import (
	"fmt"
	"strings"
)

// Kind represents the tag of a type descriptor.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindChar
	KindString
	KindVoid
	KindReference
	KindArray
	KindDynamicArray
	KindStruct
	KindClass
	KindEnum
	KindFunction
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindDynamicArray:
		return "dynamic_array"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Field describes one ordered member of a struct or class.
type Field struct {
	Name    string
	Type    *Type
	Mutable bool
}

// FunctionSig describes the parameter and result types of a function,
// method, or free-standing callable.
type FunctionSig struct {
	Parameters []*Type
	Result     *Type
}

// Variant describes one tagged-enum case and its payload types.
type Variant struct {
	Name    string
	Payload []*Type
}

// Type is a tagged-variant type descriptor. Exactly one of the
// Kind-specific fields below is meaningful for a given Kind; the rest
// are zero. This mirrors the tagged-union shape `internal/types/types.go`
// gives Orizon's Type (Kind + Data), specialized to Chtholly's data
// model (spec.md §3) instead of Orizon's.
type Type struct {
	Kind Kind

	// KindInteger
	IntBits   int
	IntSigned bool

	// KindFloat
	FloatBits int

	// KindReference
	RefInner    *Type
	RefMutable  bool
	RefLifetime int

	// KindArray / KindDynamicArray
	ElemType  *Type
	ArraySize int // only meaningful for KindArray

	// KindStruct / KindClass
	Name    string
	Fields  []Field
	Methods map[string]*FunctionSig // KindClass only

	// KindEnum
	Variants map[string]*Variant
	// VariantOrder preserves declaration order for deterministic diagnostics.
	VariantOrder []string

	// KindFunction / KindMethod
	Sig      *FunctionSig
	ParentID string // KindMethod: the owning class's name
}

// String renders the type the way Chtholly source would spell it.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindInteger:
		sign := "i"
		if !t.IntSigned {
			sign = "u"
		}
		return fmt.Sprintf("%s%d", sign, t.IntBits)
	case KindFloat:
		return fmt.Sprintf("f%d", t.FloatBits)
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindReference:
		prefix := "&"
		if t.RefMutable {
			prefix = "&mut "
		}
		return prefix + t.RefInner.String()
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.ElemType.String(), t.ArraySize)
	case KindDynamicArray:
		return fmt.Sprintf("[%s]", t.ElemType.String())
	case KindStruct, KindClass, KindEnum:
		return t.Name
	case KindFunction:
		return formatSig(t.Sig)
	case KindMethod:
		return fmt.Sprintf("%s::%s", t.ParentID, formatSig(t.Sig))
	default:
		return "<invalid>"
	}
}

func formatSig(sig *FunctionSig) string {
	if sig == nil {
		return "fn()"
	}
	var params []string
	for _, p := range sig.Parameters {
		params = append(params, p.String())
	}
	result := "void"
	if sig.Result != nil {
		result = sig.Result.String()
	}
	return fmt.Sprintf("fn(%s): %s", strings.Join(params, ", "), result)
}

// IsCopy reports whether a value of this type is duplicated by a read
// rather than moved. Per spec.md §3: String, DynamicArray, Struct,
// Class, Enum are non-Copy; everything else (including references,
// per the Design Notes' "is_copy predicate") is Copy.
func (t *Type) IsCopy() bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case KindString, KindDynamicArray, KindStruct, KindClass, KindEnum:
		return false
	default:
		return true
	}
}

// StructuralEqual compares two type descriptors for the identity rule
// spec.md §3 assigns them: structural identity for primitives,
// references, and arrays; nominal identity (by declared name) for
// struct/class/enum. Functions/methods compare structurally by
// signature.
func StructuralEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindInteger:
		return a.IntBits == b.IntBits && a.IntSigned == b.IntSigned
	case KindFloat:
		return a.FloatBits == b.FloatBits
	case KindBool, KindChar, KindString, KindVoid:
		return true
	case KindReference:
		return a.RefMutable == b.RefMutable && StructuralEqual(a.RefInner, b.RefInner)
	case KindArray:
		return a.ArraySize == b.ArraySize && StructuralEqual(a.ElemType, b.ElemType)
	case KindDynamicArray:
		return StructuralEqual(a.ElemType, b.ElemType)
	case KindStruct, KindClass, KindEnum:
		// Nominal identity: declared name is authoritative. Two distinct
		// declarations sharing a name cannot coexist (DuplicateType),
		// so name equality is sufficient.
		return a.Name == b.Name
	case KindFunction:
		return sigEqual(a.Sig, b.Sig)
	case KindMethod:
		return a.ParentID == b.ParentID && sigEqual(a.Sig, b.Sig)
	default:
		return false
	}
}

func sigEqual(a, b *FunctionSig) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		if !StructuralEqual(a.Parameters[i], b.Parameters[i]) {
			return false
		}
	}
	return StructuralEqual(a.Result, b.Result)
}

// Primitive constructors. These are the pre-populated primitives of
// spec.md §4.A; a Registry interns a single shared instance of each.
func NewInteger(bits int, signed bool) *Type {
	return &Type{Kind: KindInteger, IntBits: bits, IntSigned: signed}
}

func NewFloat(bits int) *Type {
	return &Type{Kind: KindFloat, FloatBits: bits}
}

var (
	boolType   = &Type{Kind: KindBool}
	charType   = &Type{Kind: KindChar}
	stringType = &Type{Kind: KindString}
	voidType   = &Type{Kind: KindVoid}
)
