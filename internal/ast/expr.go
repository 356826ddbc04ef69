package ast

import (
	"fmt"
	"strings"

	"github.com/chtholly-lang/chtholly/internal/position"
)

// IntLiteral is an integer literal (spec.md §4.D "Literal").
type IntLiteral struct {
	Span  position.Span
	Value int64
}

func (e *IntLiteral) GetSpan() position.Span { return e.Span }
func (e *IntLiteral) String() string         { return fmt.Sprintf("%d", e.Value) }
func (*IntLiteral) expressionNode()          {}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Span  position.Span
	Value float64
}

func (e *FloatLiteral) GetSpan() position.Span { return e.Span }
func (e *FloatLiteral) String() string         { return fmt.Sprintf("%g", e.Value) }
func (*FloatLiteral) expressionNode()          {}

// StringLiteral is a string literal.
type StringLiteral struct {
	Span  position.Span
	Value string
}

func (e *StringLiteral) GetSpan() position.Span { return e.Span }
func (e *StringLiteral) String() string         { return fmt.Sprintf("%q", e.Value) }
func (*StringLiteral) expressionNode()          {}

// CharLiteral is a character literal.
type CharLiteral struct {
	Span  position.Span
	Value rune
}

func (e *CharLiteral) GetSpan() position.Span { return e.Span }
func (e *CharLiteral) String() string         { return fmt.Sprintf("'%c'", e.Value) }
func (*CharLiteral) expressionNode()          {}

// BoolLiteral is a boolean literal.
type BoolLiteral struct {
	Span  position.Span
	Value bool
}

func (e *BoolLiteral) GetSpan() position.Span { return e.Span }
func (e *BoolLiteral) String() string         { return fmt.Sprintf("%t", e.Value) }
func (*BoolLiteral) expressionNode()          {}

// Identifier is a variable reference (spec.md §4.D "Variable reference").
type Identifier struct {
	Span position.Span
	Name string
}

func (e *Identifier) GetSpan() position.Span { return e.Span }
func (e *Identifier) String() string         { return e.Name }
func (*Identifier) expressionNode()          {}

// SelfExpr is the `self` reference inside a method body.
type SelfExpr struct {
	Span position.Span
}

func (e *SelfExpr) GetSpan() position.Span { return e.Span }
func (e *SelfExpr) String() string         { return "self" }
func (*SelfExpr) expressionNode()          {}

// BorrowExpr is `&target` or `&mut target` (spec.md §4.D "Borrow").
type BorrowExpr struct {
	Span    position.Span
	Mutable bool
	Target  Expression
}

func (e *BorrowExpr) GetSpan() position.Span { return e.Span }
func (e *BorrowExpr) String() string {
	if e.Mutable {
		return fmt.Sprintf("&mut %s", e.Target.String())
	}
	return fmt.Sprintf("&%s", e.Target.String())
}
func (*BorrowExpr) expressionNode() {}

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"

	OpLess    BinaryOp = "<"
	OpLessEq  BinaryOp = "<="
	OpGreat   BinaryOp = ">"
	OpGreatEq BinaryOp = ">="
	OpEq      BinaryOp = "=="
	OpNotEq   BinaryOp = "!="
)

// IsArithmetic reports whether op is one of + - * / %.
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return true
	default:
		return false
	}
}

// IsComparison reports whether op is one of the relational/equality operators.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpLess, OpLessEq, OpGreat, OpGreatEq, OpEq, OpNotEq:
		return true
	default:
		return false
	}
}

// BinaryExpr is `left op right` (spec.md §4.D "Binary"), covering
// arithmetic and comparison. Assignment is its own node, AssignExpr,
// since its LHS must be a place and its checking rules differ enough
// from arithmetic/comparison to warrant a distinct tag.
type BinaryExpr struct {
	Span  position.Span
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *BinaryExpr) GetSpan() position.Span { return e.Span }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op, e.Right.String())
}
func (*BinaryExpr) expressionNode() {}

// UnaryOp is the operator of a UnaryExpr.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

// UnaryExpr is `-operand` or `!operand` (spec.md §4.D "Unary"; `&e` is
// handled by BorrowExpr, not here).
type UnaryExpr struct {
	Span    position.Span
	Op      UnaryOp
	Operand Expression
}

func (e *UnaryExpr) GetSpan() position.Span { return e.Span }
func (e *UnaryExpr) String() string         { return fmt.Sprintf("%s%s", e.Op, e.Operand.String()) }
func (*UnaryExpr) expressionNode()          {}

// AssignExpr is `target = value` (spec.md §4.D "Assignment" within
// Binary, and "Field assignment" as a special case where Target is a
// MemberAccessExpr).
type AssignExpr struct {
	Span   position.Span
	Target Expression // a place: Identifier, MemberAccessExpr, or IndexExpr
	Value  Expression
}

func (e *AssignExpr) GetSpan() position.Span { return e.Span }
func (e *AssignExpr) String() string {
	return fmt.Sprintf("%s = %s", e.Target.String(), e.Value.String())
}
func (*AssignExpr) expressionNode() {}

// CallExpr is `callee(args...)` (spec.md §4.D "Call").
type CallExpr struct {
	Span   position.Span
	Callee Expression
	Args   []Expression
}

func (e *CallExpr) GetSpan() position.Span { return e.Span }
func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(parts, ", "))
}
func (*CallExpr) expressionNode() {}

// NamedFieldInit is one `name: value` entry of a named StructInitExpr.
type NamedFieldInit struct {
	Name  string
	Value Expression
}

// StructInitExpr is `S{...}` (spec.md §4.D "Struct initializer"),
// either positional (Positional non-nil) or named (Named non-nil) —
// exactly one of the two is populated.
type StructInitExpr struct {
	Span        position.Span
	StructName  string
	Positional  []Expression
	Named       []NamedFieldInit
}

func (e *StructInitExpr) GetSpan() position.Span { return e.Span }
func (e *StructInitExpr) String() string {
	if e.Named != nil {
		parts := make([]string, len(e.Named))
		for i, f := range e.Named {
			parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value.String())
		}
		return fmt.Sprintf("%s{%s}", e.StructName, strings.Join(parts, ", "))
	}
	parts := make([]string, len(e.Positional))
	for i, v := range e.Positional {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s{%s}", e.StructName, strings.Join(parts, ", "))
}
func (*StructInitExpr) expressionNode() {}

// MemberAccessExpr is `object.member` (spec.md §4.D "Member access").
type MemberAccessExpr struct {
	Span   position.Span
	Object Expression
	Member string
}

func (e *MemberAccessExpr) GetSpan() position.Span { return e.Span }
func (e *MemberAccessExpr) String() string {
	return fmt.Sprintf("%s.%s", e.Object.String(), e.Member)
}
func (*MemberAccessExpr) expressionNode() {}

// ArrayLiteralExpr is `[e0, ..., en]` (spec.md §4.D "Array literal").
type ArrayLiteralExpr struct {
	Span     position.Span
	Elements []Expression
}

func (e *ArrayLiteralExpr) GetSpan() position.Span { return e.Span }
func (e *ArrayLiteralExpr) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
func (*ArrayLiteralExpr) expressionNode() {}

// IndexExpr is `array[index]` (spec.md §4.D "Array index").
type IndexExpr struct {
	Span  position.Span
	Array Expression
	Index Expression
}

func (e *IndexExpr) GetSpan() position.Span { return e.Span }
func (e *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", e.Array.String(), e.Index.String())
}
func (*IndexExpr) expressionNode() {}

// EnumVariantExpr is `Enum::Variant(args...)` or `Enum.Variant(args...)`
// (spec.md §4.D "Enum variant").
type EnumVariantExpr struct {
	Span    position.Span
	Enum    string
	Variant string
	Args    []Expression
}

func (e *EnumVariantExpr) GetSpan() position.Span { return e.Span }
func (e *EnumVariantExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s::%s(%s)", e.Enum, e.Variant, strings.Join(parts, ", "))
}
func (*EnumVariantExpr) expressionNode() {}
