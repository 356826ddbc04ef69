package ast

import (
	"fmt"
	"strings"

	"github.com/chtholly-lang/chtholly/internal/position"
)

// ExpressionStatement wraps an expression used for its side effects
// (an assignment or a call), appearing where a statement is expected.
type ExpressionStatement struct {
	Span position.Span
	Expr Expression
}

func (s *ExpressionStatement) GetSpan() position.Span { return s.Span }
func (s *ExpressionStatement) String() string          { return s.Expr.String() + ";" }
func (*ExpressionStatement) statementNode()            {}

// LetStatement is `let [mut] name [: T] = init` (spec.md §4.E "Let").
type LetStatement struct {
	Span       position.Span
	Name       string
	Mutable    bool
	Annotation TypeName // nil when the type is inferred from Init
	Init       Expression
}

func (s *LetStatement) GetSpan() position.Span { return s.Span }
func (s *LetStatement) String() string {
	mut := ""
	if s.Mutable {
		mut = "mut "
	}
	ty := ""
	if s.Annotation != nil {
		ty = ": " + s.Annotation.String()
	}
	return fmt.Sprintf("let %s%s%s = %s;", mut, s.Name, ty, s.Init.String())
}
func (*LetStatement) statementNode() {}

// BlockStatement is `{ stmts... }` (spec.md §4.E "Block").
type BlockStatement struct {
	Span       position.Span
	Statements []Statement
}

func (s *BlockStatement) GetSpan() position.Span { return s.Span }
func (s *BlockStatement) String() string {
	parts := make([]string, len(s.Statements))
	for i, st := range s.Statements {
		parts[i] = st.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}
func (*BlockStatement) statementNode() {}

// IfStatement is `if (cond) then [else elseBranch]` (spec.md §4.E "If").
// ElseBranch is nil, a *BlockStatement, or another *IfStatement (for
// `else if`).
type IfStatement struct {
	Span       position.Span
	Condition  Expression
	Then       *BlockStatement
	ElseBranch Statement
}

func (s *IfStatement) GetSpan() position.Span { return s.Span }
func (s *IfStatement) String() string {
	if s.ElseBranch == nil {
		return fmt.Sprintf("if (%s) %s", s.Condition.String(), s.Then.String())
	}
	return fmt.Sprintf("if (%s) %s else %s", s.Condition.String(), s.Then.String(), s.ElseBranch.String())
}
func (*IfStatement) statementNode() {}

// WhileStatement is `while (cond) body` (spec.md §4.E "While").
type WhileStatement struct {
	Span      position.Span
	Condition Expression
	Body      *BlockStatement
}

func (s *WhileStatement) GetSpan() position.Span { return s.Span }
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) %s", s.Condition.String(), s.Body.String())
}
func (*WhileStatement) statementNode() {}

// DoWhileStatement is `do body while (cond)` (spec.md §4.E "Do-while").
type DoWhileStatement struct {
	Span      position.Span
	Body      *BlockStatement
	Condition Expression
}

func (s *DoWhileStatement) GetSpan() position.Span { return s.Span }
func (s *DoWhileStatement) String() string {
	return fmt.Sprintf("do %s while (%s)", s.Body.String(), s.Condition.String())
}
func (*DoWhileStatement) statementNode() {}

// ForStatement is `for (init; cond; step) body` (spec.md §4.E "For").
// Init, Condition, and Step are each independently optional.
type ForStatement struct {
	Span      position.Span
	Init      Statement
	Condition Expression
	Step      Statement
	Body      *BlockStatement
}

func (s *ForStatement) GetSpan() position.Span { return s.Span }
func (s *ForStatement) String() string {
	init, cond, step := "", "", ""
	if s.Init != nil {
		init = s.Init.String()
	}
	if s.Condition != nil {
		cond = s.Condition.String()
	}
	if s.Step != nil {
		step = s.Step.String()
	}
	return fmt.Sprintf("for (%s; %s; %s) %s", init, cond, step, s.Body.String())
}
func (*ForStatement) statementNode() {}

// SwitchCase is one `case v0, ...:` or `default:` arm of a
// SwitchStatement. Values is empty when IsDefault is true.
type SwitchCase struct {
	Span      position.Span
	Values    []Expression
	IsDefault bool
	Body      []Statement
}

func (c *SwitchCase) GetSpan() position.Span { return c.Span }
func (c *SwitchCase) String() string {
	parts := make([]string, len(c.Body))
	for i, st := range c.Body {
		parts[i] = st.String()
	}
	if c.IsDefault {
		return "default: " + strings.Join(parts, " ")
	}
	vals := make([]string, len(c.Values))
	for i, v := range c.Values {
		vals[i] = v.String()
	}
	return "case " + strings.Join(vals, ", ") + ": " + strings.Join(parts, " ")
}

// SwitchStatement is `switch (discriminant) { cases... }` (spec.md §4.E "Switch").
type SwitchStatement struct {
	Span         position.Span
	Discriminant Expression
	Cases        []*SwitchCase
}

func (s *SwitchStatement) GetSpan() position.Span { return s.Span }
func (s *SwitchStatement) String() string {
	parts := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		parts[i] = c.String()
	}
	return fmt.Sprintf("switch (%s) { %s }", s.Discriminant.String(), strings.Join(parts, " "))
}
func (*SwitchStatement) statementNode() {}

// BreakStatement is `break` (spec.md §4.E "Break").
type BreakStatement struct{ Span position.Span }

func (s *BreakStatement) GetSpan() position.Span { return s.Span }
func (s *BreakStatement) String() string         { return "break;" }
func (*BreakStatement) statementNode()           {}

// ContinueStatement is `continue` (spec.md §4.E "Continue").
type ContinueStatement struct{ Span position.Span }

func (s *ContinueStatement) GetSpan() position.Span { return s.Span }
func (s *ContinueStatement) String() string         { return "continue;" }
func (*ContinueStatement) statementNode()           {}

// FallthroughStatement is `fallthrough` (spec.md §4.E "Fallthrough"),
// legal only as the last statement of a switch case body.
type FallthroughStatement struct{ Span position.Span }

func (s *FallthroughStatement) GetSpan() position.Span { return s.Span }
func (s *FallthroughStatement) String() string         { return "fallthrough;" }
func (*FallthroughStatement) statementNode()           {}

// ReturnStatement is `return [value]` (spec.md §4.E "Return").
type ReturnStatement struct {
	Span  position.Span
	Value Expression // nil for a bare `return;`
}

func (s *ReturnStatement) GetSpan() position.Span { return s.Span }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value.String())
}
func (*ReturnStatement) statementNode() {}

// Param is one parameter of a FunctionDecl.
type Param struct {
	Name       string
	Annotation TypeName
	Mutable    bool
}

// FunctionDecl is `fn f(p1: T1, ...): R { body }` (spec.md §4.E
// "Function declaration"). ReturnType is nil for an implicit void
// return.
type FunctionDecl struct {
	Span       position.Span
	Name       string
	Parameters []Param
	ReturnType TypeName
	Body       *BlockStatement
}

func (s *FunctionDecl) GetSpan() position.Span { return s.Span }
func (s *FunctionDecl) String() string {
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		mut := ""
		if p.Mutable {
			mut = "mut "
		}
		parts[i] = fmt.Sprintf("%s%s: %s", mut, p.Name, p.Annotation.String())
	}
	ret := "void"
	if s.ReturnType != nil {
		ret = s.ReturnType.String()
	}
	return fmt.Sprintf("fn %s(%s): %s %s", s.Name, strings.Join(parts, ", "), ret, s.Body.String())
}
func (*FunctionDecl) statementNode() {}

// FieldDecl is one member of a StructDecl or ClassDecl.
type FieldDecl struct {
	Name       string
	Annotation TypeName
	Mutable    bool
}

// StructDecl is `struct S { fields... }` (spec.md §4.E "Struct declaration").
type StructDecl struct {
	Span   position.Span
	Name   string
	Fields []FieldDecl
}

func (s *StructDecl) GetSpan() position.Span { return s.Span }
func (s *StructDecl) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		mut := ""
		if f.Mutable {
			mut = "mut "
		}
		parts[i] = fmt.Sprintf("let %s%s: %s;", mut, f.Name, f.Annotation.String())
	}
	return fmt.Sprintf("struct %s { %s }", s.Name, strings.Join(parts, " "))
}
func (*StructDecl) statementNode() {}

// ClassDecl is `class C { fields... methods... }` (spec.md §4.E "Class declaration").
type ClassDecl struct {
	Span    position.Span
	Name    string
	Fields  []FieldDecl
	Methods []*FunctionDecl
}

func (s *ClassDecl) GetSpan() position.Span { return s.Span }
func (s *ClassDecl) String() string {
	fieldParts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		mut := ""
		if f.Mutable {
			mut = "mut "
		}
		fieldParts[i] = fmt.Sprintf("let %s%s: %s;", mut, f.Name, f.Annotation.String())
	}
	methodParts := make([]string, len(s.Methods))
	for i, m := range s.Methods {
		methodParts[i] = m.String()
	}
	return fmt.Sprintf("class %s { %s %s }", s.Name, strings.Join(fieldParts, " "), strings.Join(methodParts, " "))
}
func (*ClassDecl) statementNode() {}

// EnumVariantDecl is one `Name(payload...)` case of an EnumDecl.
type EnumVariantDecl struct {
	Name    string
	Payload []TypeName
}

// EnumDecl is `enum E { variants... }` (spec.md §4.E "Enum declaration").
type EnumDecl struct {
	Span     position.Span
	Name     string
	Variants []EnumVariantDecl
}

func (s *EnumDecl) GetSpan() position.Span { return s.Span }
func (s *EnumDecl) String() string {
	parts := make([]string, len(s.Variants))
	for i, v := range s.Variants {
		payload := make([]string, len(v.Payload))
		for j, p := range v.Payload {
			payload[j] = p.String()
		}
		parts[i] = fmt.Sprintf("%s(%s)", v.Name, strings.Join(payload, ", "))
	}
	return fmt.Sprintf("enum %s { %s }", s.Name, strings.Join(parts, ", "))
}
func (*EnumDecl) statementNode() {}
