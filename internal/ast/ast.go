// Package ast defines the input tree the Chtholly semantic analyzer
// consumes (spec.md §6): a parser builds these nodes; this package
// does not parse or print source text itself.
//
// The teacher's internal/ast/ast.go dispatches via a Visitor interface
// (every node implements Accept(Visitor) interface{}). This package
// deliberately drops that pattern: spec.md's Design Notes call for a
// tagged variant per syntactic category with dispatch via exhaustive
// type-switch instead, "removing the dynamic_cast cascades" the
// visitor pattern exists to avoid in languages without sum types. Go's
// type-switch already gives us that, so there is no Accept method
// here — internal/sema type-switches directly over Statement and
// Expression.
package ast

import "github.com/chtholly-lang/chtholly/internal/position"

// Node is the base interface every AST node implements.
type Node interface {
	GetSpan() position.Span
	String() string
}

// Statement is the tagged variant of statement-category nodes (spec.md §4.E).
type Statement interface {
	Node
	statementNode()
}

// Expression is the tagged variant of expression-category nodes (spec.md §4.D).
type Expression interface {
	Node
	expressionNode()
}

// TypeName is the tagged variant of the parser's type-annotation nodes
// (spec.md §6): Plain(name), Reference(inner, mutable), Array(element,
// size-expr-or-none).
type TypeName interface {
	Node
	typeNameNode()
}

// Program is the root of the AST: a complete Chtholly source file.
type Program struct {
	Span         position.Span
	Declarations []Statement
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	s := ""
	for i, d := range p.Declarations {
		if i > 0 {
			s += "\n"
		}
		s += d.String()
	}
	return s
}
