package sema

import (
	"testing"

	"github.com/chtholly-lang/chtholly/internal/ast"
	"github.com/chtholly-lang/chtholly/internal/diagnostics"
)

func hasKind(diags []diagnostics.Diagnostic, kind diagnostics.Kind) bool {
	for _, d := range diags {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func plain(name string) *ast.PlainType { return &ast.PlainType{Name: name} }

func fn(name string, ret ast.TypeName, body ...ast.Statement) *ast.FunctionDecl {
	return &ast.FunctionDecl{Name: name, ReturnType: ret, Body: &ast.BlockStatement{Statements: body}}
}

func analyze(decls ...ast.Statement) []diagnostics.Diagnostic {
	prog := &ast.Program{Declarations: decls}
	return NewAnalyzer().Analyze(prog).All()
}

func TestCleanProgramHasNoDiagnostics(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Mutable: true, Init: &ast.IntLiteral{Value: 1}},
		&ast.ExpressionStatement{Expr: &ast.AssignExpr{
			Target: &ast.Identifier{Name: "x"},
			Value:  &ast.IntLiteral{Value: 2},
		}},
	))
	if len(got) != 0 {
		t.Fatalf("expected no diagnostics, got %v", got)
	}
}

func TestUndeclaredVariable(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.ExpressionStatement{Expr: &ast.Identifier{Name: "missing"}},
	))
	if !hasKind(got, diagnostics.KindUndeclaredVariable) {
		t.Fatalf("expected KindUndeclaredVariable, got %v", got)
	}
}

func TestUseAfterMove(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Init: &ast.StringLiteral{Value: "hi"}},
		&ast.LetStatement{Name: "y", Init: &ast.Identifier{Name: "x"}},
		&ast.ExpressionStatement{Expr: &ast.Identifier{Name: "x"}},
	))
	if !hasKind(got, diagnostics.KindUseAfterMove) {
		t.Fatalf("expected KindUseAfterMove after moving x into y, got %v", got)
	}
}

func TestCopyTypesDoNotMove(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Init: &ast.IntLiteral{Value: 1}},
		&ast.LetStatement{Name: "y", Init: &ast.Identifier{Name: "x"}},
		&ast.ExpressionStatement{Expr: &ast.Identifier{Name: "x"}},
	))
	if hasKind(got, diagnostics.KindUseAfterMove) {
		t.Fatalf("integers are Copy; reusing x after binding y should not move it, got %v", got)
	}
}

func TestMoveWhileBorrowed(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Init: &ast.StringLiteral{Value: "hi"}},
		&ast.LetStatement{Name: "r", Init: &ast.BorrowExpr{Target: &ast.Identifier{Name: "x"}}},
		&ast.LetStatement{Name: "y", Init: &ast.Identifier{Name: "x"}},
	))
	if !hasKind(got, diagnostics.KindMoveWhileBorrowed) {
		t.Fatalf("expected KindMoveWhileBorrowed while r still borrows x, got %v", got)
	}
}

func TestCallArgumentBorrowIsReleasedOnReturn(t *testing.T) {
	// spec.md §9 settles "call-only" borrow release: a borrow taken only
	// to pass a call argument must not outlive the call itself.
	useRef := fn("use_ref", plain("void"))
	useRef.Parameters = []ast.Param{{Name: "r", Annotation: &ast.ReferenceType{Inner: plain("i32")}}}

	main := fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Mutable: true, Init: &ast.IntLiteral{Value: 5}},
		&ast.ExpressionStatement{Expr: &ast.CallExpr{
			Callee: &ast.Identifier{Name: "use_ref"},
			Args:   []ast.Expression{&ast.BorrowExpr{Target: &ast.Identifier{Name: "x"}}},
		}},
		&ast.LetStatement{Name: "y", Init: &ast.BorrowExpr{Mutable: true, Target: &ast.Identifier{Name: "x"}}},
	)

	got := analyze(useRef, main)
	if len(got) != 0 {
		t.Fatalf("borrow taken for a call argument should be released on return, got %v", got)
	}
}

func TestConflictingMutableBorrow(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Mutable: true, Init: &ast.IntLiteral{Value: 1}},
		&ast.LetStatement{Name: "r1", Init: &ast.BorrowExpr{Target: &ast.Identifier{Name: "x"}}},
		&ast.LetStatement{Name: "r2", Init: &ast.BorrowExpr{Mutable: true, Target: &ast.Identifier{Name: "x"}}},
	))
	if !hasKind(got, diagnostics.KindConflictingBorrow) {
		t.Fatalf("expected KindConflictingBorrow for a mutable borrow while shared-borrowed, got %v", got)
	}
}

func TestAssignToImmutable(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Mutable: false, Init: &ast.IntLiteral{Value: 1}},
		&ast.ExpressionStatement{Expr: &ast.AssignExpr{Target: &ast.Identifier{Name: "x"}, Value: &ast.IntLiteral{Value: 2}}},
	))
	if !hasKind(got, diagnostics.KindAssignToImmutable) {
		t.Fatalf("expected KindAssignToImmutable, got %v", got)
	}
}

func TestDanglingReferenceOnAssignment(t *testing.T) {
	got := analyze(fn("f", plain("void"),
		&ast.LetStatement{Name: "a", Mutable: true, Init: &ast.IntLiteral{Value: 1}},
		&ast.LetStatement{Name: "r", Mutable: true, Init: &ast.BorrowExpr{Target: &ast.Identifier{Name: "a"}}},
		&ast.BlockStatement{Statements: []ast.Statement{
			&ast.LetStatement{Name: "b", Init: &ast.IntLiteral{Value: 2}},
			&ast.ExpressionStatement{Expr: &ast.AssignExpr{
				Target: &ast.Identifier{Name: "r"},
				Value:  &ast.BorrowExpr{Target: &ast.Identifier{Name: "b"}},
			}},
		}},
	))
	if !hasKind(got, diagnostics.KindDanglingReference) {
		t.Fatalf("expected KindDanglingReference when r outlives b, got %v", got)
	}
}

func TestReferenceEscapesFunction(t *testing.T) {
	got := analyze(fn("make_ref", &ast.ReferenceType{Inner: plain("i32")},
		&ast.LetStatement{Name: "x", Init: &ast.IntLiteral{Value: 5}},
		&ast.ReturnStatement{Value: &ast.BorrowExpr{Target: &ast.Identifier{Name: "x"}}},
	))
	if !hasKind(got, diagnostics.KindReferenceEscapesFunction) {
		t.Fatalf("expected KindReferenceEscapesFunction, got %v", got)
	}
}

func TestBreakOutsideLoop(t *testing.T) {
	got := analyze(fn("main", plain("void"), &ast.BreakStatement{}))
	if !hasKind(got, diagnostics.KindBreakOutsideLoopOrSwitch) {
		t.Fatalf("expected KindBreakOutsideLoopOrSwitch, got %v", got)
	}
}

func TestBreakInsideWhileIsFine(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.WhileStatement{
			Condition: &ast.BoolLiteral{Value: true},
			Body:      &ast.BlockStatement{Statements: []ast.Statement{&ast.BreakStatement{}}},
		},
	))
	if hasKind(got, diagnostics.KindBreakOutsideLoopOrSwitch) {
		t.Fatalf("break inside a while loop should be valid, got %v", got)
	}
}

func TestReturnTypeMismatch(t *testing.T) {
	got := analyze(fn("f", plain("i32"),
		&ast.ReturnStatement{Value: &ast.StringLiteral{Value: "nope"}},
	))
	if !hasKind(got, diagnostics.KindReturnTypeMismatch) {
		t.Fatalf("expected KindReturnTypeMismatch, got %v", got)
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	got := analyze(&ast.ReturnStatement{Value: &ast.IntLiteral{Value: 1}})
	if !hasKind(got, diagnostics.KindReturnOutsideFunction) {
		t.Fatalf("expected KindReturnOutsideFunction, got %v", got)
	}
}

func TestSwitchMultipleDefault(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.SwitchStatement{
			Discriminant: &ast.IntLiteral{Value: 1},
			Cases: []*ast.SwitchCase{
				{IsDefault: true, Body: []ast.Statement{&ast.BreakStatement{}}},
				{IsDefault: true, Body: []ast.Statement{&ast.BreakStatement{}}},
			},
		},
	))
	if !hasKind(got, diagnostics.KindMultipleDefault) {
		t.Fatalf("expected KindMultipleDefault, got %v", got)
	}
}

func TestSwitchDuplicateCase(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.SwitchStatement{
			Discriminant: &ast.IntLiteral{Value: 1},
			Cases: []*ast.SwitchCase{
				{Values: []ast.Expression{&ast.IntLiteral{Value: 1}}, Body: []ast.Statement{&ast.BreakStatement{}}},
				{Values: []ast.Expression{&ast.IntLiteral{Value: 1}}, Body: []ast.Statement{&ast.BreakStatement{}}},
			},
		},
	))
	if !hasKind(got, diagnostics.KindDuplicateCase) {
		t.Fatalf("expected KindDuplicateCase, got %v", got)
	}
}

func TestFallthroughNotLast(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.SwitchStatement{
			Discriminant: &ast.IntLiteral{Value: 1},
			Cases: []*ast.SwitchCase{
				{Values: []ast.Expression{&ast.IntLiteral{Value: 1}}, Body: []ast.Statement{
					&ast.FallthroughStatement{},
					&ast.BreakStatement{},
				}},
			},
		},
	))
	if !hasKind(got, diagnostics.KindFallthroughNotLast) {
		t.Fatalf("expected KindFallthroughNotLast, got %v", got)
	}
}

func TestStructInitMissingAndDuplicateFields(t *testing.T) {
	structDecl := &ast.StructDecl{Name: "Point", Fields: []ast.FieldDecl{
		{Name: "x", Annotation: plain("i32")},
		{Name: "y", Annotation: plain("i32")},
	}}

	missing := analyze(structDecl, fn("main", plain("void"),
		&ast.ExpressionStatement{Expr: &ast.StructInitExpr{
			StructName: "Point",
			Named:      []ast.NamedFieldInit{{Name: "x", Value: &ast.IntLiteral{Value: 1}}},
		}},
	))
	if !hasKind(missing, diagnostics.KindWrongArgumentCount) {
		t.Fatalf("expected KindWrongArgumentCount for missing field y, got %v", missing)
	}

	duplicate := analyze(structDecl, fn("main", plain("void"),
		&ast.ExpressionStatement{Expr: &ast.StructInitExpr{
			StructName: "Point",
			Named: []ast.NamedFieldInit{
				{Name: "x", Value: &ast.IntLiteral{Value: 1}},
				{Name: "x", Value: &ast.IntLiteral{Value: 2}},
				{Name: "y", Value: &ast.IntLiteral{Value: 3}},
			},
		}},
	))
	if !hasKind(duplicate, diagnostics.KindRedeclaration) {
		t.Fatalf("expected KindRedeclaration for duplicate named field x, got %v", duplicate)
	}
}

func TestMemberAccessOnClassMethod(t *testing.T) {
	classDecl := &ast.ClassDecl{
		Name:   "Counter",
		Fields: []ast.FieldDecl{{Name: "n", Annotation: plain("i32"), Mutable: true}},
		Methods: []*ast.FunctionDecl{
			fn("bump", plain("void"),
				&ast.ExpressionStatement{Expr: &ast.AssignExpr{
					Target: &ast.MemberAccessExpr{Object: &ast.SelfExpr{}, Member: "n"},
					Value:  &ast.IntLiteral{Value: 1},
				}},
			),
		},
	}
	got := analyze(classDecl)
	if len(got) != 0 {
		t.Fatalf("mutating self.n through a mutable field should be valid, got %v", got)
	}
}

func TestSelfOutsideMethod(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.ExpressionStatement{Expr: &ast.SelfExpr{}},
	))
	if !hasKind(got, diagnostics.KindUndeclaredVariable) {
		t.Fatalf("expected 'self' outside a method to report KindUndeclaredVariable, got %v", got)
	}
}

func TestRedeclarationInSameScope(t *testing.T) {
	got := analyze(fn("main", plain("void"),
		&ast.LetStatement{Name: "x", Init: &ast.IntLiteral{Value: 1}},
		&ast.LetStatement{Name: "x", Init: &ast.IntLiteral{Value: 2}},
	))
	if !hasKind(got, diagnostics.KindRedeclaration) {
		t.Fatalf("expected KindRedeclaration, got %v", got)
	}
}

func TestCallingAStructNameIsNotAConstructor(t *testing.T) {
	// Struct/class names live only in the type registry, not the symbol
	// table, so a bare-identifier call naming one is reported as an
	// undeclared variable rather than treated as an implicit constructor
	// call: Chtholly instances are only built via struct-init syntax.
	structDecl := &ast.StructDecl{Name: "Point", Fields: []ast.FieldDecl{{Name: "x", Annotation: plain("i32")}}}
	got := analyze(structDecl, fn("main", plain("void"),
		&ast.ExpressionStatement{Expr: &ast.CallExpr{
			Callee: &ast.Identifier{Name: "Point"},
			Args:   []ast.Expression{&ast.IntLiteral{Value: 1}},
		}},
	))
	if !hasKind(got, diagnostics.KindUndeclaredVariable) {
		t.Fatalf("Point(1) should report KindUndeclaredVariable, not an implicit constructor call, got %v", got)
	}
	if hasKind(got, diagnostics.KindCalleeNotCallable) {
		t.Fatalf("Point(1) should not reach the CalleeNotCallable path, got %v", got)
	}
}
