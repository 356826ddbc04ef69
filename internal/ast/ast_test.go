package ast

import (
	"testing"

	"github.com/chtholly-lang/chtholly/internal/position"
)

func testSpan(line, col int) position.Span {
	return position.Span{
		Start: position.Position{Filename: "test.cht", Line: line, Column: col},
		End:   position.Position{Filename: "test.cht", Line: line, Column: col + 1},
	}
}

func TestIdentifierAndLiterals(t *testing.T) {
	span := testSpan(1, 1)

	id := &Identifier{Span: span, Name: "x"}
	if id.GetSpan() != span {
		t.Error("Identifier span not set correctly")
	}
	if id.String() != "x" {
		t.Errorf("expected 'x', got %q", id.String())
	}

	if (&IntLiteral{Value: 42}).String() != "42" {
		t.Error("IntLiteral.String() mismatch")
	}
	if (&BoolLiteral{Value: true}).String() != "true" {
		t.Error("BoolLiteral.String() mismatch")
	}
	if (&StringLiteral{Value: "hi"}).String() != `"hi"` {
		t.Error("StringLiteral.String() mismatch")
	}
}

func TestTypeNameVariants(t *testing.T) {
	plain := &PlainType{Name: "i32"}
	if plain.String() != "i32" {
		t.Errorf("PlainType.String() = %q", plain.String())
	}

	ref := &ReferenceType{Inner: plain, Mutable: true}
	if ref.String() != "&mut i32" {
		t.Errorf("ReferenceType.String() = %q", ref.String())
	}

	arrFixed := &ArrayType{Element: plain, Size: &IntLiteral{Value: 3}}
	if arrFixed.String() != "[i32; 3]" {
		t.Errorf("ArrayType.String() (fixed) = %q", arrFixed.String())
	}

	arrDyn := &ArrayType{Element: plain}
	if arrDyn.String() != "[i32]" {
		t.Errorf("ArrayType.String() (dynamic) = %q", arrDyn.String())
	}
}

func TestBorrowExprRendering(t *testing.T) {
	target := &Identifier{Name: "x"}
	if (&BorrowExpr{Target: target}).String() != "&x" {
		t.Error("shared BorrowExpr rendering mismatch")
	}
	if (&BorrowExpr{Target: target, Mutable: true}).String() != "&mut x" {
		t.Error("mutable BorrowExpr rendering mismatch")
	}
}

func TestAssignAndMemberAccess(t *testing.T) {
	obj := &Identifier{Name: "p"}
	access := &MemberAccessExpr{Object: obj, Member: "x"}
	if access.String() != "p.x" {
		t.Errorf("MemberAccessExpr.String() = %q", access.String())
	}

	assign := &AssignExpr{Target: access, Value: &IntLiteral{Value: 3}}
	if assign.String() != "p.x = 3" {
		t.Errorf("AssignExpr.String() = %q", assign.String())
	}
}

func TestSwitchCaseDefaultRendering(t *testing.T) {
	c := &SwitchCase{IsDefault: true, Body: []Statement{&BreakStatement{}}}
	if c.String() != "default: break;" {
		t.Errorf("default SwitchCase.String() = %q", c.String())
	}

	c2 := &SwitchCase{Values: []Expression{&IntLiteral{Value: 1}}, Body: []Statement{&FallthroughStatement{}}}
	if c2.String() != "case 1: fallthrough;" {
		t.Errorf("value SwitchCase.String() = %q", c2.String())
	}
}

func TestProgramStringJoinsDeclarations(t *testing.T) {
	prog := &Program{
		Declarations: []Statement{
			&StructDecl{Name: "P", Fields: []FieldDecl{{Name: "x", Annotation: &PlainType{Name: "i32"}}}},
			&BreakStatement{},
		},
	}
	got := prog.String()
	if got == "" {
		t.Fatal("Program.String() should not be empty")
	}
}
