package symbols

import (
	"testing"

	"github.com/chtholly-lang/chtholly/internal/types"
)

func TestScopeIsolation(t *testing.T) {
	tbl := New()
	tbl.EnterScope()
	tbl.Define(&Symbol{Name: "x", Kind: KindVariable, Type: types.NewInteger(32, true)})
	if _, ok := tbl.Lookup("x"); !ok {
		t.Fatal("x should be visible inside its own scope")
	}
	tbl.LeaveScope()

	if _, ok := tbl.Lookup("x"); ok {
		t.Error("x should not be visible once its scope has closed")
	}
}

func TestDefineRejectsRedeclarationInSameScope(t *testing.T) {
	tbl := New()
	sym := &Symbol{Name: "x", Kind: KindVariable, Type: types.NewInteger(32, true)}
	if !tbl.Define(sym) {
		t.Fatal("first definition of x should succeed")
	}
	if tbl.Define(&Symbol{Name: "x", Kind: KindVariable, Type: types.NewInteger(32, true)}) {
		t.Error("redeclaring x in the same scope should fail")
	}
}

func TestDefineAllowsShadowingInNestedScope(t *testing.T) {
	tbl := New()
	outer := &Symbol{Name: "x", Kind: KindVariable, Type: types.NewInteger(32, true)}
	tbl.Define(outer)

	tbl.EnterScope()
	inner := &Symbol{Name: "x", Kind: KindVariable, Type: types.NewFloat(64)}
	if !tbl.Define(inner) {
		t.Fatal("shadowing x in a nested scope should succeed")
	}
	got, _ := tbl.Lookup("x")
	if got != inner {
		t.Error("lookup should find the shadowing declaration")
	}
	tbl.LeaveScope()

	got, _ = tbl.Lookup("x")
	if got != outer {
		t.Error("leaving the nested scope should restore visibility of the outer declaration")
	}
}

func TestLifetimeIndexIncreasesWithDepth(t *testing.T) {
	tbl := New()
	a := &Symbol{Name: "a", Kind: KindVariable}
	tbl.Define(a)

	tbl.EnterScope()
	b := &Symbol{Name: "b", Kind: KindVariable}
	tbl.Define(b)

	if !(a.Lifetime < b.Lifetime) {
		t.Errorf("inner binding lifetime %d should exceed outer binding lifetime %d", b.Lifetime, a.Lifetime)
	}
	tbl.LeaveScope()
}

func TestBorrowReleaseOnScopeExit(t *testing.T) {
	tbl := New()
	outer := &Symbol{Name: "x", Kind: KindVariable, Mutable: true}
	tbl.Define(outer)

	tbl.EnterScope()
	outer.Borrow.SharedCount++
	tbl.RecordBorrow(outer, false)
	if outer.Borrow.SharedCount != 1 {
		t.Fatalf("expected shared_count 1 while borrow is outstanding, got %d", outer.Borrow.SharedCount)
	}
	tbl.LeaveScope()

	if outer.Borrow.SharedCount != 0 {
		t.Errorf("leaving the borrowing scope should release the borrow, shared_count = %d", outer.Borrow.SharedCount)
	}
}

func TestBorrowReleaseDoesNotTouchUnrelatedBindings(t *testing.T) {
	tbl := New()
	untouched := &Symbol{Name: "y", Kind: KindVariable, Mutable: true}
	tbl.Define(untouched)
	untouched.Borrow.SharedCount = 3

	tbl.EnterScope()
	x := &Symbol{Name: "x", Kind: KindVariable, Mutable: true}
	tbl.Define(x)
	tbl.EnterScope()
	tbl.LeaveScope()
	tbl.LeaveScope()

	if untouched.Borrow.SharedCount != 3 {
		t.Errorf("unrelated borrow accountant should be untouched by nested scope exits, got %d", untouched.Borrow.SharedCount)
	}
}

func TestIsDefinedInCurrentScope(t *testing.T) {
	tbl := New()
	tbl.Define(&Symbol{Name: "x", Kind: KindVariable})
	tbl.EnterScope()
	if tbl.IsDefinedInCurrentScope("x") {
		t.Error("x was declared in the outer scope, not the current one")
	}
	tbl.Define(&Symbol{Name: "y", Kind: KindVariable})
	if !tbl.IsDefinedInCurrentScope("y") {
		t.Error("y was declared in the current scope")
	}
}
