package sema

import (
	"github.com/chtholly-lang/chtholly/internal/ast"
	"github.com/chtholly-lang/chtholly/internal/diagnostics"
	"github.com/chtholly-lang/chtholly/internal/lifetime"
	"github.com/chtholly-lang/chtholly/internal/position"
	"github.com/chtholly-lang/chtholly/internal/symbols"
	"github.com/chtholly-lang/chtholly/internal/types"
)

// checkExpr checks e as a read: the resulting value is inspected or
// discarded, never bound into a new owner. Call sites that instead bind
// the value (let/assign RHS, call/constructor/enum-payload arguments)
// use checkExprMove.
func (a *Analyzer) checkExpr(e ast.Expression) *types.Type {
	return a.checkExprCtx(e, false)
}

// checkExprMove checks e where its value is being consumed into a new
// owner (spec.md §4.D's "move-use"): the RHS of a let/assign binding a
// non-Copy type, or an argument passed for a non-Copy parameter.
func (a *Analyzer) checkExprMove(e ast.Expression) *types.Type {
	return a.checkExprCtx(e, true)
}

func (a *Analyzer) checkExprCtx(e ast.Expression, asMove bool) *types.Type {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return a.types.InternPrimitive("i32")
	case *ast.FloatLiteral:
		return a.types.InternPrimitive("f64")
	case *ast.StringLiteral:
		return a.types.InternPrimitive("string")
	case *ast.CharLiteral:
		return a.types.InternPrimitive("char")
	case *ast.BoolLiteral:
		return a.types.InternPrimitive("bool")
	case *ast.Identifier:
		return a.checkIdentifier(n, asMove)
	case *ast.SelfExpr:
		return a.checkSelf(n)
	case *ast.BorrowExpr:
		return a.checkBorrow(n)
	case *ast.BinaryExpr:
		return a.checkBinary(n)
	case *ast.UnaryExpr:
		return a.checkUnary(n)
	case *ast.AssignExpr:
		return a.checkAssign(n)
	case *ast.CallExpr:
		return a.checkCall(n)
	case *ast.StructInitExpr:
		return a.checkStructInit(n)
	case *ast.MemberAccessExpr:
		return a.checkMemberAccess(n)
	case *ast.ArrayLiteralExpr:
		return a.checkArrayLiteral(n)
	case *ast.IndexExpr:
		return a.checkIndex(n)
	case *ast.EnumVariantExpr:
		return a.checkEnumVariant(n)
	default:
		return nil
	}
}

// checkIdentifier implements spec.md §4.D "Variable reference": lookup,
// use-after-move, move-while-borrowed, and the Moved-state transition
// for a non-Copy move-use. The UseAfterMove check applies to any use
// (read or move); the borrow conflict and state transition apply only
// when asMove is true and the binding's type is non-Copy.
func (a *Analyzer) checkIdentifier(id *ast.Identifier, asMove bool) *types.Type {
	sym, ok := a.symtab.Lookup(id.Name)
	if !ok {
		a.diags.Error(diagnostics.KindUndeclaredVariable, id.Span, "undeclared variable '%s'", id.Name)
		return nil
	}
	if sym.Ownership == symbols.Moved {
		a.diags.Error(diagnostics.KindUseAfterMove, id.Span, "use of moved binding '%s'", id.Name)
	}
	if asMove && !sym.Type.IsCopy() {
		if sym.Borrow.IsBorrowed() {
			a.diags.Error(diagnostics.KindMoveWhileBorrowed, id.Span, "cannot move '%s' while it is borrowed", id.Name)
		} else {
			sym.Ownership = symbols.Moved
		}
	}
	return sym.Type
}

// checkSelf resolves the `self` reference, valid only inside a method
// body (installed by checkClassMethods).
func (a *Analyzer) checkSelf(se *ast.SelfExpr) *types.Type {
	if a.selfSymbol == nil {
		a.diags.Error(diagnostics.KindUndeclaredVariable, se.Span, "'self' used outside of a method")
		return nil
	}
	return a.currentClass
}

// checkBorrow implements spec.md §4.D "Borrow": mutability and
// conflicting-borrow checks for &mut, conflicting-borrow checks for &,
// and the accountant update plus borrow-release bookkeeping for
// whichever succeeds. The produced Reference carries the lifetime of
// the borrowed binding itself, per spec.md's "Return
// Reference{inner=type(x), mutable=…, lifetime=lifetime(x)}".
func (a *Analyzer) checkBorrow(b *ast.BorrowExpr) *types.Type {
	id, ok := b.Target.(*ast.Identifier)
	if !ok {
		// Borrowing a place more complex than a bare identifier (e.g.
		// &p.x): check the place for name/member errors, but the borrow
		// accountant only tracks bare bindings, so skip its bookkeeping.
		innerTy := a.checkExprCtx(b.Target, false)
		if innerTy == nil {
			return nil
		}
		return a.types.InternReference(innerTy, b.Mutable, int(a.symtab.CurrentLifetime()))
	}

	sym, ok := a.symtab.Lookup(id.Name)
	if !ok {
		a.diags.Error(diagnostics.KindUndeclaredVariable, id.Span, "undeclared variable '%s'", id.Name)
		return nil
	}

	if b.Mutable {
		switch {
		case !sym.Mutable:
			a.diags.Error(diagnostics.KindImmutableBorrowedMutably, b.Span, "cannot take a mutable borrow of immutable binding '%s'", id.Name)
		case sym.Borrow.IsBorrowed():
			a.diags.Error(diagnostics.KindConflictingBorrow, b.Span, "'%s' is already borrowed", id.Name)
		case sym.Ownership == symbols.Moved:
			a.diags.Error(diagnostics.KindUseAfterMove, b.Span, "cannot borrow moved binding '%s'", id.Name)
		default:
			sym.Borrow.MutableBorrowed = true
			a.symtab.RecordBorrow(sym, true)
		}
	} else {
		switch {
		case sym.Borrow.MutableBorrowed:
			a.diags.Error(diagnostics.KindConflictingBorrow, b.Span, "'%s' is already mutably borrowed", id.Name)
		case sym.Ownership == symbols.Moved:
			a.diags.Error(diagnostics.KindUseAfterMove, b.Span, "cannot borrow moved binding '%s'", id.Name)
		default:
			sym.Borrow.SharedCount++
			a.symtab.RecordBorrow(sym, false)
		}
	}

	return a.types.InternReference(sym.Type, b.Mutable, int(sym.Lifetime))
}

// checkBinary implements spec.md §4.D "Binary": arithmetic operands
// must both be numeric (an int/float mix coerces to float), comparison
// operands must match, and the result is the operand type or bool.
func (a *Analyzer) checkBinary(be *ast.BinaryExpr) *types.Type {
	lt := a.checkExprCtx(be.Left, false)
	rt := a.checkExprCtx(be.Right, false)

	if be.Op.IsComparison() {
		if lt != nil && rt != nil && !types.StructuralEqual(lt, rt) {
			a.diags.Error(diagnostics.KindArgumentTypeMismatch, be.Span, "cannot compare '%s' with '%s'", lt, rt)
		}
		return a.types.InternPrimitive("bool")
	}

	if lt == nil || rt == nil {
		return nil
	}
	if !isNumeric(lt) || !isNumeric(rt) {
		a.diags.Error(diagnostics.KindArgumentTypeMismatch, be.Span, "operator '%s' requires numeric operands, found '%s' and '%s'", be.Op, lt, rt)
		return nil
	}
	if lt.Kind == types.KindFloat || rt.Kind == types.KindFloat {
		if lt.Kind == types.KindFloat {
			return lt
		}
		return rt
	}
	if !types.StructuralEqual(lt, rt) {
		a.diags.Error(diagnostics.KindArgumentTypeMismatch, be.Span, "mismatched operand types '%s' and '%s'", lt, rt)
	}
	return lt
}

func (a *Analyzer) checkUnary(ue *ast.UnaryExpr) *types.Type {
	t := a.checkExprCtx(ue.Operand, false)
	if t == nil {
		return nil
	}
	switch ue.Op {
	case ast.OpNeg:
		if !isNumeric(t) {
			a.diags.Error(diagnostics.KindArgumentTypeMismatch, ue.Span, "unary '-' requires a numeric operand, found '%s'", t)
		}
		return t
	case ast.OpNot:
		if t.Kind != types.KindBool {
			a.diags.Error(diagnostics.KindNonBoolCondition, ue.Span, "unary '!' requires a bool operand, found '%s'", t)
		}
		return a.types.InternPrimitive("bool")
	default:
		return t
	}
}

// checkAssign implements spec.md §4.D "Assignment" and "Field
// assignment": the target must resolve to an assignable place
// (identifier, field, or array element), and dangling-reference and
// type-mismatch checks run against the value.
func (a *Analyzer) checkAssign(asn *ast.AssignExpr) *types.Type {
	switch target := asn.Target.(type) {
	case *ast.Identifier:
		return a.checkAssignIdentifier(target, asn)
	case *ast.MemberAccessExpr:
		return a.checkFieldAssign(target, asn.Value)
	case *ast.IndexExpr:
		return a.checkIndexAssign(target, asn.Value)
	default:
		a.checkExprCtx(asn.Target, false)
		a.checkExprMove(asn.Value)
		return nil
	}
}

func (a *Analyzer) checkAssignIdentifier(target *ast.Identifier, asn *ast.AssignExpr) *types.Type {
	sym, ok := a.symtab.Lookup(target.Name)
	if !ok {
		a.diags.Error(diagnostics.KindUndeclaredVariable, target.Span, "undeclared variable '%s'", target.Name)
		a.checkExprMove(asn.Value)
		return nil
	}
	if !sym.Mutable {
		a.diags.Error(diagnostics.KindAssignToImmutable, asn.Span, "cannot assign to immutable binding '%s'", target.Name)
	}
	if sym.Borrow.IsBorrowed() {
		a.diags.Error(diagnostics.KindConflictingBorrow, asn.Span, "cannot assign to '%s' while it is borrowed", target.Name)
	}

	valType := a.checkExprMove(asn.Value)
	if valType != nil && sym.Type != nil && !types.StructuralEqual(valType, sym.Type) {
		a.diags.Error(diagnostics.KindAssignmentTypeMismatch, asn.Span, "cannot assign value of type '%s' to binding of type '%s'", valType, sym.Type)
	}
	a.checkDangling(sym.Lifetime, valType, asn.Span)
	sym.Ownership = symbols.Valid
	return sym.Type
}

func (a *Analyzer) checkIndexAssign(target *ast.IndexExpr, value ast.Expression) *types.Type {
	arrType := a.checkExprCtx(target.Array, false)
	idxType := a.checkExprCtx(target.Index, false)
	if idxType != nil && idxType.Kind != types.KindInteger {
		a.diags.Error(diagnostics.KindArgumentTypeMismatch, target.Index.GetSpan(), "array index must be an integer, found '%s'", idxType)
	}

	var elemType *types.Type
	if arrType != nil {
		if arrType.Kind == types.KindArray || arrType.Kind == types.KindDynamicArray {
			elemType = arrType.ElemType
		} else {
			a.diags.Error(diagnostics.KindMemberAccessOnNonAggregate, target.Span, "cannot index non-array type '%s'", arrType)
		}
	}

	valType := a.checkExprMove(value)
	if elemType != nil && valType != nil && !types.StructuralEqual(elemType, valType) {
		a.diags.Error(diagnostics.KindArrayElementTypeMismatch, target.Span, "cannot assign value of type '%s' to array element of type '%s'", valType, elemType)
	}
	return elemType
}

// checkFieldAssign implements "Field assignment": o.m = v requires o to
// resolve to a mutable place and m to be a mutable field.
func (a *Analyzer) checkFieldAssign(ma *ast.MemberAccessExpr, value ast.Expression) *types.Type {
	parentMutable, parentType, ok := a.placeMutable(ma.Object)
	if !ok {
		a.checkExprMove(value)
		return nil
	}
	if parentType == nil || (parentType.Kind != types.KindStruct && parentType.Kind != types.KindClass) {
		a.diags.Error(diagnostics.KindMemberAccessOnNonAggregate, ma.Span, "'%s' is not a struct or class", parentType)
		a.checkExprMove(value)
		return nil
	}
	field := findField(parentType, ma.Member)
	if field == nil {
		a.diags.Error(diagnostics.KindNoSuchMember, ma.Span, "'%s' has no member '%s'", parentType.Name, ma.Member)
		a.checkExprMove(value)
		return nil
	}
	if !parentMutable {
		a.diags.Error(diagnostics.KindAssignToImmutable, ma.Span, "cannot assign through immutable binding")
	}
	if !field.Mutable {
		a.diags.Error(diagnostics.KindAssignToImmutableField, ma.Span, "field '%s' of '%s' is not mutable", ma.Member, parentType.Name)
	}
	valType := a.checkExprMove(value)
	if valType != nil && !types.StructuralEqual(valType, field.Type) {
		a.diags.Error(diagnostics.KindAssignmentTypeMismatch, ma.Span, "cannot assign value of type '%s' to field of type '%s'", valType, field.Type)
	}
	return field.Type
}

// placeMutable recursively determines whether e denotes a mutable
// assignable place, and the type that place holds, walking through
// nested member access and indexing the way checkFieldAssign's target
// chain requires.
func (a *Analyzer) placeMutable(e ast.Expression) (mutable bool, ty *types.Type, ok bool) {
	switch n := e.(type) {
	case *ast.Identifier:
		sym, found := a.symtab.Lookup(n.Name)
		if !found {
			a.diags.Error(diagnostics.KindUndeclaredVariable, n.Span, "undeclared variable '%s'", n.Name)
			return false, nil, false
		}
		return sym.Mutable, sym.Type, true
	case *ast.SelfExpr:
		if a.selfSymbol == nil {
			a.diags.Error(diagnostics.KindUndeclaredVariable, n.Span, "'self' used outside of a method")
			return false, nil, false
		}
		return a.selfSymbol.Mutable, a.currentClass, true
	case *ast.MemberAccessExpr:
		parentMutable, parentType, found := a.placeMutable(n.Object)
		if !found {
			return false, nil, false
		}
		field := findField(parentType, n.Member)
		if field == nil {
			a.diags.Error(diagnostics.KindNoSuchMember, n.Span, "'%s' has no member '%s'", parentType, n.Member)
			return false, nil, false
		}
		return parentMutable && field.Mutable, field.Type, true
	case *ast.IndexExpr:
		parentMutable, parentType, found := a.placeMutable(n.Array)
		if !found {
			return false, nil, false
		}
		a.checkExprCtx(n.Index, false)
		if parentType == nil || (parentType.Kind != types.KindArray && parentType.Kind != types.KindDynamicArray) {
			a.diags.Error(diagnostics.KindMemberAccessOnNonAggregate, n.Span, "cannot index non-array type '%s'", parentType)
			return false, nil, false
		}
		return parentMutable, parentType.ElemType, true
	default:
		a.checkExprCtx(e, false)
		return false, nil, false
	}
}

// checkDangling implements spec.md §4.D/§9's dangling-reference rule: a
// binding may not hold a reference whose referent's lifetime is deeper
// (shorter-lived) than the binding's own lifetime.
func (a *Analyzer) checkDangling(ownerLifetime lifetime.Lifetime, valType *types.Type, span position.Span) {
	if valType == nil || valType.Kind != types.KindReference {
		return
	}
	if ownerLifetime < lifetime.Lifetime(valType.RefLifetime) {
		a.diags.Error(diagnostics.KindDanglingReference, span, "reference outlives its referent")
	}
}

// checkCall implements spec.md §4.D "Call": the callee resolves to a
// free function (by name) or a method (through member access).
func (a *Analyzer) checkCall(call *ast.CallExpr) *types.Type {
	switch callee := call.Callee.(type) {
	case *ast.Identifier:
		sym, ok := a.symtab.Lookup(callee.Name)
		if !ok {
			a.diags.Error(diagnostics.KindUndeclaredVariable, callee.Span, "undeclared variable '%s'", callee.Name)
			a.checkArgsLoose(call.Args)
			return nil
		}
		if sym.Kind != symbols.KindFunction || sym.Type == nil || sym.Type.Kind != types.KindFunction {
			a.diags.Error(diagnostics.KindCalleeNotCallable, call.Span, "'%s' is not callable", callee.Name)
			a.checkArgsLoose(call.Args)
			return nil
		}
		return a.checkCallArgs(sym.Type.Sig, call)
	case *ast.MemberAccessExpr:
		objType := a.checkExprCtx(callee.Object, false)
		if objType == nil {
			a.checkArgsLoose(call.Args)
			return nil
		}
		if objType.Kind != types.KindClass {
			a.diags.Error(diagnostics.KindMemberAccessOnNonAggregate, callee.Span, "'%s' is not a class", objType)
			a.checkArgsLoose(call.Args)
			return nil
		}
		sig, ok := objType.Methods[callee.Member]
		if !ok {
			a.diags.Error(diagnostics.KindNoSuchMember, callee.Span, "'%s' has no method '%s'", objType.Name, callee.Member)
			a.checkArgsLoose(call.Args)
			return nil
		}
		return a.checkCallArgs(sig, call)
	default:
		a.checkExprCtx(call.Callee, false)
		a.checkArgsLoose(call.Args)
		a.diags.Error(diagnostics.KindCalleeNotCallable, call.Span, "callee is not callable")
		return nil
	}
}

// checkCallArgs checks call's arguments against sig inside a scope of
// their own, released before returning: spec.md §9 settles "call-only"
// borrow release, so a borrow taken by an argument expression (e.g.
// use_ref(&x)) must not outlive the call it was taken for.
func (a *Analyzer) checkCallArgs(sig *types.FunctionSig, call *ast.CallExpr) *types.Type {
	if sig == nil {
		a.checkArgsLoose(call.Args)
		return nil
	}

	a.symtab.EnterScope()
	a.types.EnterScope()

	if len(call.Args) != len(sig.Parameters) {
		a.diags.Error(diagnostics.KindWrongArgumentCount, call.Span, "expected %d argument(s), got %d", len(sig.Parameters), len(call.Args))
	}
	n := min(len(call.Args), len(sig.Parameters))
	for i := 0; i < n; i++ {
		argType := a.checkExprMove(call.Args[i])
		if argType != nil && !types.StructuralEqual(argType, sig.Parameters[i]) {
			a.diags.Error(diagnostics.KindArgumentTypeMismatch, call.Args[i].GetSpan(), "argument %d: expected type '%s', got '%s'", i+1, sig.Parameters[i], argType)
		}
	}
	for i := n; i < len(call.Args); i++ {
		a.checkExprMove(call.Args[i])
	}

	a.types.LeaveScope()
	a.symtab.LeaveScope()
	return sig.Result
}

// checkArgsLoose is the error-recovery counterpart of checkCallArgs, used
// when the callee itself could not be resolved to a signature; it still
// releases any borrows taken by the argument expressions on return, for
// the same reason checkCallArgs does.
func (a *Analyzer) checkArgsLoose(args []ast.Expression) {
	a.symtab.EnterScope()
	a.types.EnterScope()
	for _, arg := range args {
		a.checkExprMove(arg)
	}
	a.types.LeaveScope()
	a.symtab.LeaveScope()
}

// checkStructInit implements spec.md §4.D "Struct initializer": every
// declared field must be covered exactly once, by position or by name.
func (a *Analyzer) checkStructInit(si *ast.StructInitExpr) *types.Type {
	ty, ok := a.types.LookupNominal(si.StructName)
	if !ok || ty.Kind != types.KindStruct {
		a.diags.Error(diagnostics.KindUndeclaredType, si.Span, "'%s' is not a declared struct", si.StructName)
		for _, v := range si.Positional {
			a.checkExprMove(v)
		}
		for _, f := range si.Named {
			a.checkExprMove(f.Value)
		}
		return nil
	}

	if si.Named != nil {
		seen := make(map[string]bool, len(si.Named))
		for _, nf := range si.Named {
			field := findField(ty, nf.Name)
			if field == nil {
				a.diags.Error(diagnostics.KindNoSuchMember, si.Span, "'%s' has no field '%s'", ty.Name, nf.Name)
				a.checkExprMove(nf.Value)
				continue
			}
			if seen[nf.Name] {
				a.diags.Error(diagnostics.KindRedeclaration, si.Span, "field '%s' specified more than once", nf.Name)
			}
			seen[nf.Name] = true
			valType := a.checkExprMove(nf.Value)
			if valType != nil && !types.StructuralEqual(valType, field.Type) {
				a.diags.Error(diagnostics.KindAssignmentTypeMismatch, si.Span, "field '%s': expected type '%s', got '%s'", nf.Name, field.Type, valType)
			}
		}
		for _, f := range ty.Fields {
			if !seen[f.Name] {
				a.diags.Error(diagnostics.KindWrongArgumentCount, si.Span, "missing field '%s' in initializer of '%s'", f.Name, ty.Name)
			}
		}
	} else {
		if len(si.Positional) != len(ty.Fields) {
			a.diags.Error(diagnostics.KindWrongArgumentCount, si.Span, "'%s' has %d field(s), got %d initializer(s)", ty.Name, len(ty.Fields), len(si.Positional))
		}
		n := min(len(si.Positional), len(ty.Fields))
		for i := 0; i < n; i++ {
			valType := a.checkExprMove(si.Positional[i])
			if valType != nil && !types.StructuralEqual(valType, ty.Fields[i].Type) {
				a.diags.Error(diagnostics.KindAssignmentTypeMismatch, si.Span, "field '%s': expected type '%s', got '%s'", ty.Fields[i].Name, ty.Fields[i].Type, valType)
			}
		}
		for i := n; i < len(si.Positional); i++ {
			a.checkExprMove(si.Positional[i])
		}
	}
	return ty
}

// checkMemberAccess implements spec.md §4.D "Member access": a field or
// method lookup on a struct or class value.
func (a *Analyzer) checkMemberAccess(ma *ast.MemberAccessExpr) *types.Type {
	objType := a.checkExprCtx(ma.Object, false)
	if objType == nil {
		return nil
	}
	if objType.Kind != types.KindStruct && objType.Kind != types.KindClass {
		a.diags.Error(diagnostics.KindMemberAccessOnNonAggregate, ma.Span, "'%s' is not a struct or class", objType)
		return nil
	}
	if field := findField(objType, ma.Member); field != nil {
		return field.Type
	}
	if objType.Kind == types.KindClass {
		if sig, ok := objType.Methods[ma.Member]; ok {
			return &types.Type{Kind: types.KindMethod, ParentID: objType.Name, Sig: sig}
		}
	}
	a.diags.Error(diagnostics.KindNoSuchMember, ma.Span, "'%s' has no member '%s'", objType.Name, ma.Member)
	return nil
}

// checkArrayLiteral implements spec.md §4.D "Array literal": every
// element's type must agree with the first.
func (a *Analyzer) checkArrayLiteral(al *ast.ArrayLiteralExpr) *types.Type {
	if len(al.Elements) == 0 {
		return a.types.InternArray(nil, 0)
	}
	var elemType *types.Type
	for i, el := range al.Elements {
		t := a.checkExprMove(el)
		if i == 0 {
			elemType = t
			continue
		}
		if t != nil && elemType != nil && !types.StructuralEqual(t, elemType) {
			a.diags.Error(diagnostics.KindArrayElementTypeMismatch, al.Span, "array element %d: expected type '%s', got '%s'", i, elemType, t)
		}
	}
	return a.types.InternArray(elemType, len(al.Elements))
}

// checkIndex implements spec.md §4.D "Array index" (read form).
func (a *Analyzer) checkIndex(ix *ast.IndexExpr) *types.Type {
	arrType := a.checkExprCtx(ix.Array, false)
	idxType := a.checkExprCtx(ix.Index, false)
	if idxType != nil && idxType.Kind != types.KindInteger {
		a.diags.Error(diagnostics.KindArgumentTypeMismatch, ix.Index.GetSpan(), "array index must be an integer, found '%s'", idxType)
	}
	if arrType == nil {
		return nil
	}
	if arrType.Kind != types.KindArray && arrType.Kind != types.KindDynamicArray {
		a.diags.Error(diagnostics.KindMemberAccessOnNonAggregate, ix.Span, "cannot index non-array type '%s'", arrType)
		return nil
	}
	return arrType.ElemType
}

// checkEnumVariant implements spec.md §4.D "Enum variant": the payload
// arity and types must match the declared variant's.
func (a *Analyzer) checkEnumVariant(ev *ast.EnumVariantExpr) *types.Type {
	ty, ok := a.types.LookupNominal(ev.Enum)
	if !ok || ty.Kind != types.KindEnum {
		a.diags.Error(diagnostics.KindUndeclaredType, ev.Span, "'%s' is not a declared enum", ev.Enum)
		a.checkArgsLoose(ev.Args)
		return nil
	}
	variant, ok := ty.Variants[ev.Variant]
	if !ok {
		a.diags.Error(diagnostics.KindNoSuchVariant, ev.Span, "'%s' has no variant '%s'", ev.Enum, ev.Variant)
		a.checkArgsLoose(ev.Args)
		return nil
	}
	if len(ev.Args) != len(variant.Payload) {
		a.diags.Error(diagnostics.KindWrongEnumPayloadCount, ev.Span, "variant '%s::%s' expects %d payload value(s), got %d", ev.Enum, ev.Variant, len(variant.Payload), len(ev.Args))
	}
	n := min(len(ev.Args), len(variant.Payload))
	for i := 0; i < n; i++ {
		t := a.checkExprMove(ev.Args[i])
		if t != nil && !types.StructuralEqual(t, variant.Payload[i]) {
			a.diags.Error(diagnostics.KindArgumentTypeMismatch, ev.Args[i].GetSpan(), "payload %d: expected type '%s', got '%s'", i+1, variant.Payload[i], t)
		}
	}
	for i := n; i < len(ev.Args); i++ {
		a.checkExprMove(ev.Args[i])
	}
	return ty
}
