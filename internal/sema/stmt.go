package sema

import (
	"fmt"

	"github.com/chtholly-lang/chtholly/internal/ast"
	"github.com/chtholly-lang/chtholly/internal/diagnostics"
	"github.com/chtholly-lang/chtholly/internal/symbols"
	"github.com/chtholly-lang/chtholly/internal/types"
)

// checkStmt dispatches one statement during the walk (spec.md §4.E).
// Struct/Class/Enum/Function declarations reaching this dispatcher are
// necessarily local (nested inside a function body): top-level
// declarations are handled by checkTopLevelDecl against the
// already-built declareProgram registration.
func (a *Analyzer) checkStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		a.checkExpr(n.Expr)
	case *ast.LetStatement:
		a.checkLet(n)
	case *ast.BlockStatement:
		a.checkBlock(n)
	case *ast.IfStatement:
		a.checkIf(n)
	case *ast.WhileStatement:
		a.checkWhile(n)
	case *ast.DoWhileStatement:
		a.checkDoWhile(n)
	case *ast.ForStatement:
		a.checkFor(n)
	case *ast.SwitchStatement:
		a.checkSwitch(n)
	case *ast.BreakStatement:
		a.checkBreak(n)
	case *ast.ContinueStatement:
		a.checkContinue(n)
	case *ast.FallthroughStatement:
		a.checkFallthrough(n)
	case *ast.ReturnStatement:
		a.checkReturn(n)
	case *ast.StructDecl:
		a.declareLocalStruct(n)
	case *ast.ClassDecl:
		a.declareLocalClass(n)
		a.checkClassMethods(n)
	case *ast.EnumDecl:
		a.declareLocalEnum(n)
	case *ast.FunctionDecl:
		a.declareLocalFunction(n)
		a.checkFunctionDecl(n)
	}
}

// checkLet implements spec.md §4.E "Let": the initializer is checked as
// a move-use, the annotation (if any) must agree with the inferred
// type, redeclaration in the current scope is rejected, and the new
// binding is stamped with the current lifetime and checked for
// dangling references.
func (a *Analyzer) checkLet(let *ast.LetStatement) {
	initType := a.checkExprMove(let.Init)

	declared := initType
	if let.Annotation != nil {
		annotated := a.resolveTypeName(let.Annotation)
		if annotated != nil && initType != nil && !types.StructuralEqual(annotated, initType) {
			a.diags.Error(diagnostics.KindAssignmentTypeMismatch, let.Span, "cannot assign value of type '%s' to binding of type '%s'", initType, annotated)
		}
		declared = annotated
	}

	if a.symtab.IsDefinedInCurrentScope(let.Name) {
		a.diags.Error(diagnostics.KindRedeclaration, let.Span, "'%s' is already declared in this scope", let.Name)
		return
	}

	sym := &symbols.Symbol{
		Name:      let.Name,
		Kind:      symbols.KindVariable,
		Type:      declared,
		Mutable:   let.Mutable,
		Ownership: symbols.Valid,
		DeclSpan:  let.Span,
	}
	a.symtab.Define(sym)
	a.checkDangling(sym.Lifetime, initType, let.Span)
}

// checkBlock opens a nested scope (value and type) around a brace-block
// body, shared by nested blocks and if/while/do-while/for bodies.
// Function bodies open their own scope in checkFunctionBody instead.
func (a *Analyzer) checkBlock(b *ast.BlockStatement) {
	a.symtab.EnterScope()
	a.types.EnterScope()
	for _, st := range b.Statements {
		a.checkStmt(st)
	}
	a.types.LeaveScope()
	a.symtab.LeaveScope()
}

func (a *Analyzer) checkIf(n *ast.IfStatement) {
	condType := a.checkExpr(n.Condition)
	if condType != nil && condType.Kind != types.KindBool {
		a.diags.Error(diagnostics.KindNonBoolCondition, n.Condition.GetSpan(), "if condition must be bool, found '%s'", condType)
	}
	a.checkBlock(n.Then)
	if n.ElseBranch != nil {
		a.checkStmt(n.ElseBranch)
	}
}

func (a *Analyzer) checkWhile(n *ast.WhileStatement) {
	condType := a.checkExpr(n.Condition)
	if condType != nil && condType.Kind != types.KindBool {
		a.diags.Error(diagnostics.KindNonBoolCondition, n.Condition.GetSpan(), "while condition must be bool, found '%s'", condType)
	}
	prevLoop := a.loopContext
	a.loopContext = LoopLoop
	a.checkBlock(n.Body)
	a.loopContext = prevLoop
}

func (a *Analyzer) checkDoWhile(n *ast.DoWhileStatement) {
	prevLoop := a.loopContext
	a.loopContext = LoopLoop
	a.checkBlock(n.Body)
	a.loopContext = prevLoop

	condType := a.checkExpr(n.Condition)
	if condType != nil && condType.Kind != types.KindBool {
		a.diags.Error(diagnostics.KindNonBoolCondition, n.Condition.GetSpan(), "do-while condition must be bool, found '%s'", condType)
	}
}

// checkFor implements spec.md §4.E "For": init, condition, and step all
// share one scope enclosing the (separately-scoped) body block.
func (a *Analyzer) checkFor(n *ast.ForStatement) {
	a.symtab.EnterScope()
	a.types.EnterScope()

	if n.Init != nil {
		a.checkStmt(n.Init)
	}
	if n.Condition != nil {
		condType := a.checkExpr(n.Condition)
		if condType != nil && condType.Kind != types.KindBool {
			a.diags.Error(diagnostics.KindNonBoolCondition, n.Condition.GetSpan(), "for condition must be bool, found '%s'", condType)
		}
	}
	if n.Step != nil {
		a.checkStmt(n.Step)
	}

	prevLoop := a.loopContext
	a.loopContext = LoopLoop
	a.checkBlock(n.Body)
	a.loopContext = prevLoop

	a.types.LeaveScope()
	a.symtab.LeaveScope()
}

// checkSwitch implements spec.md §4.E "Switch": at most one default
// case, case values must match the discriminant's type, duplicate case
// values are rejected, and fallthrough is legal only as a case body's
// final statement.
func (a *Analyzer) checkSwitch(n *ast.SwitchStatement) {
	discType := a.checkExpr(n.Discriminant)

	hasDefault := false
	seen := make(map[string]bool)
	prevLoop := a.loopContext
	a.loopContext = LoopSwitch

	for _, c := range n.Cases {
		if c.IsDefault {
			if hasDefault {
				a.diags.Error(diagnostics.KindMultipleDefault, c.Span, "switch has more than one default case")
			}
			hasDefault = true
		} else {
			for _, v := range c.Values {
				vType := a.checkExpr(v)
				if vType != nil && discType != nil && !types.StructuralEqual(vType, discType) {
					a.diags.Error(diagnostics.KindCaseTypeMismatch, v.GetSpan(), "case value of type '%s' does not match discriminant type '%s'", vType, discType)
				}
				if key := caseValueKey(v); key != "" {
					if seen[key] {
						a.diags.Error(diagnostics.KindDuplicateCase, v.GetSpan(), "duplicate case value")
					}
					seen[key] = true
				}
			}
		}

		a.symtab.EnterScope()
		a.types.EnterScope()
		for i, st := range c.Body {
			if _, ok := st.(*ast.FallthroughStatement); ok && i != len(c.Body)-1 {
				a.diags.Error(diagnostics.KindFallthroughNotLast, st.GetSpan(), "fallthrough must be the last statement in a case")
			}
			a.checkStmt(st)
		}
		a.types.LeaveScope()
		a.symtab.LeaveScope()
	}

	a.loopContext = prevLoop
}

func caseValueKey(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return fmt.Sprintf("int:%d", v.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("str:%s", v.Value)
	case *ast.CharLiteral:
		return fmt.Sprintf("char:%c", v.Value)
	case *ast.BoolLiteral:
		return fmt.Sprintf("bool:%t", v.Value)
	default:
		return ""
	}
}

func (a *Analyzer) checkBreak(n *ast.BreakStatement) {
	if a.loopContext != LoopLoop && a.loopContext != LoopSwitch {
		a.diags.Error(diagnostics.KindBreakOutsideLoopOrSwitch, n.Span, "break outside of a loop or switch")
	}
}

func (a *Analyzer) checkContinue(n *ast.ContinueStatement) {
	if a.loopContext != LoopLoop {
		a.diags.Error(diagnostics.KindContinueOutsideLoop, n.Span, "continue outside of a loop")
	}
}

func (a *Analyzer) checkFallthrough(n *ast.FallthroughStatement) {
	if a.loopContext != LoopSwitch {
		a.diags.Error(diagnostics.KindFallthroughOutsideSwitch, n.Span, "fallthrough outside of a switch")
	}
}

// checkReturn implements spec.md §4.E "Return": the value's type must
// agree with the enclosing function's declared return type, and a
// returned reference whose lifetime equals the function body's own
// top-level scope lifetime is reported as escaping the function.
// References to locals of blocks nested inside the body carry a larger
// lifetime and are not reported by this check.
func (a *Analyzer) checkReturn(n *ast.ReturnStatement) {
	if !a.hasFunctionReturn {
		a.diags.Error(diagnostics.KindReturnOutsideFunction, n.Span, "return outside of a function")
		if n.Value != nil {
			a.checkExprMove(n.Value)
		}
		return
	}

	if n.Value == nil {
		if a.currentFunctionReturn != nil {
			a.diags.Error(diagnostics.KindReturnTypeMismatch, n.Span, "function expects a return value of type '%s'", a.currentFunctionReturn)
		}
		return
	}

	valType := a.checkExprMove(n.Value)
	if a.currentFunctionReturn == nil {
		a.diags.Error(diagnostics.KindReturnTypeMismatch, n.Span, "function has no return value, but one was returned")
	} else if valType != nil && !types.StructuralEqual(valType, a.currentFunctionReturn) {
		a.diags.Error(diagnostics.KindReturnTypeMismatch, n.Span, "expected return type '%s', got '%s'", a.currentFunctionReturn, valType)
	}

	if valType != nil && valType.Kind == types.KindReference && valType.RefLifetime == int(a.currentFunctionBodyLife) {
		a.diags.Error(diagnostics.KindReferenceEscapesFunction, n.Span, "returned reference escapes its function's scope")
	}
}

// checkFunctionBody installs fn's parameters into the scope the caller
// has already entered, then checks its body in a fresh nested scope,
// restoring the prior function/loop context on return. Shared between
// top-level function declarations (checkFunctionDecl) and class
// methods (checkClassMethods), which differ only in what else (if
// anything) is installed into the parameter scope before this runs.
func (a *Analyzer) checkFunctionBody(fn *ast.FunctionDecl) {
	for _, p := range fn.Parameters {
		pt := a.resolveTypeName(p.Annotation)
		sym := &symbols.Symbol{Name: p.Name, Kind: symbols.KindVariable, Type: pt, Mutable: p.Mutable, Ownership: symbols.Valid, DeclSpan: fn.Span}
		if !a.symtab.Define(sym) {
			a.diags.Error(diagnostics.KindRedeclaration, fn.Span, "duplicate parameter '%s'", p.Name)
		}
	}

	var retType *types.Type
	if fn.ReturnType != nil {
		retType = a.resolveTypeName(fn.ReturnType)
	}
	if retType != nil && retType.Kind == types.KindVoid {
		retType = nil // Void is represented as nil in currentFunctionReturn.
	}

	prevReturn, prevHasReturn := a.currentFunctionReturn, a.hasFunctionReturn
	prevLoop := a.loopContext
	prevBodyLife := a.currentFunctionBodyLife

	a.currentFunctionReturn = retType
	a.hasFunctionReturn = true
	a.loopContext = LoopNone

	a.symtab.EnterScope()
	a.types.EnterScope()
	a.currentFunctionBodyLife = a.symtab.CurrentLifetime()
	for _, st := range fn.Body.Statements {
		a.checkStmt(st)
	}
	a.types.LeaveScope()
	a.symtab.LeaveScope()

	a.currentFunctionReturn = prevReturn
	a.hasFunctionReturn = prevHasReturn
	a.loopContext = prevLoop
	a.currentFunctionBodyLife = prevBodyLife
}

func (a *Analyzer) checkFunctionDecl(fn *ast.FunctionDecl) {
	a.symtab.EnterScope()
	a.types.EnterScope()
	a.checkFunctionBody(fn)
	a.types.LeaveScope()
	a.symtab.LeaveScope()
}

// checkClassMethods checks every method body of a class declaration
// with `self` installed as a mutable binding of the class's own type.
// spec.md's data model has no separate &self/&mut self marker on a
// method signature, so self is unconditionally mutable inside a method
// body; the field-mutability half of a `self.field = v` assignment is
// still enforced by the field's own Mutable flag.
func (a *Analyzer) checkClassMethods(cd *ast.ClassDecl) {
	classType, ok := a.types.LookupNominal(cd.Name)
	if !ok {
		return
	}
	prevClass, prevSelf := a.currentClass, a.selfSymbol
	a.currentClass = classType

	for _, m := range cd.Methods {
		a.symtab.EnterScope()
		a.types.EnterScope()
		selfSym := &symbols.Symbol{Name: "self", Kind: symbols.KindVariable, Type: classType, Mutable: true, Ownership: symbols.Valid, DeclSpan: m.Span}
		a.symtab.Define(selfSym)
		a.selfSymbol = selfSym
		a.checkFunctionBody(m)
		a.types.LeaveScope()
		a.symtab.LeaveScope()
	}

	a.selfSymbol = prevSelf
	a.currentClass = prevClass
}
