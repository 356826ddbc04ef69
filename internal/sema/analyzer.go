// Package sema implements the Expression Checker and Statement Checker
// (spec.md §4.D, §4.E): the single sequential AST walk that proves name
// resolution, type-correctness, move/copy ownership discipline, and
// borrow/lifetime validity over a parsed Chtholly program.
//
// The walk structure (collect top-level symbols first, then resolve
// statement bodies) follows internal/resolver/resolver.go's
// collectModuleSymbols + resolveModule two-phase shape, narrowed to a
// single file with no module system. All shared state (symbol table,
// type registry, lifetime manager, diagnostic collector, and the
// current-function/current-class/loop-context flags) is routed through
// one Analyzer value passed by exclusive mutable reference through the
// walk, per spec.md §9's guidance against global singletons.
package sema

import (
	"github.com/chtholly-lang/chtholly/internal/ast"
	"github.com/chtholly-lang/chtholly/internal/diagnostics"
	"github.com/chtholly-lang/chtholly/internal/lifetime"
	"github.com/chtholly-lang/chtholly/internal/symbols"
	"github.com/chtholly-lang/chtholly/internal/types"
)

// LoopContext is the statement-checker context flag tracking whether
// the walk is currently inside a loop body, a switch case body, or
// neither (spec.md §4.E).
type LoopContext int

const (
	LoopNone LoopContext = iota
	LoopLoop
	LoopSwitch
)

// Analyzer is the single value through which every checker routine
// threads state: the symbol table, type registry, and diagnostic
// collector, plus the context flags of spec.md §4.E.
type Analyzer struct {
	symtab *symbols.Table
	types  *types.Registry
	diags  *diagnostics.Collector

	currentFunctionReturn   *types.Type // nil means Void when hasFunctionReturn is true
	hasFunctionReturn       bool        // false outside any function body
	currentFunctionBodyLife lifetime.Lifetime
	currentClass            *types.Type
	selfSymbol              *symbols.Symbol
	loopContext             LoopContext
}

// NewAnalyzer returns an Analyzer ready to check a fresh program.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		symtab: symbols.New(),
		types:  types.NewRegistry(),
		diags:  diagnostics.NewCollector(),
	}
}

// Analyze runs the full two-pass check over prog: first declaring every
// top-level struct/class/enum/function so later top-level declarations
// may forward-reference earlier or later ones, then checking each
// declaration's body in source order. It returns the diagnostic
// collector accumulated during the run.
func (a *Analyzer) Analyze(prog *ast.Program) *diagnostics.Collector {
	a.declareProgram(prog)
	for _, d := range prog.Declarations {
		a.checkTopLevelDecl(d)
	}
	return a.diags
}

// checkTopLevelDecl dispatches a top-level declaration during the check
// pass. Struct and enum declarations need no further checking: their
// shape was already filled in by declareProgram. Function bodies and
// class method bodies are checked here.
func (a *Analyzer) checkTopLevelDecl(d ast.Statement) {
	switch n := d.(type) {
	case *ast.FunctionDecl:
		a.checkFunctionDecl(n)
	case *ast.ClassDecl:
		a.checkClassMethods(n)
	case *ast.StructDecl, *ast.EnumDecl:
		// Already fully declared by declareProgram.
	default:
		a.checkStmt(d)
	}
}

// declareProgram pre-registers every top-level nominal type and
// function signature in two sub-passes: first a stub for every
// struct/class/enum name (so field and signature types may reference
// any of them regardless of declaration order), then the field,
// method, variant, and function-signature detail filled in against
// those stubs.
func (a *Analyzer) declareProgram(prog *ast.Program) {
	for _, d := range prog.Declarations {
		switch n := d.(type) {
		case *ast.StructDecl:
			if err := a.types.DeclareNominal(&types.Type{Kind: types.KindStruct, Name: n.Name}); err != nil {
				a.diags.Error(diagnostics.KindDuplicateType, n.Span, "%v", err)
			}
		case *ast.ClassDecl:
			if err := a.types.DeclareNominal(&types.Type{Kind: types.KindClass, Name: n.Name, Methods: map[string]*types.FunctionSig{}}); err != nil {
				a.diags.Error(diagnostics.KindDuplicateType, n.Span, "%v", err)
			}
		case *ast.EnumDecl:
			if err := a.types.DeclareNominal(&types.Type{Kind: types.KindEnum, Name: n.Name, Variants: map[string]*types.Variant{}}); err != nil {
				a.diags.Error(diagnostics.KindDuplicateType, n.Span, "%v", err)
			}
		}
	}

	for _, d := range prog.Declarations {
		switch n := d.(type) {
		case *ast.StructDecl:
			if ty, ok := a.types.LookupNominal(n.Name); ok {
				ty.Fields = a.resolveFieldDecls(n.Fields)
			}
		case *ast.ClassDecl:
			if ty, ok := a.types.LookupNominal(n.Name); ok {
				ty.Fields = a.resolveFieldDecls(n.Fields)
				for _, m := range n.Methods {
					ty.Methods[m.Name] = a.buildFunctionSig(m)
				}
			}
		case *ast.EnumDecl:
			if ty, ok := a.types.LookupNominal(n.Name); ok {
				for _, v := range n.Variants {
					ty.Variants[v.Name] = &types.Variant{Name: v.Name, Payload: a.resolveTypeNames(v.Payload)}
					ty.VariantOrder = append(ty.VariantOrder, v.Name)
				}
			}
		case *ast.FunctionDecl:
			sig := a.buildFunctionSig(n)
			fnType := &types.Type{Kind: types.KindFunction, Sig: sig}
			sym := &symbols.Symbol{Name: n.Name, Kind: symbols.KindFunction, Type: fnType, Ownership: symbols.Valid, DeclSpan: n.Span}
			if !a.symtab.Define(sym) {
				a.diags.Error(diagnostics.KindRedeclaration, n.Span, "'%s' is already declared in this scope", n.Name)
			}
		}
	}
}

// declareLocalStruct/Class/Enum/Function register a nested (non-top-level)
// nominal declaration or function signature on the spot, as the
// Statement Checker walks into it. Unlike declareProgram's two
// sub-passes, these have no forward-reference support across sibling
// local declarations — an accepted simplification for declarations
// that appear inside a function body.
func (a *Analyzer) declareLocalStruct(n *ast.StructDecl) {
	ty := &types.Type{Kind: types.KindStruct, Name: n.Name}
	if err := a.types.DeclareNominal(ty); err != nil {
		a.diags.Error(diagnostics.KindDuplicateType, n.Span, "%v", err)
		return
	}
	ty.Fields = a.resolveFieldDecls(n.Fields)
}

func (a *Analyzer) declareLocalEnum(n *ast.EnumDecl) {
	ty := &types.Type{Kind: types.KindEnum, Name: n.Name, Variants: map[string]*types.Variant{}}
	if err := a.types.DeclareNominal(ty); err != nil {
		a.diags.Error(diagnostics.KindDuplicateType, n.Span, "%v", err)
		return
	}
	for _, v := range n.Variants {
		ty.Variants[v.Name] = &types.Variant{Name: v.Name, Payload: a.resolveTypeNames(v.Payload)}
		ty.VariantOrder = append(ty.VariantOrder, v.Name)
	}
}

func (a *Analyzer) declareLocalClass(n *ast.ClassDecl) {
	ty := &types.Type{Kind: types.KindClass, Name: n.Name, Methods: map[string]*types.FunctionSig{}}
	if err := a.types.DeclareNominal(ty); err != nil {
		a.diags.Error(diagnostics.KindDuplicateType, n.Span, "%v", err)
		return
	}
	ty.Fields = a.resolveFieldDecls(n.Fields)
	for _, m := range n.Methods {
		ty.Methods[m.Name] = a.buildFunctionSig(m)
	}
}

func (a *Analyzer) declareLocalFunction(n *ast.FunctionDecl) {
	sig := a.buildFunctionSig(n)
	fnType := &types.Type{Kind: types.KindFunction, Sig: sig}
	sym := &symbols.Symbol{Name: n.Name, Kind: symbols.KindFunction, Type: fnType, Ownership: symbols.Valid, DeclSpan: n.Span}
	if !a.symtab.Define(sym) {
		a.diags.Error(diagnostics.KindRedeclaration, n.Span, "'%s' is already declared in this scope", n.Name)
	}
}

func (a *Analyzer) resolveFieldDecls(fields []ast.FieldDecl) []types.Field {
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		out[i] = types.Field{Name: f.Name, Type: a.resolveTypeName(f.Annotation), Mutable: f.Mutable}
	}
	return out
}

func (a *Analyzer) buildFunctionSig(fn *ast.FunctionDecl) *types.FunctionSig {
	params := make([]*types.Type, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = a.resolveTypeName(p.Annotation)
	}
	var result *types.Type
	if fn.ReturnType != nil {
		result = a.resolveTypeName(fn.ReturnType)
	}
	return &types.FunctionSig{Parameters: params, Result: result}
}

func (a *Analyzer) resolveTypeNames(names []ast.TypeName) []*types.Type {
	out := make([]*types.Type, len(names))
	for i, n := range names {
		out[i] = a.resolveTypeName(n)
	}
	return out
}

// resolveTypeName turns a parser-produced TypeName annotation into a
// Type Registry descriptor, interning references and arrays and
// looking up nominal names. It reports UndeclaredType and returns nil
// when a name cannot be resolved.
func (a *Analyzer) resolveTypeName(tn ast.TypeName) *types.Type {
	if tn == nil {
		return nil
	}
	switch n := tn.(type) {
	case *ast.PlainType:
		if ty, ok := a.types.LookupNominal(n.Name); ok {
			return ty
		}
		a.diags.Error(diagnostics.KindUndeclaredType, n.Span, "undeclared type '%s'", n.Name)
		return nil
	case *ast.ReferenceType:
		inner := a.resolveTypeName(n.Inner)
		if inner == nil {
			return nil
		}
		return a.types.InternReference(inner, n.Mutable, int(a.symtab.CurrentLifetime()))
	case *ast.ArrayType:
		elem := a.resolveTypeName(n.Element)
		if elem == nil {
			return nil
		}
		if n.Size == nil {
			return a.types.InternDynamicArray(elem)
		}
		lit, ok := n.Size.(*ast.IntLiteral)
		if !ok {
			a.diags.Error(diagnostics.KindUndeclaredType, n.Span, "array size must be a constant integer literal")
			return a.types.InternDynamicArray(elem)
		}
		return a.types.InternArray(elem, int(lit.Value))
	default:
		return nil
	}
}

func findField(t *types.Type, name string) *types.Field {
	if t == nil {
		return nil
	}
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

func isNumeric(t *types.Type) bool {
	return t != nil && (t.Kind == types.KindInteger || t.Kind == types.KindFloat)
}
