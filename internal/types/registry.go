package types

import "fmt"

// ErrDuplicateType is returned by DeclareNominal when a nominal type
// is redeclared in the same scope (spec.md §4.A: DuplicateType).
type ErrDuplicateType struct {
	Name string
}

func (e *ErrDuplicateType) Error() string {
	return fmt.Sprintf("type '%s' is already declared in this scope", e.Name)
}

// builtinPrimitives lists the resolver-recognized primitive type names
// from spec.md §4.A.
var builtinPrimitives = map[string]*Type{
	"i8":     NewInteger(8, true),
	"i16":    NewInteger(16, true),
	"i32":    NewInteger(32, true),
	"i64":    NewInteger(64, true),
	"u8":     NewInteger(8, false),
	"u16":    NewInteger(16, false),
	"u32":    NewInteger(32, false),
	"u64":    NewInteger(64, false),
	"f32":    NewFloat(32),
	"f64":    NewFloat(64),
	"bool":   boolType,
	"char":   charType,
	"string": stringType,
	"void":   voidType,
}

// nominalScope is one level of the Registry's scope stack: a flat map
// of names declared as nominal types (struct/class/enum) at that
// lexical depth. This mirrors original_source's SymbolTable keeping a
// `typeScopeStack` parallel to its value `scopeStack` (see
// SPEC_FULL.md's "Supplemented features"), rather than Orizon's single
// flat `lookup_nominal`.
type nominalScope struct {
	types map[string]*Type
}

// Registry interns structural types by key and tracks nominal
// (struct/class/enum) declarations across a stack of lexical scopes.
type Registry struct {
	refCache   map[refKey]*Type
	arrayCache map[arrayKey]*Type
	dynCache   map[*Type]*Type
	scopes     []*nominalScope
}

type refKey struct {
	inner   *Type
	mutable bool
	ltime   int
}

type arrayKey struct {
	elem *Type
	size int
}

// NewRegistry creates a Registry with the global scope already entered
// and the built-in primitives available.
func NewRegistry() *Registry {
	r := &Registry{
		refCache:   make(map[refKey]*Type),
		arrayCache: make(map[arrayKey]*Type),
		dynCache:   make(map[*Type]*Type),
	}
	r.EnterScope()
	return r
}

// EnterScope pushes a fresh nominal-type scope, entered in lockstep
// with symbols.Table.EnterScope so struct/class/enum
// declarations are as lexically scoped as any other binding.
func (r *Registry) EnterScope() {
	r.scopes = append(r.scopes, &nominalScope{types: make(map[string]*Type)})
}

// LeaveScope pops the innermost nominal-type scope, discarding any
// types declared within it.
func (r *Registry) LeaveScope() {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// InternPrimitive returns the shared instance for a built-in primitive
// name, or nil if name does not name one.
func (r *Registry) InternPrimitive(name string) *Type {
	return builtinPrimitives[name]
}

// InternReference returns the canonical Reference{inner, mutable,
// lifetime} descriptor, interned by structural key.
func (r *Registry) InternReference(inner *Type, mutable bool, lifetime int) *Type {
	key := refKey{inner: inner, mutable: mutable, ltime: lifetime}
	if t, ok := r.refCache[key]; ok {
		return t
	}
	t := &Type{Kind: KindReference, RefInner: inner, RefMutable: mutable, RefLifetime: lifetime}
	r.refCache[key] = t
	return t
}

// InternArray returns the canonical Array{element, size} descriptor.
func (r *Registry) InternArray(elem *Type, size int) *Type {
	key := arrayKey{elem: elem, size: size}
	if t, ok := r.arrayCache[key]; ok {
		return t
	}
	t := &Type{Kind: KindArray, ElemType: elem, ArraySize: size}
	r.arrayCache[key] = t
	return t
}

// InternDynamicArray returns the canonical DynamicArray{element}
// descriptor.
func (r *Registry) InternDynamicArray(elem *Type) *Type {
	if t, ok := r.dynCache[elem]; ok {
		return t
	}
	t := &Type{Kind: KindDynamicArray, ElemType: elem}
	r.dynCache[elem] = t
	return t
}

// DeclareNominal registers a struct/class/enum declaration in the
// innermost scope. Redeclaration of the same name in that scope
// returns ErrDuplicateType, per spec.md's DuplicateType diagnostic.
func (r *Registry) DeclareNominal(t *Type) error {
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope.types[t.Name]; exists {
		return &ErrDuplicateType{Name: t.Name}
	}
	scope.types[t.Name] = t
	return nil
}

// LookupNominal searches the scope stack innermost-outward for a
// struct/class/enum declared under name, falling back to the built-in
// primitive of that name.
func (r *Registry) LookupNominal(name string) (*Type, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if t, ok := r.scopes[i].types[name]; ok {
			return t, true
		}
	}
	if t, ok := builtinPrimitives[name]; ok {
		return t, true
	}
	return nil, false
}
