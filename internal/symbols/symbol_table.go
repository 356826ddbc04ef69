// Package symbols implements the Symbol Table (spec.md §4.B): a stack
// of lexical scopes mapping names to symbol records, each carrying the
// ownership state, borrow accountant, and lifetime index the Expression
// and Statement Checkers consult and mutate.
//
// The shape here is a drastic simplification of the teacher's
// internal/resolver/symbol_table.go, which resolves an entire HIR
// program across modules with imports, generics, visibility, and usage
// caching. None of that applies to a single-file AST walker with no
// module system (an explicit Non-goal); what's kept is the teacher's
// scope-stack idiom (named Scope records owning a symbol map, entered
// and exited as a stack) and its SymbolKind enum-with-String()
// convention, narrowed to spec.md §3's five symbol kinds and enriched
// with the ownership/borrow/lifetime bookkeeping spec.md requires that
// the teacher's resolver has no use for.
package symbols

import (
	"fmt"

	"github.com/chtholly-lang/chtholly/internal/lifetime"
	"github.com/chtholly-lang/chtholly/internal/position"
	"github.com/chtholly-lang/chtholly/internal/types"
)

// Kind is the kind of a declared symbol.
type Kind int

const (
	KindVariable Kind = iota
	KindFunction
	KindStruct
	KindClass
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Ownership is the 2-element lattice {Valid, Moved} of spec.md §3.
type Ownership int

const (
	Valid Ownership = iota
	Moved
)

func (o Ownership) String() string {
	if o == Moved {
		return "moved"
	}
	return "valid"
}

// BorrowAccountant tracks outstanding borrows against one binding, per
// spec.md §3's invariants: `mutable_borrowed ⇒ shared_count = 0`,
// `shared_count > 0 ⇒ ¬mutable_borrowed`.
type BorrowAccountant struct {
	SharedCount     uint32
	MutableBorrowed bool
}

// IsBorrowed reports whether any borrow, shared or mutable, is
// currently outstanding.
func (b BorrowAccountant) IsBorrowed() bool {
	return b.SharedCount > 0 || b.MutableBorrowed
}

// Symbol is a named, typed binding tracked by the Symbol Table.
type Symbol struct {
	Name     string
	Kind     Kind
	Type     *types.Type
	Mutable  bool
	DeclSpan position.Span

	Ownership Ownership
	Borrow    BorrowAccountant
	Lifetime  lifetime.Lifetime
}

// borrowRecord is one outstanding borrow taken while a given scope was
// innermost, recorded so LeaveScope can restore the borrowed-from
// binding's accountant (spec.md §4.B: "any borrows they held on outer
// bindings are released").
type borrowRecord struct {
	target  *Symbol
	mutable bool
}

// scope is one lexical frame: a flat name→Symbol map plus the borrows
// taken against bindings while this frame was innermost.
type scope struct {
	symbols map[string]*Symbol
	borrows []borrowRecord
}

func newScope() *scope {
	return &scope{symbols: make(map[string]*Symbol)}
}

// Table is the Symbol Table: a stack of scopes plus the Lifetime
// Manager that stamps every declared binding (spec.md's "Supplemented
// features": every binding gets a lifetime stamp at declaration time,
// not only references).
type Table struct {
	scopes []*scope
	lt     *lifetime.Manager
}

// New returns a Table with the outermost (module) scope already
// entered.
func New() *Table {
	t := &Table{lt: lifetime.NewManager()}
	t.scopes = append(t.scopes, newScope())
	return t
}

// EnterScope pushes a fresh scope and advances the lifetime counter.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope())
	t.lt.EnterScope()
}

// LeaveScope releases every borrow taken while the innermost scope was
// active, discards its bindings, and pops it.
func (t *Table) LeaveScope() {
	if len(t.scopes) == 0 {
		return
	}
	inner := t.scopes[len(t.scopes)-1]
	for _, b := range inner.borrows {
		if b.mutable {
			b.target.Borrow.MutableBorrowed = false
		} else if b.target.Borrow.SharedCount > 0 {
			b.target.Borrow.SharedCount--
		}
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	t.lt.LeaveScope()
}

// CurrentLifetime returns the innermost scope's lifetime index.
func (t *Table) CurrentLifetime() lifetime.Lifetime {
	return t.lt.Current()
}

// Define inserts sym into the innermost scope under sym.Name. It
// returns false without modifying the table if the name is already
// present in that scope (the caller reports Redeclaration).
func (t *Table) Define(sym *Symbol) bool {
	inner := t.scopes[len(t.scopes)-1]
	if _, exists := inner.symbols[sym.Name]; exists {
		return false
	}
	sym.Lifetime = t.lt.Current()
	inner.symbols[sym.Name] = sym
	return true
}

// Lookup searches the scope stack innermost-outward for name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// IsDefinedInCurrentScope reports whether name is bound in the
// innermost scope specifically (used for Redeclaration checks).
func (t *Table) IsDefinedInCurrentScope(name string) bool {
	inner := t.scopes[len(t.scopes)-1]
	_, ok := inner.symbols[name]
	return ok
}

// RecordBorrow notes that target was just borrowed while the innermost
// scope is active, so the borrow is released when that scope exits.
func (t *Table) RecordBorrow(target *Symbol, mutable bool) {
	inner := t.scopes[len(t.scopes)-1]
	inner.borrows = append(inner.borrows, borrowRecord{target: target, mutable: mutable})
}

// Depth returns the number of scopes currently on the stack.
func (t *Table) Depth() int {
	return len(t.scopes)
}

// String renders the symbol table's current scope depth, for
// diagnostics and debugging.
func (t *Table) String() string {
	return fmt.Sprintf("symbols.Table{depth=%d}", len(t.scopes))
}
