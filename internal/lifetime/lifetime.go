// Package lifetime implements the Lifetime Manager (spec.md §4.C): a
// monotonically increasing scope counter used to stamp bindings and
// references so the analyzer can detect dangling references and
// references that escape their defining function.
//
// This is a drastic simplification of the teacher's MIR-level lifetime
// and region machinery (internal/mir/lifetime.go), which solves
// lifetime inference over basic blocks and named regions. Chtholly's
// analyzer has no MIR and no named lifetimes ('static, generic lifetime
// parameters); it only needs the single counter spec.md §4.C describes,
// which is exactly what original_source's LifetimeManager.cpp
// implements (enterScope/leaveScope/getCurrentLifetime over a stack of
// monotonically increasing integers).
package lifetime

// Lifetime identifies the lexical scope depth at which a binding or
// reference was created. Lower values outlive higher values.
type Lifetime int

// Manager tracks the current lifetime as analysis walks into and out
// of lexical scopes.
type Manager struct {
	stack []Lifetime
	next  Lifetime
}

// NewManager returns a Manager with the outermost (module) scope
// already entered.
func NewManager() *Manager {
	m := &Manager{}
	m.EnterScope()
	return m
}

// EnterScope pushes a fresh lifetime, strictly greater than every
// lifetime issued so far, and returns it.
func (m *Manager) EnterScope() Lifetime {
	l := m.next
	m.next++
	m.stack = append(m.stack, l)
	return l
}

// LeaveScope pops the innermost lifetime.
func (m *Manager) LeaveScope() {
	if len(m.stack) == 0 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
}

// Current returns the innermost (most recently entered) lifetime, or 0
// if no scope is active.
func (m *Manager) Current() Lifetime {
	if len(m.stack) == 0 {
		return 0
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns how many scopes are currently on the stack.
func (m *Manager) Depth() int {
	return len(m.stack)
}

// Outlives reports whether a binding stamped with lifetime a is
// guaranteed to still be valid at a point stamped with lifetime b —
// true when a was established no later than b (a <= b). A reference
// whose target does NOT outlive the reference itself is dangling.
func Outlives(a, b Lifetime) bool {
	return a <= b
}
