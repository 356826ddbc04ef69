// Package diagnostics provides the diagnostic stream the Chtholly
// semantic analyzer reports to its caller (spec.md §6, "Diagnostic
// interface"). The Severity/Kind/String() shape follows
// internal/diagnostics/diagnostics.go's DiagnosticLevel + category-enum
// idiom, with the category enum replaced by the taxonomy spec.md §7
// defines for this analyzer.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/chtholly-lang/chtholly/internal/position"
)

// Severity is the level of a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Kind enumerates the diagnostic kinds of spec.md §7, grouped below by
// category comment but flattened into a single enum the way Orizon's
// DiagnosticCategory is.
type Kind int

const (
	// NameResolution.
	KindUndeclaredVariable Kind = iota
	KindUndeclaredType
	KindRedeclaration
	KindNoSuchMember
	KindNoSuchVariant

	// TypeMismatch.
	KindAssignmentTypeMismatch
	KindArgumentTypeMismatch
	KindReturnTypeMismatch
	KindArrayElementTypeMismatch
	KindCaseTypeMismatch
	KindNonBoolCondition

	// Arity.
	KindWrongArgumentCount
	KindWrongEnumPayloadCount

	// Ownership.
	KindUseAfterMove

	// Borrow.
	KindConflictingBorrow
	KindImmutableBorrowedMutably
	KindMoveWhileBorrowed

	// Lifetime.
	KindDanglingReference
	KindReferenceEscapesFunction

	// Mutability.
	KindAssignToImmutable
	KindAssignToImmutableField

	// ControlFlow.
	KindBreakOutsideLoopOrSwitch
	KindContinueOutsideLoop
	KindFallthroughOutsideSwitch
	KindFallthroughNotLast
	KindMultipleDefault
	KindDuplicateCase
	KindReturnOutsideFunction

	// Structure.
	KindMemberAccessOnNonAggregate
	KindCalleeNotCallable

	// Types (reported through the same stream as everything else).
	KindDuplicateType
)

var kindNames = map[Kind]string{
	KindUndeclaredVariable:         "undeclared-variable",
	KindUndeclaredType:             "undeclared-type",
	KindRedeclaration:              "redeclaration",
	KindNoSuchMember:               "no-such-member",
	KindNoSuchVariant:              "no-such-variant",
	KindAssignmentTypeMismatch:     "assignment-type-mismatch",
	KindArgumentTypeMismatch:       "argument-type-mismatch",
	KindReturnTypeMismatch:         "return-type-mismatch",
	KindArrayElementTypeMismatch:   "array-element-type-mismatch",
	KindCaseTypeMismatch:           "case-type-mismatch",
	KindNonBoolCondition:           "non-bool-condition",
	KindWrongArgumentCount:         "wrong-argument-count",
	KindWrongEnumPayloadCount:      "wrong-enum-payload-count",
	KindUseAfterMove:               "use-after-move",
	KindConflictingBorrow:          "conflicting-borrow",
	KindImmutableBorrowedMutably:   "immutable-borrowed-mutably",
	KindMoveWhileBorrowed:          "move-while-borrowed",
	KindDanglingReference:          "dangling-reference",
	KindReferenceEscapesFunction:   "reference-escapes-function",
	KindAssignToImmutable:          "assign-to-immutable",
	KindAssignToImmutableField:     "assign-to-immutable-field",
	KindBreakOutsideLoopOrSwitch:   "break-outside-loop-or-switch",
	KindContinueOutsideLoop:        "continue-outside-loop",
	KindFallthroughOutsideSwitch:   "fallthrough-outside-switch",
	KindFallthroughNotLast:         "fallthrough-not-last",
	KindMultipleDefault:            "multiple-default",
	KindDuplicateCase:              "duplicate-case",
	KindReturnOutsideFunction:      "return-outside-function",
	KindMemberAccessOnNonAggregate: "member-access-on-non-aggregate",
	KindCalleeNotCallable:          "callee-not-callable",
	KindDuplicateType:              "duplicate-type",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Diagnostic is one entry in the analyzer's output diagnostic stream.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Location position.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", d.Location.String(), d.Severity, d.Kind, d.Message)
}

// Collector accumulates diagnostics across a single analyzer run. Every
// checker routine appends to it and continues (spec.md §7's
// "best-effort continue" propagation model) instead of aborting the
// walk, the way the teacher's ownership/borrow/lifetime checkers
// accumulate an `errors []error` slice instead of returning early.
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Error appends an error-severity diagnostic.
func (c *Collector) Error(kind Kind, loc position.Span, format string, args ...interface{}) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// Warning appends a warning-severity diagnostic.
func (c *Collector) Warning(kind Kind, loc position.Span, format string, args ...interface{}) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// All returns every diagnostic recorded so far, in append order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// HasErrors reports whether any diagnostic has error severity.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ExitCode implements the CLI contract of spec.md §6: 0 on no errors, 1
// on any error.
func (c *Collector) ExitCode() int {
	if c.HasErrors() {
		return 1
	}
	return 0
}

// SortBySpan orders diagnostics by source position, preserving
// relative order among diagnostics at the same position.
func (c *Collector) SortBySpan() {
	sort.SliceStable(c.diagnostics, func(i, j int) bool {
		return c.diagnostics[i].Location.Start.Offset < c.diagnostics[j].Location.Start.Offset
	})
}
