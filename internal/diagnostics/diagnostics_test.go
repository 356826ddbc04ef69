package diagnostics

import (
	"strings"
	"testing"

	"github.com/chtholly-lang/chtholly/internal/position"
)

func span(startOffset, endOffset int) position.Span {
	return position.Span{
		Start: position.Position{Filename: "test.cht", Line: 1, Column: startOffset + 1, Offset: startOffset},
		End:   position.Position{Filename: "test.cht", Line: 1, Column: endOffset + 1, Offset: endOffset},
	}
}

func TestCollectorErrorAndWarning(t *testing.T) {
	c := NewCollector()
	c.Error(KindUndeclaredVariable, span(0, 1), "undeclared variable '%s'", "x")
	c.Warning(KindAssignToImmutable, span(2, 3), "assignment to immutable binding")

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(all))
	}
	if all[0].Severity != SeverityError || all[0].Kind != KindUndeclaredVariable {
		t.Errorf("unexpected first diagnostic: %+v", all[0])
	}
	if !strings.Contains(all[0].Message, "'x'") {
		t.Errorf("expected formatted message to contain 'x', got %q", all[0].Message)
	}
	if all[1].Severity != SeverityWarning {
		t.Errorf("expected second diagnostic to be a warning")
	}
}

func TestCollectorHasErrorsAndExitCode(t *testing.T) {
	c := NewCollector()
	if c.HasErrors() {
		t.Error("empty collector should report no errors")
	}
	if c.ExitCode() != 0 {
		t.Error("empty collector should exit 0")
	}

	c.Warning(KindAssignToImmutable, span(0, 1), "just a warning")
	if c.HasErrors() || c.ExitCode() != 0 {
		t.Error("warnings alone should not count as errors")
	}

	c.Error(KindUseAfterMove, span(0, 1), "use after move")
	if !c.HasErrors() || c.ExitCode() != 1 {
		t.Error("collector with an error diagnostic should exit 1")
	}
}

func TestCollectorSortBySpan(t *testing.T) {
	c := NewCollector()
	c.Error(KindUndeclaredVariable, span(10, 11), "second")
	c.Error(KindUndeclaredVariable, span(0, 1), "first")
	c.SortBySpan()

	all := c.All()
	if all[0].Message != "first" || all[1].Message != "second" {
		t.Errorf("expected diagnostics sorted by offset, got %q then %q", all[0].Message, all[1].Message)
	}
}

func TestKindString(t *testing.T) {
	if got := KindUseAfterMove.String(); got != "use-after-move" {
		t.Errorf("KindUseAfterMove.String() = %q", got)
	}
	if got := Kind(9999).String(); got != "unknown" {
		t.Errorf("unmapped Kind.String() = %q, want unknown", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Kind:     KindDanglingReference,
		Message:  "reference outlives its referent",
		Location: span(0, 3),
	}
	s := d.String()
	if !strings.Contains(s, "error") || !strings.Contains(s, "dangling-reference") {
		t.Errorf("unexpected Diagnostic.String() output: %q", s)
	}
}
