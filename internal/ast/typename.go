package ast

import (
	"fmt"

	"github.com/chtholly-lang/chtholly/internal/position"
)

// PlainType names a built-in primitive or a user-declared nominal type
// (struct, class, enum) by name.
type PlainType struct {
	Span position.Span
	Name string
}

func (t *PlainType) GetSpan() position.Span { return t.Span }
func (t *PlainType) String() string         { return t.Name }
func (*PlainType) typeNameNode()            {}

// ReferenceType is a `&Inner` or `&mut Inner` type annotation.
type ReferenceType struct {
	Span    position.Span
	Inner   TypeName
	Mutable bool
}

func (t *ReferenceType) GetSpan() position.Span { return t.Span }
func (t *ReferenceType) String() string {
	if t.Mutable {
		return fmt.Sprintf("&mut %s", t.Inner.String())
	}
	return fmt.Sprintf("&%s", t.Inner.String())
}
func (*ReferenceType) typeNameNode() {}

// ArrayType is a `[Element; Size]` fixed-size array annotation, or a
// `[Element]` dynamic-array annotation when Size is nil.
type ArrayType struct {
	Span    position.Span
	Element TypeName
	Size    Expression // nil for a dynamic array
}

func (t *ArrayType) GetSpan() position.Span { return t.Span }
func (t *ArrayType) String() string {
	if t.Size == nil {
		return fmt.Sprintf("[%s]", t.Element.String())
	}
	return fmt.Sprintf("[%s; %s]", t.Element.String(), t.Size.String())
}
func (*ArrayType) typeNameNode() {}
