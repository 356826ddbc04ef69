// Package astjson decodes the JSON-encoded AST documents the CLI
// driver reads from disk into internal/ast trees. spec.md scopes
// lexical tokenization and recursive-descent parsing out of this
// repository entirely (§1 Non-goals): the analyzer's input interface
// is "a tree of statement nodes whose variants match §4.E plus
// expression nodes whose variants match §4.D" (§6), produced by
// whatever upstream parser stage exists outside this repo. JSON, tagged
// by a "kind" discriminator per node, is the serialization this repo
// chooses for that boundary — the same encoding/json idiom
// internal/cli/common.go already uses for its own Config persistence.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/chtholly-lang/chtholly/internal/ast"
	"github.com/chtholly-lang/chtholly/internal/position"
)

// node is the generic envelope every JSON AST node arrives in: a "kind"
// discriminator plus the kind-specific fields, left raw until Decode
// dispatches on Kind.
type node struct {
	Kind string          `json:"kind"`
	Span *jsonSpan       `json:"span"`
	Raw  json.RawMessage `json:"-"`
}

type jsonSpan struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

func (s *jsonSpan) toSpan(filename string) position.Span {
	if s == nil {
		return position.Span{}
	}
	return position.Span{
		Start: position.Position{Filename: filename, Line: s.StartLine, Column: s.StartCol},
		End:   position.Position{Filename: filename, Line: s.EndLine, Column: s.EndCol},
	}
}

// Decode parses a JSON AST document (as produced by an external parser
// stage) into a *ast.Program. filename is used only to stamp
// position.Span.Filename on every decoded node, for diagnostic
// rendering.
func Decode(data []byte, filename string) (*ast.Program, error) {
	var raw struct {
		Span         *jsonSpan         `json:"span"`
		Declarations []json.RawMessage `json:"declarations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("astjson: invalid document: %w", err)
	}
	decls := make([]ast.Statement, len(raw.Declarations))
	for i, d := range raw.Declarations {
		st, err := decodeStatement(d, filename)
		if err != nil {
			return nil, fmt.Errorf("astjson: declaration %d: %w", i, err)
		}
		decls[i] = st
	}
	return &ast.Program{Span: raw.Span.toSpan(filename), Declarations: decls}, nil
}

func peekKind(data []byte) (string, error) {
	var h struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return "", err
	}
	if h.Kind == "" {
		return "", fmt.Errorf("missing \"kind\" field")
	}
	return h.Kind, nil
}

func decodeTypeName(data json.RawMessage, filename string) (ast.TypeName, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "plain_type":
		var v struct {
			Span *jsonSpan `json:"span"`
			Name string    `json:"name"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ast.PlainType{Span: v.Span.toSpan(filename), Name: v.Name}, nil
	case "reference_type":
		var v struct {
			Span    *jsonSpan       `json:"span"`
			Inner   json.RawMessage `json:"inner"`
			Mutable bool            `json:"mutable"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		inner, err := decodeTypeName(v.Inner, filename)
		if err != nil {
			return nil, err
		}
		return &ast.ReferenceType{Span: v.Span.toSpan(filename), Inner: inner, Mutable: v.Mutable}, nil
	case "array_type":
		var v struct {
			Span    *jsonSpan       `json:"span"`
			Element json.RawMessage `json:"element"`
			Size    json.RawMessage `json:"size"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		elem, err := decodeTypeName(v.Element, filename)
		if err != nil {
			return nil, err
		}
		var size ast.Expression
		if len(v.Size) > 0 && string(v.Size) != "null" {
			size, err = decodeExpression(v.Size, filename)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ArrayType{Span: v.Span.toSpan(filename), Element: elem, Size: size}, nil
	default:
		return nil, fmt.Errorf("unknown type name kind %q", kind)
	}
}

func decodeParam(data json.RawMessage, filename string) (ast.Param, error) {
	var v struct {
		Name       string          `json:"name"`
		Annotation json.RawMessage `json:"annotation"`
		Mutable    bool            `json:"mutable"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return ast.Param{}, err
	}
	ann, err := decodeTypeName(v.Annotation, filename)
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Name: v.Name, Annotation: ann, Mutable: v.Mutable}, nil
}

func decodeField(data json.RawMessage, filename string) (ast.FieldDecl, error) {
	var v struct {
		Name       string          `json:"name"`
		Annotation json.RawMessage `json:"annotation"`
		Mutable    bool            `json:"mutable"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return ast.FieldDecl{}, err
	}
	ann, err := decodeTypeName(v.Annotation, filename)
	if err != nil {
		return ast.FieldDecl{}, err
	}
	return ast.FieldDecl{Name: v.Name, Annotation: ann, Mutable: v.Mutable}, nil
}
