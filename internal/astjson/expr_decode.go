package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/chtholly-lang/chtholly/internal/ast"
)

func decodeExpressions(data []json.RawMessage, filename string) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(data))
	for i, d := range data {
		e, err := decodeExpression(d, filename)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeExpression(data json.RawMessage, filename string) (ast.Expression, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "int_literal":
		var v struct {
			Span  *jsonSpan `json:"span"`
			Value int64     `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ast.IntLiteral{Span: v.Span.toSpan(filename), Value: v.Value}, nil

	case "float_literal":
		var v struct {
			Span  *jsonSpan `json:"span"`
			Value float64   `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ast.FloatLiteral{Span: v.Span.toSpan(filename), Value: v.Value}, nil

	case "string_literal":
		var v struct {
			Span  *jsonSpan `json:"span"`
			Value string    `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Span: v.Span.toSpan(filename), Value: v.Value}, nil

	case "char_literal":
		var v struct {
			Span  *jsonSpan `json:"span"`
			Value string    `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		r := rune(0)
		for _, c := range v.Value {
			r = c
			break
		}
		return &ast.CharLiteral{Span: v.Span.toSpan(filename), Value: r}, nil

	case "bool_literal":
		var v struct {
			Span  *jsonSpan `json:"span"`
			Value bool      `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Span: v.Span.toSpan(filename), Value: v.Value}, nil

	case "identifier":
		var v struct {
			Span *jsonSpan `json:"span"`
			Name string    `json:"name"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ast.Identifier{Span: v.Span.toSpan(filename), Name: v.Name}, nil

	case "self":
		var v struct {
			Span *jsonSpan `json:"span"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ast.SelfExpr{Span: v.Span.toSpan(filename)}, nil

	case "borrow":
		var v struct {
			Span    *jsonSpan       `json:"span"`
			Mutable bool            `json:"mutable"`
			Target  json.RawMessage `json:"target"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		target, err := decodeExpression(v.Target, filename)
		if err != nil {
			return nil, err
		}
		return &ast.BorrowExpr{Span: v.Span.toSpan(filename), Mutable: v.Mutable, Target: target}, nil

	case "binary":
		var v struct {
			Span  *jsonSpan       `json:"span"`
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		left, err := decodeExpression(v.Left, filename)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(v.Right, filename)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Span: v.Span.toSpan(filename), Op: ast.BinaryOp(v.Op), Left: left, Right: right}, nil

	case "unary":
		var v struct {
			Span    *jsonSpan       `json:"span"`
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		operand, err := decodeExpression(v.Operand, filename)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Span: v.Span.toSpan(filename), Op: ast.UnaryOp(v.Op), Operand: operand}, nil

	case "assign":
		var v struct {
			Span   *jsonSpan       `json:"span"`
			Target json.RawMessage `json:"target"`
			Value  json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		target, err := decodeExpression(v.Target, filename)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(v.Value, filename)
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Span: v.Span.toSpan(filename), Target: target, Value: value}, nil

	case "call":
		var v struct {
			Span   *jsonSpan         `json:"span"`
			Callee json.RawMessage   `json:"callee"`
			Args   []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		callee, err := decodeExpression(v.Callee, filename)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(v.Args, filename)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Span: v.Span.toSpan(filename), Callee: callee, Args: args}, nil

	case "struct_init":
		var v struct {
			Span       *jsonSpan         `json:"span"`
			StructName string            `json:"struct_name"`
			Positional []json.RawMessage `json:"positional"`
			Named      []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"named"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		e := &ast.StructInitExpr{Span: v.Span.toSpan(filename), StructName: v.StructName}
		if v.Positional != nil {
			pos, err := decodeExpressions(v.Positional, filename)
			if err != nil {
				return nil, err
			}
			e.Positional = pos
		}
		if v.Named != nil {
			named := make([]ast.NamedFieldInit, len(v.Named))
			for i, nf := range v.Named {
				val, err := decodeExpression(nf.Value, filename)
				if err != nil {
					return nil, err
				}
				named[i] = ast.NamedFieldInit{Name: nf.Name, Value: val}
			}
			e.Named = named
		}
		return e, nil

	case "member_access":
		var v struct {
			Span   *jsonSpan       `json:"span"`
			Object json.RawMessage `json:"object"`
			Member string          `json:"member"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		object, err := decodeExpression(v.Object, filename)
		if err != nil {
			return nil, err
		}
		return &ast.MemberAccessExpr{Span: v.Span.toSpan(filename), Object: object, Member: v.Member}, nil

	case "array_literal":
		var v struct {
			Span     *jsonSpan         `json:"span"`
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		elements, err := decodeExpressions(v.Elements, filename)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteralExpr{Span: v.Span.toSpan(filename), Elements: elements}, nil

	case "index":
		var v struct {
			Span  *jsonSpan       `json:"span"`
			Array json.RawMessage `json:"array"`
			Index json.RawMessage `json:"index"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		arr, err := decodeExpression(v.Array, filename)
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpression(v.Index, filename)
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Span: v.Span.toSpan(filename), Array: arr, Index: idx}, nil

	case "enum_variant":
		var v struct {
			Span    *jsonSpan         `json:"span"`
			Enum    string            `json:"enum"`
			Variant string            `json:"variant"`
			Args    []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		args, err := decodeExpressions(v.Args, filename)
		if err != nil {
			return nil, err
		}
		return &ast.EnumVariantExpr{Span: v.Span.toSpan(filename), Enum: v.Enum, Variant: v.Variant, Args: args}, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q", kind)
	}
}
