package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/chtholly-lang/chtholly/internal/ast"
)

func decodeStatements(data []json.RawMessage, filename string) ([]ast.Statement, error) {
	out := make([]ast.Statement, len(data))
	for i, d := range data {
		st, err := decodeStatement(d, filename)
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}

func decodeBlock(data json.RawMessage, filename string) (*ast.BlockStatement, error) {
	if len(data) == 0 || string(data) == "null" {
		return &ast.BlockStatement{}, nil
	}
	var v struct {
		Span       *jsonSpan         `json:"span"`
		Statements []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	stmts, err := decodeStatements(v.Statements, filename)
	if err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Span: v.Span.toSpan(filename), Statements: stmts}, nil
}

func decodeStatement(data json.RawMessage, filename string) (ast.Statement, error) {
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "expression_statement":
		var v struct {
			Span *jsonSpan       `json:"span"`
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		expr, err := decodeExpression(v.Expr, filename)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Span: v.Span.toSpan(filename), Expr: expr}, nil

	case "let":
		var v struct {
			Span       *jsonSpan       `json:"span"`
			Name       string          `json:"name"`
			Mutable    bool            `json:"mutable"`
			Annotation json.RawMessage `json:"annotation"`
			Init       json.RawMessage `json:"init"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		ann, err := decodeTypeName(v.Annotation, filename)
		if err != nil {
			return nil, err
		}
		init, err := decodeExpression(v.Init, filename)
		if err != nil {
			return nil, err
		}
		return &ast.LetStatement{Span: v.Span.toSpan(filename), Name: v.Name, Mutable: v.Mutable, Annotation: ann, Init: init}, nil

	case "block":
		return decodeBlock(data, filename)

	case "if":
		var v struct {
			Span       *jsonSpan       `json:"span"`
			Condition  json.RawMessage `json:"condition"`
			Then       json.RawMessage `json:"then"`
			ElseBranch json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		cond, err := decodeExpression(v.Condition, filename)
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(v.Then, filename)
		if err != nil {
			return nil, err
		}
		var elseBranch ast.Statement
		if len(v.ElseBranch) > 0 && string(v.ElseBranch) != "null" {
			if _, kerr := peekKind(v.ElseBranch); kerr != nil {
				// A kind-less object is a plain block, as for "then".
				elseBranch, err = decodeBlock(v.ElseBranch, filename)
			} else {
				elseBranch, err = decodeStatement(v.ElseBranch, filename)
			}
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStatement{Span: v.Span.toSpan(filename), Condition: cond, Then: then, ElseBranch: elseBranch}, nil

	case "while":
		var v struct {
			Span      *jsonSpan       `json:"span"`
			Condition json.RawMessage `json:"condition"`
			Body      json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		cond, err := decodeExpression(v.Condition, filename)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(v.Body, filename)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Span: v.Span.toSpan(filename), Condition: cond, Body: body}, nil

	case "do_while":
		var v struct {
			Span      *jsonSpan       `json:"span"`
			Body      json.RawMessage `json:"body"`
			Condition json.RawMessage `json:"condition"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		body, err := decodeBlock(v.Body, filename)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpression(v.Condition, filename)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStatement{Span: v.Span.toSpan(filename), Body: body, Condition: cond}, nil

	case "for":
		var v struct {
			Span      *jsonSpan       `json:"span"`
			Init      json.RawMessage `json:"init"`
			Condition json.RawMessage `json:"condition"`
			Step      json.RawMessage `json:"step"`
			Body      json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		var init, step ast.Statement
		var err2 error
		if len(v.Init) > 0 && string(v.Init) != "null" {
			init, err2 = decodeStatement(v.Init, filename)
			if err2 != nil {
				return nil, err2
			}
		}
		var cond ast.Expression
		if len(v.Condition) > 0 && string(v.Condition) != "null" {
			cond, err2 = decodeExpression(v.Condition, filename)
			if err2 != nil {
				return nil, err2
			}
		}
		if len(v.Step) > 0 && string(v.Step) != "null" {
			step, err2 = decodeStatement(v.Step, filename)
			if err2 != nil {
				return nil, err2
			}
		}
		body, err := decodeBlock(v.Body, filename)
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Span: v.Span.toSpan(filename), Init: init, Condition: cond, Step: step, Body: body}, nil

	case "switch":
		var v struct {
			Span         *jsonSpan         `json:"span"`
			Discriminant json.RawMessage   `json:"discriminant"`
			Cases        []json.RawMessage `json:"cases"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		disc, err := decodeExpression(v.Discriminant, filename)
		if err != nil {
			return nil, err
		}
		cases := make([]*ast.SwitchCase, len(v.Cases))
		for i, c := range v.Cases {
			sc, err := decodeSwitchCase(c, filename)
			if err != nil {
				return nil, err
			}
			cases[i] = sc
		}
		return &ast.SwitchStatement{Span: v.Span.toSpan(filename), Discriminant: disc, Cases: cases}, nil

	case "break":
		var v struct {
			Span *jsonSpan `json:"span"`
		}
		json.Unmarshal(data, &v)
		return &ast.BreakStatement{Span: v.Span.toSpan(filename)}, nil

	case "continue":
		var v struct {
			Span *jsonSpan `json:"span"`
		}
		json.Unmarshal(data, &v)
		return &ast.ContinueStatement{Span: v.Span.toSpan(filename)}, nil

	case "fallthrough":
		var v struct {
			Span *jsonSpan `json:"span"`
		}
		json.Unmarshal(data, &v)
		return &ast.FallthroughStatement{Span: v.Span.toSpan(filename)}, nil

	case "return":
		var v struct {
			Span  *jsonSpan       `json:"span"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		var value ast.Expression
		if len(v.Value) > 0 && string(v.Value) != "null" {
			var err error
			value, err = decodeExpression(v.Value, filename)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ReturnStatement{Span: v.Span.toSpan(filename), Value: value}, nil

	case "function_decl":
		return decodeFunctionDecl(data, filename)

	case "struct_decl":
		var v struct {
			Span   *jsonSpan         `json:"span"`
			Name   string            `json:"name"`
			Fields []json.RawMessage `json:"fields"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		fields, err := decodeFields(v.Fields, filename)
		if err != nil {
			return nil, err
		}
		return &ast.StructDecl{Span: v.Span.toSpan(filename), Name: v.Name, Fields: fields}, nil

	case "class_decl":
		var v struct {
			Span    *jsonSpan         `json:"span"`
			Name    string            `json:"name"`
			Fields  []json.RawMessage `json:"fields"`
			Methods []json.RawMessage `json:"methods"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		fields, err := decodeFields(v.Fields, filename)
		if err != nil {
			return nil, err
		}
		methods := make([]*ast.FunctionDecl, len(v.Methods))
		for i, m := range v.Methods {
			fn, err := decodeFunctionDecl(m, filename)
			if err != nil {
				return nil, err
			}
			methods[i] = fn
		}
		return &ast.ClassDecl{Span: v.Span.toSpan(filename), Name: v.Name, Fields: fields, Methods: methods}, nil

	case "enum_decl":
		var v struct {
			Span     *jsonSpan `json:"span"`
			Name     string    `json:"name"`
			Variants []struct {
				Name    string            `json:"name"`
				Payload []json.RawMessage `json:"payload"`
			} `json:"variants"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		variants := make([]ast.EnumVariantDecl, len(v.Variants))
		for i, vr := range v.Variants {
			payload := make([]ast.TypeName, len(vr.Payload))
			for j, p := range vr.Payload {
				tn, err := decodeTypeName(p, filename)
				if err != nil {
					return nil, err
				}
				payload[j] = tn
			}
			variants[i] = ast.EnumVariantDecl{Name: vr.Name, Payload: payload}
		}
		return &ast.EnumDecl{Span: v.Span.toSpan(filename), Name: v.Name, Variants: variants}, nil

	default:
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}
}

func decodeFields(data []json.RawMessage, filename string) ([]ast.FieldDecl, error) {
	out := make([]ast.FieldDecl, len(data))
	for i, d := range data {
		f, err := decodeField(d, filename)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func decodeFunctionDecl(data json.RawMessage, filename string) (*ast.FunctionDecl, error) {
	var v struct {
		Span       *jsonSpan         `json:"span"`
		Name       string            `json:"name"`
		Parameters []json.RawMessage `json:"parameters"`
		ReturnType json.RawMessage   `json:"return_type"`
		Body       json.RawMessage   `json:"body"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	params := make([]ast.Param, len(v.Parameters))
	for i, p := range v.Parameters {
		param, err := decodeParam(p, filename)
		if err != nil {
			return nil, err
		}
		params[i] = param
	}
	ret, err := decodeTypeName(v.ReturnType, filename)
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(v.Body, filename)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Span: v.Span.toSpan(filename), Name: v.Name, Parameters: params, ReturnType: ret, Body: body}, nil
}

func decodeSwitchCase(data json.RawMessage, filename string) (*ast.SwitchCase, error) {
	var v struct {
		Span      *jsonSpan         `json:"span"`
		Values    []json.RawMessage `json:"values"`
		IsDefault bool              `json:"is_default"`
		Body      []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	values, err := decodeExpressions(v.Values, filename)
	if err != nil {
		return nil, err
	}
	body, err := decodeStatements(v.Body, filename)
	if err != nil {
		return nil, err
	}
	return &ast.SwitchCase{Span: v.Span.toSpan(filename), Values: values, IsDefault: v.IsDefault, Body: body}, nil
}
