package astjson

import (
	"testing"

	"github.com/chtholly-lang/chtholly/internal/ast"
)

func TestDecodeSimpleFunctionAndReturn(t *testing.T) {
	doc := []byte(`{
		"declarations": [
			{
				"kind": "function_decl",
				"name": "add",
				"parameters": [
					{"name": "a", "mutable": false, "annotation": {"kind": "plain_type", "name": "i32"}},
					{"name": "b", "mutable": false, "annotation": {"kind": "plain_type", "name": "i32"}}
				],
				"return_type": {"kind": "plain_type", "name": "i32"},
				"body": {
					"statements": [
						{
							"kind": "return",
							"value": {
								"kind": "binary",
								"op": "+",
								"left": {"kind": "identifier", "name": "a"},
								"right": {"kind": "identifier", "name": "b"}
							}
						}
					]
				}
			}
		]
	}`)

	prog, err := Decode(doc, "test.json")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}
	fn, ok := prog.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Declarations[0])
	}
	if fn.Name != "add" || len(fn.Parameters) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected *ast.ReturnStatement, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", ret.Value)
	}
	if bin.Op != ast.OpAdd {
		t.Errorf("expected OpAdd, got %q", bin.Op)
	}
}

func TestDecodeStructAndClassDecl(t *testing.T) {
	doc := []byte(`{
		"declarations": [
			{
				"kind": "struct_decl",
				"name": "Point",
				"fields": [
					{"name": "x", "mutable": true, "annotation": {"kind": "plain_type", "name": "i32"}},
					{"name": "y", "mutable": true, "annotation": {"kind": "plain_type", "name": "i32"}}
				]
			},
			{
				"kind": "class_decl",
				"name": "Counter",
				"fields": [
					{"name": "n", "mutable": true, "annotation": {"kind": "plain_type", "name": "i32"}}
				],
				"methods": [
					{
						"kind": "function_decl",
						"name": "bump",
						"parameters": [],
						"return_type": {"kind": "plain_type", "name": "void"},
						"body": {
							"statements": [
								{
									"kind": "expression_statement",
									"expr": {
										"kind": "assign",
										"target": {"kind": "member_access", "object": {"kind": "self"}, "member": "n"},
										"value": {"kind": "int_literal", "value": 1}
									}
								}
							]
						}
					}
				]
			}
		]
	}`)

	prog, err := Decode(doc, "test.json")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
	sd, ok := prog.Declarations[0].(*ast.StructDecl)
	if !ok || sd.Name != "Point" || len(sd.Fields) != 2 {
		t.Fatalf("unexpected struct decl: %+v", prog.Declarations[0])
	}
	cd, ok := prog.Declarations[1].(*ast.ClassDecl)
	if !ok || cd.Name != "Counter" || len(cd.Methods) != 1 {
		t.Fatalf("unexpected class decl: %+v", prog.Declarations[1])
	}
}

func TestDecodeReferenceAndArrayTypeNames(t *testing.T) {
	doc := []byte(`{
		"declarations": [
			{
				"kind": "function_decl",
				"name": "f",
				"parameters": [
					{"name": "r", "mutable": false, "annotation": {
						"kind": "reference_type",
						"mutable": true,
						"inner": {"kind": "plain_type", "name": "i32"}
					}},
					{"name": "arr", "mutable": false, "annotation": {
						"kind": "array_type",
						"element": {"kind": "plain_type", "name": "i32"},
						"size": {"kind": "int_literal", "value": 4}
					}}
				],
				"return_type": {"kind": "plain_type", "name": "void"},
				"body": {"statements": []}
			}
		]
	}`)

	prog, err := Decode(doc, "test.json")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FunctionDecl)
	ref, ok := fn.Parameters[0].Annotation.(*ast.ReferenceType)
	if !ok || !ref.Mutable {
		t.Fatalf("expected a mutable reference annotation, got %+v", fn.Parameters[0].Annotation)
	}
	arr, ok := fn.Parameters[1].Annotation.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected an array annotation, got %+v", fn.Parameters[1].Annotation)
	}
	size, ok := arr.Size.(*ast.IntLiteral)
	if !ok || size.Value != 4 {
		t.Fatalf("expected fixed array size 4, got %+v", arr.Size)
	}
}

func TestDecodeIfWhileSwitch(t *testing.T) {
	doc := []byte(`{
		"declarations": [
			{
				"kind": "function_decl",
				"name": "f",
				"parameters": [],
				"return_type": {"kind": "plain_type", "name": "void"},
				"body": {
					"statements": [
						{
							"kind": "if",
							"condition": {"kind": "bool_literal", "value": true},
							"then": {"statements": []},
							"else": {"statements": []}
						},
						{
							"kind": "while",
							"condition": {"kind": "bool_literal", "value": false},
							"body": {"statements": [{"kind": "break"}]}
						},
						{
							"kind": "switch",
							"discriminant": {"kind": "int_literal", "value": 1},
							"cases": [
								{
									"values": [{"kind": "int_literal", "value": 1}],
									"is_default": false,
									"body": [{"kind": "fallthrough"}]
								},
								{
									"values": [],
									"is_default": true,
									"body": [{"kind": "break"}]
								}
							]
						}
					]
				}
			}
		]
	}`)

	prog, err := Decode(doc, "test.json")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FunctionDecl)
	if len(fn.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body.Statements))
	}
	ifs, ok := fn.Body.Statements[0].(*ast.IfStatement)
	if !ok || ifs.ElseBranch == nil {
		t.Fatalf("expected an if statement with an else branch, got %+v", fn.Body.Statements[0])
	}
	sw, ok := fn.Body.Statements[2].(*ast.SwitchStatement)
	if !ok || len(sw.Cases) != 2 || !sw.Cases[1].IsDefault {
		t.Fatalf("unexpected switch shape: %+v", fn.Body.Statements[2])
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"declarations": [{"kind": "not_a_real_node"}]}`), "test.json")
	if err == nil {
		t.Fatal("expected an error for an unrecognized node kind")
	}
}

func TestDecodeEnumDeclAndVariant(t *testing.T) {
	doc := []byte(`{
		"declarations": [
			{
				"kind": "enum_decl",
				"name": "Shape",
				"variants": [
					{"name": "Circle", "payload": [{"kind": "plain_type", "name": "f64"}]},
					{"name": "Empty", "payload": []}
				]
			},
			{
				"kind": "function_decl",
				"name": "f",
				"parameters": [],
				"return_type": {"kind": "plain_type", "name": "void"},
				"body": {
					"statements": [
						{
							"kind": "expression_statement",
							"expr": {
								"kind": "enum_variant",
								"enum": "Shape",
								"variant": "Circle",
								"args": [{"kind": "float_literal", "value": 1.5}]
							}
						}
					]
				}
			}
		]
	}`)

	prog, err := Decode(doc, "test.json")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	ed, ok := prog.Declarations[0].(*ast.EnumDecl)
	if !ok || len(ed.Variants) != 2 {
		t.Fatalf("unexpected enum decl: %+v", prog.Declarations[0])
	}
}
