package parser

import (
	"errors"
	"reflect"
	"testing"

	bserrors "github.com/wippyai/bitschema/errors"
	"github.com/wippyai/bitschema/schema/internal/ast"
	"github.com/wippyai/bitschema/schema/internal/token"
)

func parse(t *testing.T, input string) ([]ast.Decl, error) {
	t.Helper()
	tokens, err := token.Scan(input)
	if err != nil {
		t.Fatalf("Scan(%q) failed: %v", input, err)
	}
	return New(tokens).Parse()
}

func named(name string, pos int) *ast.Type {
	return &ast.Type{Category: ast.Named, Name: name, Position: pos}
}

func TestParseEmpty(t *testing.T) {
	decls, err := parse(t, "  ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(decls) != 0 {
		t.Errorf("expected no declarations, got %d", len(decls))
	}
}

func TestParseNamed(t *testing.T) {
	decls, err := parse(t, "V=u8;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []ast.Decl{{Name: "V", Type: named("u8", 2), Position: 0}}
	if !reflect.DeepEqual(decls, want) {
		t.Errorf("Parse = %+v, want %+v", decls, want)
	}
}

func TestParseComposites(t *testing.T) {
	tests := []struct {
		want  *ast.Type
		name  string
		input string
	}{
		{
			name:  "array",
			input: "V=[u8:12];",
			want:  &ast.Type{Category: ast.ArrayUnmasked, Elem: named("u8", 3), Count: 12, Position: 2},
		},
		{
			name:  "array_default_mask",
			input: "V=[//u8:12];",
			want:  &ast.Type{Category: ast.ArrayMasked, Elem: named("u8", 5), Count: 12, Position: 2},
		},
		{
			name:  "array_sized_mask",
			input: "V=[/20/u8:12];",
			want:  &ast.Type{Category: ast.ArrayMasked, MaskBits: 20, Elem: named("u8", 7), Count: 12, Position: 2},
		},
		{
			name:  "tuple",
			input: "V=(u8,i16);",
			want:  &ast.Type{Category: ast.TupleUnmasked, Elems: []*ast.Type{named("u8", 3), named("i16", 6)}, Position: 2},
		},
		{
			name:  "masked_tuple",
			input: "V=(//u8);",
			want:  &ast.Type{Category: ast.TupleMasked, Elems: []*ast.Type{named("u8", 5)}, Position: 2},
		},
		{
			name:  "map",
			input: "V={a:u8,b:s4};",
			want: &ast.Type{Category: ast.MapUnmasked, Position: 2, Fields: []ast.Field{
				{Name: "a", Type: named("u8", 5), Position: 3},
				{Name: "b", Type: named("s4", 10), Position: 8},
			}},
		},
		{
			name:  "masked_map",
			input: "V={/10/a:u8};",
			want: &ast.Type{Category: ast.MapMasked, MaskBits: 10, Position: 2, Fields: []ast.Field{
				{Name: "a", Type: named("u8", 9), Position: 7},
			}},
		},
		{
			name:  "nested",
			input: "V=[(u8):2];",
			want: &ast.Type{Category: ast.ArrayUnmasked, Count: 2, Position: 2,
				Elem: &ast.Type{Category: ast.TupleUnmasked, Elems: []*ast.Type{named("u8", 4)}, Position: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := parse(t, tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(decls) != 1 {
				t.Fatalf("expected 1 declaration, got %d", len(decls))
			}
			if !reflect.DeepEqual(decls[0].Type, tt.want) {
				t.Errorf("Type = %+v, want %+v", decls[0].Type, tt.want)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	decls, err := parse(t, "B = u8;\nA = B;\nC = { x: A, y: B };")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if !reflect.DeepEqual(names, []string{"B", "A", "C"}) {
		t.Errorf("names = %v", names)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     bserrors.Kind
		position int
	}{
		{"lowercase_structure", "foo=u8;", bserrors.KindInvalidName, 0},
		{"underscore_structure", "V=u8;_A=u8;", bserrors.KindInvalidName, 5},
		{"reserved_field", "V={MASK:u8};", bserrors.KindReservedName, 3},
		{"reserved_structure", "MASK=u8;", bserrors.KindReservedName, 0},
		{"missing_equals", "V u8;", bserrors.KindSyntax, 2},
		{"missing_semicolon", "V=u8 W=u8;", bserrors.KindSyntax, 5},
		{"number_as_type", "V=12;", bserrors.KindSyntax, 2},
		{"symbol_as_type", "V=:;", bserrors.KindSyntax, 2},
		{"number_as_name", "12=u8;", bserrors.KindSyntax, 0},
		{"bad_mask", "V=[/u8/u8:2];", bserrors.KindSyntax, 4},
		{"unclosed_mask", "V=[/8 u8:2];", bserrors.KindSyntax, 6},
		{"map_separator", "V={a:u8;b:u8};", bserrors.KindSyntax, 7},
		{"tuple_separator", "V=(u8;u8);", bserrors.KindSyntax, 5},
		{"array_count", "V=[u8:x];", bserrors.KindSyntax, 6},
		{"array_close", "V=[u8:4);", bserrors.KindSyntax, 7},
		{"map_field_colon", "V={a,u8};", bserrors.KindSyntax, 4},
		{"empty_map", "V={};", bserrors.KindSyntax, 3},
		{"eof", "V=[u8:4", bserrors.KindUnexpectedEOF, bserrors.NoPosition},
		{"eof_after_name", "V", bserrors.KindUnexpectedEOF, bserrors.NoPosition},
		{"eof_in_mask", "V=[/", bserrors.KindUnexpectedEOF, bserrors.NoPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.input)
			}
			var e *bserrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %T: %v", err, err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s (%v)", e.Kind, tt.kind, err)
			}
			if e.Position != tt.position {
				t.Errorf("Position = %d, want %d (%v)", e.Position, tt.position, err)
			}
		})
	}
}
