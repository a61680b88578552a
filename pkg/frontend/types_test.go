package frontend

import (
	"reflect"
	"testing"
)

// parseOneType parses typ as an unnamed foreign parameter.
func parseOneType(t *testing.T, typ string) Type {
	t.Helper()
	decls, err := ParseSource("extern fn f(" + typ + ");")
	if err != nil {
		t.Fatalf("ParseSource(%q) error = %v", typ, err)
	}
	return decls[0].(*FnExtern).Params[0].Type
}

func TestParseTypes(t *testing.T) {
	u8 := &NamedType{Name: NSIdent{"u8"}}

	tests := []struct {
		name     string
		input    string
		expected Type
	}{
		{"Named", "u8", u8},
		{"Namespaced", "core::Str", &NamedType{Name: NSIdent{"core", "Str"}}},
		{"Const Pointer", "*const u8", &PtrType{Elem: u8}},
		{"Mut Pointer", "*mut u8", &PtrType{Mutable: true, Elem: u8}},
		{"Dyn Const Pointer", "*dyn const u8", &PtrType{Dyn: true, Elem: u8}},
		{"Dyn Mut Pointer", "*dyn mut u8", &PtrType{Dyn: true, Mutable: true, Elem: u8}},
		{"Pointer To Pointer", "*const *mut u8", &PtrType{Elem: &PtrType{Mutable: true, Elem: u8}}},
		{"Slice", "[u8]", &SliceType{Elem: u8}},
		{"Array", "[u8; 4]", &ArrayType{Elem: u8, Len: 4}},
		{"Array Underscored Length", "[u8; 1_024]", &ArrayType{Elem: u8, Len: 1024}},
		{"Nested Array", "[[u8; 2]; 3]", &ArrayType{Elem: &ArrayType{Elem: u8, Len: 2}, Len: 3}},
		{"Pointer To Slice", "*dyn mut [u8]", &PtrType{Dyn: true, Mutable: true, Elem: &SliceType{Elem: u8}}},
		{"Pointer To Array", "*dyn mut [i32; 4]", &PtrType{Dyn: true, Mutable: true, Elem: &ArrayType{Elem: i32(), Len: 4}}},
		{"Unit Tuple", "()", &TupleType{}},
		{"One Tuple", "(u8)", &TupleType{Elems: []Type{u8}}},
		{"Tuple Trailing Comma", "(u8, i32,)", &TupleType{Elems: []Type{u8, i32()}}},
		{"Slice Of Tuples", "[(u8, u8)]", &SliceType{Elem: &TupleType{Elems: []Type{u8, u8}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOneType(t, tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("type %q = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Pointer Needs Qualifier", "*u8"},
		{"Negative Array Length", "[u8; -1]"},
		{"Array Length Not Integer", "[u8; n]"},
		{"Unclosed Tuple", "(u8"},
		{"Keyword Is Not A Type", "mut"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSource("extern fn f(" + tt.input + ");"); err == nil {
				t.Errorf("type %q parsed, want error", tt.input)
			}
		})
	}
}
