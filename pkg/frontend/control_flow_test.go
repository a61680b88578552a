package frontend

import (
	"reflect"
	"testing"
)

// parseBody parses src as an entry declaration and returns its body.
func parseBody(t *testing.T, src string) *Block {
	t.Helper()
	decls, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q) error = %v", src, err)
	}
	return decls[0].(*Entry).Body
}

// A trailing block or conditional before the closing brace is the tail
// when it carries a value and a plain statement when it does not; a
// tail-carrying one followed by more statements is an error.
func TestTrailingBlockForms(t *testing.T) {
	one := &IntLit{Value: 1}
	x := &VarRef{Name: NSIdent{"x"}}
	a := &VarRef{Name: NSIdent{"a"}}

	tests := []struct {
		name     string
		input    string
		expected *Block
	}{
		{
			name:  "Valued Block Becomes Tail",
			input: "entry { { 1 } }",
			expected: &Block{
				Tail: &BlockExpr{Block: &Block{Tail: one}},
			},
		},
		{
			name:  "Valueless Block Stays Statement",
			input: "entry { { 1; } }",
			expected: &Block{
				Stmts: []Stmt{&ExprStmt{X: &BlockExpr{Block: &Block{
					Stmts: []Stmt{&ExprStmt{X: one}},
				}}}},
			},
		},
		{
			name:  "Valued Conditional Becomes Tail",
			input: "entry { if a { 1 } }",
			expected: &Block{
				Tail: &IfExpr{Cond: a, Then: &Block{Tail: one}},
			},
		},
		{
			name:  "Valueless Conditional Stays Statement",
			input: "entry { if a { } }",
			expected: &Block{
				Stmts: []Stmt{&ExprStmt{X: &IfExpr{Cond: a, Then: &Block{}}}},
			},
		},
		{
			name:  "Conditional Statement Then Tail",
			input: "entry { if a { } x }",
			expected: &Block{
				Stmts: []Stmt{&ExprStmt{X: &IfExpr{Cond: a, Then: &Block{}}}},
				Tail:  x,
			},
		},
		{
			name:  "Semicolon Forces Statement",
			input: "entry { { 1 }; }",
			expected: &Block{
				Stmts: []Stmt{&ExprStmt{X: &BlockExpr{Block: &Block{Tail: one}}}},
			},
		},
		{
			name:  "Conditional Statement With Return Arm",
			input: "entry { if a { return 1; } x }",
			expected: &Block{
				Stmts: []Stmt{&ExprStmt{X: &IfExpr{
					Cond: a,
					Then: &Block{Stmts: []Stmt{&ReturnStmt{Value: one}}},
				}}},
				Tail: x,
			},
		},
		{
			name:  "Dangling Arm Does Not Swallow Next Statement",
			input: "entry { if a { f(); } g(); }",
			expected: &Block{
				Stmts: []Stmt{
					&ExprStmt{X: &IfExpr{
						Cond: a,
						Then: &Block{Stmts: []Stmt{&ExprStmt{X: &CallExpr{Fn: &VarRef{Name: NSIdent{"f"}}}}}},
					}},
					&ExprStmt{X: &CallExpr{Fn: &VarRef{Name: NSIdent{"g"}}}},
				},
			},
		},
		{
			name:  "Loop As Tail",
			input: "entry { loop { break 1; } }",
			expected: &Block{
				Tail: &LoopExpr{Body: &Block{Stmts: []Stmt{&BreakStmt{Value: one}}}},
			},
		},
		{
			name:  "Chain Tail Deep In Else",
			input: "entry { if a { 1; } else { 1 } }",
			expected: &Block{
				Tail: &IfExpr{
					Cond: a,
					Then: &Block{Stmts: []Stmt{&ExprStmt{X: one}}},
					Else: &Block{Tail: one},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseBody(t, tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseBody(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrailingBlockErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Valued Block Before Statement", "entry { { 1 } f(); }"},
		{"Valued Conditional Before Statement", "entry { if a { 1 } f(); }"},
		{"Valued Conditional Before Tail", "entry { if a { 1 } x }"},
		{"Loop Body Refuses Tail", "entry { loop { 1 } }"},
		{"Loop Statement Needs Semicolon", "entry { loop { } x }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSource(tt.input); err == nil {
				t.Errorf("ParseSource(%q) succeeded, want error", tt.input)
			}
		})
	}
}

// Function bodies use the same rules as entry bodies.
func TestFnBodyTail(t *testing.T) {
	src := "fn sign(v i32) -> i32 { if v < 0 { return -1; } if 0 < v { return 1; } 0 }"
	decls, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource() error = %v", err)
	}
	body := decls[0].(*FnDef).Body
	if len(body.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(body.Stmts))
	}
	tail, ok := body.Tail.(*IntLit)
	if !ok || tail.Value != 0 {
		t.Errorf("tail = %v, want 0", body.Tail)
	}
}
