package frontend

import (
	"fmt"
	"strings"
)

// The AST is a strict ownership tree: every composite node exclusively
// owns its children, the parser is the sole producer, and nodes are not
// mutated after construction. String methods render source-shaped text,
// so a dumped tree re-parses to an equal tree.

// NSIdent is a namespaced identifier path such as a::b::c. It is never
// empty.
type NSIdent []string

func (n NSIdent) String() string { return strings.Join(n, "::") }

// BinOp tags a binary arithmetic or comparison operation.
type BinOp int

const (
	OpAdd BinOp = iota // +
	OpSub              // -
	OpMul              // *
	OpDiv              // /
	OpRem              // %
	OpLt               // <
	OpLe               // <=
	OpEq               // ==
	OpGe               // >=
	OpGt               // >
)

var binOpNames = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpRem: "%",
	OpLt:  "<",
	OpLe:  "<=",
	OpEq:  "==",
	OpGe:  ">=",
	OpGt:  ">",
}

func (op BinOp) String() string {
	if int(op) >= 0 && int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

//  Top-level declarations

// Decl is implemented by every node that may appear at the top level of
// a compilation unit.
type Decl interface {
	declNode()
	String() string
}

// FnExtern declares a foreign function: name, ordered optionally-named
// typed parameters, variadic flag, optional return type.
//
//	extern fn printf(*const u8, ...) -> i32;
type FnExtern struct {
	Name     string
	Params   []ExternParam
	Variadic bool
	Returns  Type // nil when the function returns nothing
}

// ExternParam is one foreign parameter; Name is "" when unnamed.
type ExternParam struct {
	Name string
	Type Type
}

func (*FnExtern) declNode() {}
func (f *FnExtern) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "extern fn %s(", f.Name)
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Name != "" {
			b.WriteString(p.Name)
			b.WriteByte(' ')
		}
		b.WriteString(p.Type.String())
	}
	if f.Variadic {
		if len(f.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString(")")
	if f.Returns != nil {
		b.WriteString(" -> ")
		b.WriteString(f.Returns.String())
	}
	b.WriteString(";")
	return b.String()
}

// FnDef is a named function definition with a body.
//
//	fn add(a i32, b i32) -> i32 { a + b }
type FnDef struct {
	Name    string
	Params  []Param
	Returns Type // nil when the function returns nothing
	Body    *Block
}

// Param is one named, typed definition parameter.
type Param struct {
	Name string
	Type Type
}

func (*FnDef) declNode() {}
func (f *FnDef) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s(", f.Name)
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteByte(' ')
		b.WriteString(p.Type.String())
	}
	b.WriteString(")")
	if f.Returns != nil {
		b.WriteString(" -> ")
		b.WriteString(f.Returns.String())
	}
	b.WriteByte(' ')
	b.WriteString(f.Body.String())
	return b.String()
}

// Entry is the entry-point definition: optional return type and a body.
//
//	entry -> i32 { 0 }
type Entry struct {
	Returns Type // nil when the entry point returns nothing
	Body    *Block
}

func (*Entry) declNode() {}
func (e *Entry) String() string {
	if e.Returns != nil {
		return fmt.Sprintf("entry -> %s %s", e.Returns, e.Body)
	}
	return fmt.Sprintf("entry %s", e.Body)
}

// Use is a module-import declaration. Kind is nil when no kind string
// was given.
//
//	use "core::io";
//	extern use "c" "m";
type Use struct {
	External bool
	Kind     []byte
	Path     []byte
}

func (*Use) declNode() {}
func (u *Use) String() string {
	var b strings.Builder
	if u.External {
		b.WriteString("extern ")
	}
	b.WriteString("use ")
	if u.Kind != nil {
		b.WriteString(quoteLok("", u.Kind))
		b.WriteByte(' ')
	}
	b.WriteString(quoteLok("", u.Path))
	b.WriteString(";")
	return b.String()
}

//  Blocks and statements

// Block is an ordered statement sequence plus an optional tail
// expression whose value becomes the block's value. Tail is nil for a
// statement-only block; it is never ambiguous which of the two a parsed
// block is.
type Block struct {
	Stmts []Stmt
	Tail  Expr
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for _, s := range b.Stmts {
		sb.WriteByte(' ')
		sb.WriteString(s.String())
	}
	if b.Tail != nil {
		sb.WriteByte(' ')
		sb.WriteString(b.Tail.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	String() string
}

// ExprStmt is an expression in statement position. The rendered form
// always carries the terminating semicolon; statement-position blocks
// and conditionals re-parse identically with or without it.
type ExprStmt struct {
	X Expr
}

func (*ExprStmt) stmtNode()        {}
func (s *ExprStmt) String() string { return s.X.String() + ";" }

// LetStmt is a local variable declaration.
//
//	let mut x: i32 = 1;
type LetStmt struct {
	Name    string
	Mutable bool
	Type    Type // nil when no type was declared
	Value   Expr
}

func (*LetStmt) stmtNode() {}
func (s *LetStmt) String() string {
	var b strings.Builder
	b.WriteString("let ")
	if s.Mutable {
		b.WriteString("mut ")
	}
	b.WriteString(s.Name)
	if s.Type != nil {
		b.WriteString(": ")
		b.WriteString(s.Type.String())
	}
	b.WriteString(" = ")
	b.WriteString(s.Value.String())
	b.WriteString(";")
	return b.String()
}

// BreakStmt leaves the innermost loop, optionally with a value.
type BreakStmt struct {
	Value Expr // nil for a bare break
}

func (*BreakStmt) stmtNode() {}
func (s *BreakStmt) String() string {
	if s.Value != nil {
		return fmt.Sprintf("break %s;", s.Value)
	}
	return "break;"
}

// ReturnStmt returns from the enclosing function, optionally with a
// value.
type ReturnStmt struct {
	Value Expr // nil for a bare return
}

func (*ReturnStmt) stmtNode() {}
func (s *ReturnStmt) String() string {
	if s.Value != nil {
		return fmt.Sprintf("return %s;", s.Value)
	}
	return "return;"
}

//  Expressions

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// IntLit is an integer literal. Negative source literals are stored in
// two's complement, the way the original front end did.
type IntLit struct {
	Value uint64
}

func (*IntLit) exprNode()        {}
func (e *IntLit) String() string { return fmt.Sprintf("%d", e.Value) }

// CStrLit is a C-string literal reference; Value holds the decoded
// bytes without a trailing NUL.
type CStrLit struct {
	Value []byte
}

func (*CStrLit) exprNode()        {}
func (e *CStrLit) String() string { return quoteLok("c", e.Value) }

// VarRef is an lvalue reference through a namespaced identifier.
type VarRef struct {
	Name NSIdent
}

func (*VarRef) exprNode()        {}
func (e *VarRef) String() string { return e.Name.String() }

// BlockExpr is a block in expression position; its value is the block's
// tail value.
type BlockExpr struct {
	Block *Block
}

func (*BlockExpr) exprNode()        {}
func (e *BlockExpr) String() string { return e.Block.String() }

// IfExpr is a conditional. At most one of ElseIf and Else is non-nil:
// ElseIf chains a further conditional, Else closes the chain with a
// block.
type IfExpr struct {
	Cond   Expr
	Then   *Block
	ElseIf *IfExpr
	Else   *Block
}

func (*IfExpr) exprNode() {}
func (e *IfExpr) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "if %s %s", e.Cond, e.Then)
	switch {
	case e.ElseIf != nil:
		b.WriteString(" else ")
		b.WriteString(e.ElseIf.String())
	case e.Else != nil:
		b.WriteString(" else ")
		b.WriteString(e.Else.String())
	}
	return b.String()
}

// LoopExpr is an infinite loop; Body never has a tail. The loop's value
// is delivered by break.
type LoopExpr struct {
	Body *Block
}

func (*LoopExpr) exprNode()        {}
func (e *LoopExpr) String() string { return fmt.Sprintf("loop %s", e.Body) }

// AssignExpr writes Value into the lvalue Target. Op is the compound
// assignment slot; the parser never fills it yet.
type AssignExpr struct {
	Target Expr
	Op     *BinOp
	Value  Expr
}

func (*AssignExpr) exprNode() {}
func (e *AssignExpr) String() string {
	// Parenthesised like BinaryExpr so an assignment nested behind
	// parentheses keeps its shape across a round trip.
	return fmt.Sprintf("(%s = %s)", e.Target, e.Value)
}

// BinaryExpr represents Left Op Right. The rendered form is fully
// parenthesised so precedence survives a round trip.
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// CallExpr invokes Fn with ordered arguments. Fn is itself an
// expression, so curried chains like f(1)(2) nest naturally.
type CallExpr struct {
	Fn   Expr
	Args []Expr
}

func (*CallExpr) exprNode() {}
func (e *CallExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Fn.String())
	b.WriteString("(")
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}

//  Types

// Type is implemented by every type-expression node.
type Type interface {
	typeNode()
	String() string
}

// NamedType is a (possibly namespaced) type name.
type NamedType struct {
	Name NSIdent
}

func (*NamedType) typeNode()        {}
func (t *NamedType) String() string { return t.Name.String() }

// PtrType covers the four pointer shapes along two independent axes:
// mutability and dynamically-sized pointee.
type PtrType struct {
	Mutable bool
	Dyn     bool
	Elem    Type
}

func (*PtrType) typeNode() {}
func (t *PtrType) String() string {
	var b strings.Builder
	b.WriteString("*")
	if t.Dyn {
		b.WriteString("dyn ")
	}
	if t.Mutable {
		b.WriteString("mut ")
	} else {
		b.WriteString("const ")
	}
	b.WriteString(t.Elem.String())
	return b.String()
}

// SliceType is an unsized element sequence [T].
type SliceType struct {
	Elem Type
}

func (*SliceType) typeNode()        {}
func (t *SliceType) String() string { return fmt.Sprintf("[%s]", t.Elem) }

// ArrayType is a fixed-size element sequence [T; N].
type ArrayType struct {
	Elem Type
	Len  uint64
}

func (*ArrayType) typeNode()        {}
func (t *ArrayType) String() string { return fmt.Sprintf("[%s; %d]", t.Elem, t.Len) }

// TupleType is an ordered list of element types, including the empty
// and one-element forms.
type TupleType struct {
	Elems []Type
}

func (*TupleType) typeNode() {}
func (t *TupleType) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, e := range t.Elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString(")")
	return b.String()
}

// quoteLok renders decoded literal bytes back into escaped Lok string
// syntax with the given prefix.
func quoteLok(prefix string, data []byte) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('"')
	for _, c := range data {
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
