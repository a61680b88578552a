package frontend

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser drives the Lexer one token at a time and builds the AST.
//
// Grammar (lowest precedence first, each level left-associative):
//
//	unit        = topLevel* EOF
//	topLevel    = "extern" ("fn" fnExtern | "use" use)
//	            | "fn" fnDef | "entry" ("->" type)? block | use
//	fnExtern    = ID "(" (externParam ",")* ("...")? ")" ("->" type)? ";"
//	externParam = ID? type
//	fnDef       = ID "(" (ID type ",")* ")" ("->" type)? block
//	use         = "use" STRING? STRING ";"
//	block       = "{" statement* expression? "}"
//	statement   = "let" "mut"? ID (":" type)? "=" expression ";"
//	            | "break" expression? ";" | "return" expression? ";"
//	            | expression ";" | taillessBlock | taillessIf
//	expression  = comparison ("=" comparison)?
//	comparison  = additive (("<"|"<="|"=="|">="|">") additive)*
//	additive    = multiplicative (("+"|"-") multiplicative)*
//	multiplicative = call (("*"|"/"|"%") call)*
//	call        = atom ("(" (expression ",")* ")")*
//	atom        = INTEGER | CSTRING | nsident | "loop" block
//	            | "(" expression ")" | block | if
//	if          = "if" expression block ("else" (if | block))?
//	type        = nsident | "*" "dyn"? ("const"|"mut") type
//	            | "[" type (";" INTEGER)? "]" | "(" (type ",")* ")"
//	nsident     = (ID "::")* ID
//
// Blocks and conditionals come in two modes. In expression position they
// may carry a tail expression; in statement position they must not, so a
// bare conditional followed by further statements never swallows them as
// a tail. parseBlock threads the mode explicitly, and block items that
// start with "{" or "if" are classified by their follow token: ";" makes
// an expression statement, "}" makes them the tail when they carry one,
// and anything else demands they be tail-free statements.
type Parser struct {
	lx    *Lexer
	cur   Token
	peek  Token
	lines []string // source lines for error snippets
}

func newParser(lx *Lexer) (*Parser, error) {
	p := &Parser{lx: lx, lines: strings.Split(string(lx.src), "\n")}
	// Prime the two-token window.
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	p.cur = p.peek
	tok, err := p.lx.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// advance consumes and returns the current token.
func (p *Parser) advance() (Token, error) {
	tok := p.cur
	err := p.next()
	return tok, err
}

// expect consumes the current token if it matches tt, otherwise fails.
func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.cur.Type != tt {
		return p.cur, p.errExpected(tt.String())
	}
	return p.advance()
}

// errExpected wraps an unexpected-token failure with the source line the
// token appears on.
func (p *Parser) errExpected(what string) error {
	return p.errAt(p.cur, fmt.Sprintf("expected %s, got %s (%q)", what, p.cur.Type, p.cur.Lexeme))
}

func (p *Parser) errAt(tok Token, msg string) error {
	snippet := ""
	if idx := tok.Line - 1; idx >= 0 && idx < len(p.lines) {
		snippet = strings.TrimSpace(p.lines[idx])
	}
	return &ParseError{Found: tok, Msg: msg, Snippet: snippet}
}

//  Top level

func (p *Parser) parseUnit() ([]Decl, error) {
	var decls []Decl
	for p.cur.Type != EOF {
		d, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (p *Parser) parseTopLevel() (Decl, error) {
	switch p.cur.Type {
	case EXTERN:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		switch p.cur.Type {
		case FN:
			return p.parseFnExtern()
		case USE:
			return p.parseUse(true)
		default:
			return nil, p.errExpected("`fn` or `use`")
		}
	case FN:
		return p.parseFnDef()
	case ENTRY:
		return p.parseEntry()
	case USE:
		return p.parseUse(false)
	default:
		return nil, p.errExpected("`extern`, `fn`, `entry` or `use`")
	}
}

func (p *Parser) parseFnExtern() (Decl, error) {
	if _, err := p.advance(); err != nil { // consume `fn`
		return nil, err
	}
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	decl := &FnExtern{Name: name.Lexeme}
	for {
		if p.cur.Type == RPAREN {
			break
		}
		if p.cur.Type == ELLIPSIS {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			decl.Variadic = true
			break
		}

		var param ExternParam
		// A leading identifier is the parameter name only when a type
		// follows it; otherwise it is itself the (namespaced) type.
		if p.cur.Type == IDENTIFIER && typeStart(p.peek.Type) {
			param.Name = p.cur.Lexeme
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
		param.Type, err = p.parseType()
		if err != nil {
			return nil, err
		}
		decl.Params = append(decl.Params, param)

		if p.cur.Type == COMMA {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.cur.Type == ELLIPSIS {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			decl.Variadic = true
		}
		break
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	if p.cur.Type == ARROW {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if decl.Returns, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

// typeStart reports whether tt can begin a type expression. Used to
// split `name type` from a bare type in extern parameter lists.
func typeStart(tt TokenType) bool {
	return tt == IDENTIFIER || tt == STAR || tt == LBRACKET || tt == LPAREN
}

func (p *Parser) parseFnDef() (Decl, error) {
	if _, err := p.advance(); err != nil { // consume `fn`
		return nil, err
	}
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	def := &FnDef{Name: name.Lexeme}
	for p.cur.Type != RPAREN {
		pname, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		ptype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		def.Params = append(def.Params, Param{Name: pname.Lexeme, Type: ptype})
		if p.cur.Type != COMMA {
			break
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	if p.cur.Type == ARROW {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if def.Returns, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if def.Body, err = p.parseBlock(true); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *Parser) parseEntry() (Decl, error) {
	if _, err := p.advance(); err != nil { // consume `entry`
		return nil, err
	}
	e := &Entry{}
	var err error
	if p.cur.Type == ARROW {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if e.Returns, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if e.Body, err = p.parseBlock(true); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseUse(external bool) (Decl, error) {
	if _, err := p.advance(); err != nil { // consume `use`
		return nil, err
	}
	first, err := p.parseUseString()
	if err != nil {
		return nil, err
	}
	u := &Use{External: external, Path: first}
	if p.cur.Type == STR_STATIC || p.cur.Type == STR_HEAP {
		second, err := p.parseUseString()
		if err != nil {
			return nil, err
		}
		u.Kind, u.Path = first, second
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return u, nil
}

func (p *Parser) parseUseString() ([]byte, error) {
	if p.cur.Type != STR_STATIC && p.cur.Type != STR_HEAP {
		return nil, p.errExpected("string literal")
	}
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}
	return []byte(tok.Lexeme), nil
}

//  Blocks and statements

// parseBlock consumes "{ ... }". When tailed is true the block may end
// with a tail expression; when false (statement position, loop bodies)
// a would-be tail is a parse error.
func (p *Parser) parseBlock(tailed bool) (*Block, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	b := &Block{}
	for {
		switch p.cur.Type {
		case RBRACE:
			_, err := p.advance()
			return b, err
		case EOF:
			return nil, p.errExpected("RBRACE")
		case LET:
			s, err := p.parseLet()
			if err != nil {
				return nil, err
			}
			b.Stmts = append(b.Stmts, s)
		case BREAK:
			s, err := p.parseBreak()
			if err != nil {
				return nil, err
			}
			b.Stmts = append(b.Stmts, s)
		case RETURN:
			s, err := p.parseReturn()
			if err != nil {
				return nil, err
			}
			b.Stmts = append(b.Stmts, s)
		default:
			x, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if p.cur.Type == SEMICOLON {
				if _, err := p.advance(); err != nil {
					return nil, err
				}
				b.Stmts = append(b.Stmts, &ExprStmt{X: x})
				continue
			}
			if isBlockLike(x) && !exprHasTail(x) {
				// Statement-position block or conditional: legal
				// without a semicolon, and tail-free by construction.
				b.Stmts = append(b.Stmts, &ExprStmt{X: x})
				continue
			}
			if !tailed || p.cur.Type != RBRACE {
				return nil, p.errExpected("SEMICOLON")
			}
			b.Tail = x
			_, err = p.expect(RBRACE)
			return b, err
		}
	}
}

func (p *Parser) parseLet() (Stmt, error) {
	if _, err := p.advance(); err != nil { // consume `let`
		return nil, err
	}
	s := &LetStmt{}
	if p.cur.Type == MUT {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		s.Mutable = true
	}
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	s.Name = name.Lexeme
	if p.cur.Type == COLON {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if s.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	if s.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseBreak() (Stmt, error) {
	if _, err := p.advance(); err != nil { // consume `break`
		return nil, err
	}
	s := &BreakStmt{}
	var err error
	if p.cur.Type != SEMICOLON {
		if s.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	if _, err := p.advance(); err != nil { // consume `return`
		return nil, err
	}
	s := &ReturnStmt{}
	var err error
	if p.cur.Type != SEMICOLON {
		if s.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return s, nil
}

// isBlockLike reports whether x is a block or conditional, the two
// forms that may stand as statements without a terminating semicolon.
func isBlockLike(x Expr) bool {
	switch x.(type) {
	case *BlockExpr, *IfExpr:
		return true
	}
	return false
}

// exprHasTail reports whether a block-like expression carries a tail
// anywhere in its branch chain, which disqualifies it from statement
// position.
func exprHasTail(x Expr) bool {
	switch n := x.(type) {
	case *BlockExpr:
		return n.Block.Tail != nil
	case *IfExpr:
		return ifHasTail(n)
	}
	return false
}

func ifHasTail(n *IfExpr) bool {
	if n.Then.Tail != nil {
		return true
	}
	if n.ElseIf != nil {
		return ifHasTail(n.ElseIf)
	}
	return n.Else != nil && n.Else.Tail != nil
}

//  Expressions

// parseExpression is the entry point for expression parsing: the
// assignment level. Assignment does not chain; its right-hand side may
// contain another assignment only behind parentheses.
func (p *Parser) parseExpression() (Expr, error) {
	lhs, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != ASSIGN {
		return lhs, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return &AssignExpr{Target: lhs, Value: rhs}, nil
}

// parseComparison handles < <= == >= >. All five share one level and
// associate left, so a < b < c means (a < b) < c.
func (p *Parser) parseComparison() (Expr, error) {
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch p.cur.Type {
		case LESS:
			op = OpLt
		case LESS_EQ:
			op = OpLe
		case EQUALS:
			op = OpEq
		case GREATER_EQ:
			op = OpGe
		case GREATER:
			op = OpGt
		default:
			return expr, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
}

// parseAdditive handles + and -.
func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == PLUS || p.cur.Type == MINUS {
		op := OpAdd
		if p.cur.Type == MINUS {
			op = OpSub
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseMultiplicative handles * / %.
func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch p.cur.Type {
		case STAR:
			op = OpMul
		case SLASH:
			op = OpDiv
		case PERCENT:
			op = OpRem
		default:
			return expr, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
}

// parseCall handles postfix argument lists, which bind tighter than any
// binary operator and associate left: f(1)(2) is Call(Call(f,[1]),[2]).
func (p *Parser) parseCall() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == LPAREN {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		var args []Expr
		for p.cur.Type != RPAREN {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Type != COMMA {
				break
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		expr = &CallExpr{Fn: expr, Args: args}
	}
	return expr, nil
}

// parseAtom handles literals, lvalue references, loops, parenthesised
// expressions, and expression-position blocks and conditionals.
func (p *Parser) parseAtom() (Expr, error) {
	switch p.cur.Type {
	case INTEGER:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		v, err := p.intValue(tok)
		if err != nil {
			return nil, err
		}
		return &IntLit{Value: v}, nil
	case CSTR_STATIC, CSTR_HEAP:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &CStrLit{Value: []byte(tok.Lexeme)}, nil
	case IDENTIFIER:
		ns, err := p.parseNSIdent()
		if err != nil {
			return nil, err
		}
		return &VarRef{Name: ns}, nil
	case LOOP:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		body, err := p.parseBlock(false)
		if err != nil {
			return nil, err
		}
		return &LoopExpr{Body: body}, nil
	case LPAREN:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case LBRACE:
		blk, err := p.parseBlock(true)
		if err != nil {
			return nil, err
		}
		return &BlockExpr{Block: blk}, nil
	case IF:
		return p.parseIf()
	default:
		return nil, p.errExpected("expression")
	}
}

func (p *Parser) parseIf() (*IfExpr, error) {
	if _, err := p.advance(); err != nil { // consume `if`
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	e := &IfExpr{Cond: cond, Then: then}
	if p.cur.Type != ELSE {
		return e, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Type == IF {
		if e.ElseIf, err = p.parseIf(); err != nil {
			return nil, err
		}
		return e, nil
	}
	if e.Else, err = p.parseBlock(true); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseNSIdent() (NSIdent, error) {
	tok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	ns := NSIdent{tok.Lexeme}
	for p.cur.Type == DBL_COLON {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		tok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		ns = append(ns, tok.Lexeme)
	}
	return ns, nil
}

// intValue converts an integer token to its two's-complement value.
// Underscore separators are stripped here; the token payload keeps them.
func (p *Parser) intValue(tok Token) (uint64, error) {
	s := strings.ReplaceAll(tok.Lexeme, "_", "")
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, p.errAt(tok, fmt.Sprintf("integer literal %s out of range", tok.Lexeme))
		}
		return uint64(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, p.errAt(tok, fmt.Sprintf("integer literal %s out of range", tok.Lexeme))
	}
	return v, nil
}

//  Types

func (p *Parser) parseType() (Type, error) {
	switch p.cur.Type {
	case IDENTIFIER:
		ns, err := p.parseNSIdent()
		if err != nil {
			return nil, err
		}
		return &NamedType{Name: ns}, nil
	case STAR:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		t := &PtrType{}
		if p.cur.Type == DYN {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			t.Dyn = true
		}
		switch p.cur.Type {
		case CONST:
			// Mutable stays false.
		case MUT:
			t.Mutable = true
		default:
			return nil, p.errExpected("`const` or `mut`")
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		if t.Elem, err = p.parseType(); err != nil {
			return nil, err
		}
		return t, nil
	case LBRACKET:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.cur.Type == SEMICOLON {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			tok, err := p.expect(INTEGER)
			if err != nil {
				return nil, err
			}
			n, err := p.arrayLen(tok)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			return &ArrayType{Elem: elem, Len: n}, nil
		}
		if _, err := p.expect(RBRACKET); err != nil {
			return nil, err
		}
		return &SliceType{Elem: elem}, nil
	case LPAREN:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		t := &TupleType{}
		for p.cur.Type != RPAREN {
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			t.Elems = append(t.Elems, elem)
			if p.cur.Type != COMMA {
				break
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, p.errExpected("type")
	}
}

// arrayLen converts an array-length token, rejecting negative literals.
func (p *Parser) arrayLen(tok Token) (uint64, error) {
	s := strings.ReplaceAll(tok.Lexeme, "_", "")
	if strings.HasPrefix(s, "-") {
		return 0, p.errAt(tok, fmt.Sprintf("array length %s cannot be negative", tok.Lexeme))
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, p.errAt(tok, fmt.Sprintf("array length %s out of range", tok.Lexeme))
	}
	return v, nil
}
