package frontend

import (
	"fmt"
	"os"
)

// keywords maps source text to its keyword TokenType. Keyword recognition
// happens after the full identifier run is collected, so keywords always
// win over the identifier rule for exact matches and never split a longer
// identifier ("entryway" stays an identifier).
var keywords = map[string]TokenType{
	"let":    LET,
	"const":  CONST,
	"mut":    MUT,
	"fn":     FN,
	"use":    USE,
	"extern": EXTERN,
	"return": RETURN,
	"yield":  YIELD,
	"break":  BREAK,
	"if":     IF,
	"else":   ELSE,
	"loop":   LOOP,
	"static": STATIC,
	"entry":  ENTRY,
	"dyn":    DYN,
}

// DefaultMaxStringLen bounds the decoded length of a single string
// literal unless the caller overrides Lexer.MaxStringLen.
const DefaultMaxStringLen = 1 << 16

// Lexer holds all mutable state for a single scanning pass over src.
// It is pull-based: the parser (or any other driver) calls NextToken
// repeatedly; once EOF has been produced every further call returns EOF
// again, so the end of input is a terminal state.
type Lexer struct {
	src     []byte
	pos     int // index of the next byte to consume
	line    int // current 1-based source line
	prevEnd int // byte offset just past the previous token

	// MaxStringLen caps the decoded byte length of one string literal.
	// Exceeding it yields a StringTooLong error instead of unbounded
	// buffering.
	MaxStringLen int
}

// NewLexer returns a Lexer over the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, MaxStringLen: DefaultMaxStringLen}
}

// NewFileLexer opens path and returns a Lexer over its contents. The
// returned error wraps the underlying OS error when the file cannot be
// read.
func NewFileLexer(path string) (*Lexer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}
	return NewLexer(data), nil
}

// peek returns the byte at the current position without advancing.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the byte one position ahead of the current position.
func (l *Lexer) peek2() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one byte and returns it.
func (l *Lexer) advance() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
	}
	return b
}

// skipWhitespace discards control characters and spaces (byte values
// 0 through 32).
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && l.src[l.pos] <= 32 {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to
// end-of-line. The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.pos++
	}
}

// skipBlockComment discards everything up to and including the closing
// "*/". Block comments do not nest. The opening "/*" must already have
// been consumed.
func (l *Lexer) skipBlockComment() error {
	startLine := l.line
	startOff := l.pos
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return nil
		}
		l.advance()
	}
	return &LexError{Kind: UnterminatedComment, Line: startLine, Offset: startOff}
}

// scanIdent collects a full identifier or keyword token. The first
// character (ASCII letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	line := l.line
	start := l.pos
	for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
		l.pos++
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return l.token(tt, lexeme, line, start)
}

// scanNumber collects an integer or float literal. Integers take an
// optional leading '-' (the minus must be directly followed by a digit,
// which is how l.nextToken dispatched here) and keep '_' separators in
// the payload. A '.' with a digit behind it promotes a plain digit run
// to a float; signed or underscored runs never promote, matching the
// longest-match behaviour of the literal rules.
func (l *Lexer) scanNumber() Token {
	line := l.line
	start := l.pos
	negative := false
	if l.peek() == '-' {
		negative = true
		l.pos++
	}
	underscore := false
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		if l.src[l.pos] == '_' {
			underscore = true
		}
		l.pos++
	}

	if !negative && !underscore && l.peek() == '.' && isDigit(l.peek2()) {
		l.pos++ // consume '.'
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		return l.token(FLOAT, string(l.src[start:l.pos]), line, start)
	}

	return l.token(INTEGER, string(l.src[start:l.pos]), line, start)
}

// scanString runs the string sub-lexer for one literal. prefixLen is the
// number of bytes before the opening quote (0 for "...", 1 for c"..."
// and b"..."); the opening quote is still at l.peek(). On success the
// returned token is the static variant of base when the payload was a
// plain substring copy, or the heap variant when at least one escape had
// to be decoded into the accumulation buffer.
//
// The accumulator always holds exactly the decoded content: escape
// markers never survive into the payload, and the literal kind chosen by
// the prefix never changes mid-literal.
func (l *Lexer) scanString(base TokenType, prefixLen int) (Token, error) {
	line := l.line
	start := l.pos - prefixLen
	l.advance() // consume opening "

	var buf []byte
	escaped := false
	for {
		if l.pos >= len(l.src) {
			return Token{}, &LexError{Kind: UnterminatedString, Line: line, Offset: start}
		}
		if len(buf) > l.MaxStringLen {
			return Token{}, &LexError{Kind: StringTooLong, Line: line, Offset: start}
		}
		b := l.advance()
		if b == '"' {
			break
		}
		if b != '\\' {
			buf = append(buf, b)
			continue
		}

		// Escape decoding. Multi-byte escapes are unsupported; every
		// escape produces exactly one byte.
		escaped = true
		if l.pos >= len(l.src) {
			return Token{}, &LexError{Kind: UnterminatedString, Line: line, Offset: start}
		}
		escLine := l.line
		escOff := l.pos - 1
		e := l.advance()
		switch e {
		case '0':
			buf = append(buf, 0x00)
		case 'a':
			buf = append(buf, 0x07)
		case 'b':
			buf = append(buf, 0x08)
		case 'e':
			buf = append(buf, 0x1b)
		case 'f':
			buf = append(buf, 0x0c)
		case 'n':
			buf = append(buf, 0x0a)
		case 'r':
			buf = append(buf, 0x0d)
		case 't':
			buf = append(buf, 0x09)
		case 'v':
			buf = append(buf, 0x0b)
		case '\\':
			buf = append(buf, '\\')
		case '"':
			buf = append(buf, '"')
		case 'x':
			hi, ok1 := hexDigit(l.peek())
			lo, ok2 := hexDigit(l.peek2())
			if !ok1 || !ok2 {
				return Token{}, &LexError{
					Kind: InvalidEscape, Line: escLine, Offset: escOff,
					Detail: fmt.Sprintf("\\x%c%c", l.peek(), l.peek2()),
				}
			}
			l.advance()
			l.advance()
			buf = append(buf, hi<<4|lo)
		default:
			return Token{}, &LexError{
				Kind: InvalidEscape, Line: escLine, Offset: escOff,
				Detail: fmt.Sprintf("\\%c", e),
			}
		}
	}

	tt := base
	if escaped {
		tt++ // each *_STATIC constant is directly followed by its *_HEAP twin
	}
	return l.token(tt, string(buf), line, start), nil
}

// token fills in the extent bookkeeping shared by every scan function.
func (l *Lexer) token(tt TokenType, lexeme string, line, start int) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  lexeme,
		Line:    line,
		Offset:  start,
		Length:  l.pos - start,
		Skipped: start - l.prevEnd,
	}
	l.prevEnd = l.pos
	return tok
}

// punct emits a fixed punctuation token of the given spelling, whose
// bytes have already been consumed.
func (l *Lexer) punct(tt TokenType, lexeme string, line int) Token {
	return l.token(tt, lexeme, line, l.pos-len(lexeme))
}

// NextToken skips whitespace/comments and returns the next token.
// After the EOF token has been returned, every further call returns EOF
// again. Lexical failures are returned as a *LexError, never encoded in
// the token stream.
func (l *Lexer) NextToken() (Token, error) {
	// Skip whitespace and both comment styles in a loop so that a
	// comment followed by more whitespace is handled.
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return l.token(EOF, "", l.line, l.pos), nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.pos += 2
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			l.pos += 2
			if err := l.skipBlockComment(); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	ch := l.peek()
	line := l.line

	if ch == '"' {
		return l.scanString(STR_STATIC, 0)
	}
	if (ch == 'c' || ch == 'b') && l.peek2() == '"' {
		// String prefixes beat the identifier rule: c"..."/b"..." open a
		// literal, while a lone c or b still lexes as an identifier.
		base := CSTR_STATIC
		if ch == 'b' {
			base = BSTR_STATIC
		}
		l.advance()
		return l.scanString(base, 1)
	}
	if isAlpha(ch) {
		return l.scanIdent(), nil
	}
	if isDigit(ch) || (ch == '-' && isDigit(l.peek2())) {
		return l.scanNumber(), nil
	}

	start := l.pos
	l.advance() // consume the character before the switch
	switch ch {
	case '(':
		return l.punct(LPAREN, "(", line), nil
	case ')':
		return l.punct(RPAREN, ")", line), nil
	case '{':
		return l.punct(LBRACE, "{", line), nil
	case '}':
		return l.punct(RBRACE, "}", line), nil
	case '[':
		return l.punct(LBRACKET, "[", line), nil
	case ']':
		return l.punct(RBRACKET, "]", line), nil
	case ';':
		return l.punct(SEMICOLON, ";", line), nil
	case ',':
		return l.punct(COMMA, ",", line), nil
	case ':':
		if l.peek() == ':' {
			l.advance()
			return l.punct(DBL_COLON, "::", line), nil
		}
		return l.punct(COLON, ":", line), nil
	case '.':
		if l.peek() == '.' && l.peek2() == '.' {
			l.advance()
			l.advance()
			return l.punct(ELLIPSIS, "...", line), nil
		}
		return l.punct(DOT, ".", line), nil
	case '+':
		return l.punct(PLUS, "+", line), nil
	case '-':
		if l.peek() == '>' {
			l.advance()
			return l.punct(ARROW, "->", line), nil
		}
		return l.punct(MINUS, "-", line), nil
	case '*':
		return l.punct(STAR, "*", line), nil
	case '/':
		return l.punct(SLASH, "/", line), nil
	case '%':
		return l.punct(PERCENT, "%", line), nil
	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return l.punct(EQUALS, "==", line), nil
		}
		if l.peek() == '>' {
			l.advance()
			return l.punct(FAT_ARROW, "=>", line), nil
		}
		return l.punct(ASSIGN, "=", line), nil
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.punct(LESS_EQ, "<=", line), nil
		}
		return l.punct(LESS, "<", line), nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.punct(GREATER_EQ, ">=", line), nil
		}
		return l.punct(GREATER, ">", line), nil
	default:
		return Token{}, &LexError{
			Kind: IllegalChar, Line: line, Offset: start,
			Detail: fmt.Sprintf("%q", ch),
		}
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first illegal character, bad escape,
// or unterminated literal/comment.
func Lex(src string) ([]Token, error) {
	l := NewLexer([]byte(src))
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentByte(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func hexDigit(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
