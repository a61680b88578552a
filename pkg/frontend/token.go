package frontend

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable / function name
	INTEGER    // decimal integer literal, optional leading '-', '_' separators kept
	FLOAT      // decimal float literal digits '.' digits

	// String literals. The static/heap split records whether escape
	// decoding forced the payload into a separate buffer; the content
	// itself is the same either way.
	STR_STATIC  // "..." with no escapes
	STR_HEAP    // "..." with at least one decoded escape
	CSTR_STATIC // c"..." with no escapes
	CSTR_HEAP   // c"..." with at least one decoded escape
	BSTR_STATIC // b"..." with no escapes
	BSTR_HEAP   // b"..." with at least one decoded escape

	// Keywords
	LET    // "let"
	CONST  // "const"
	MUT    // "mut"
	FN     // "fn"
	USE    // "use"
	EXTERN // "extern"
	RETURN // "return"
	YIELD  // "yield" (reserved, no grammar production yet)
	BREAK  // "break"
	IF     // "if"
	ELSE   // "else"
	LOOP   // "loop"
	STATIC // "static" (reserved, no grammar production yet)
	ENTRY  // "entry"
	DYN    // "dyn"

	// Paired delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	// Punctuation
	COLON     // :
	DBL_COLON // ::
	SEMICOLON // ;
	DOT       // .
	ELLIPSIS  // ...
	COMMA     // ,

	// Operators (order matters in the lexer: ASSIGN only after == fails)
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // %
	ASSIGN     // =
	EQUALS     // ==
	LESS       // <
	LESS_EQ    // <=
	GREATER    // >
	GREATER_EQ // >=
	ARROW      // ->
	FAT_ARROW  // =>
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:         "EOF",
	IDENTIFIER:  "IDENTIFIER",
	INTEGER:     "INTEGER",
	FLOAT:       "FLOAT",
	STR_STATIC:  "STR_STATIC",
	STR_HEAP:    "STR_HEAP",
	CSTR_STATIC: "CSTR_STATIC",
	CSTR_HEAP:   "CSTR_HEAP",
	BSTR_STATIC: "BSTR_STATIC",
	BSTR_HEAP:   "BSTR_HEAP",
	LET:         "LET",
	CONST:       "CONST",
	MUT:         "MUT",
	FN:          "FN",
	USE:         "USE",
	EXTERN:      "EXTERN",
	RETURN:      "RETURN",
	YIELD:       "YIELD",
	BREAK:       "BREAK",
	IF:          "IF",
	ELSE:        "ELSE",
	LOOP:        "LOOP",
	STATIC:      "STATIC",
	ENTRY:       "ENTRY",
	DYN:         "DYN",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	COLON:       "COLON",
	DBL_COLON:   "DBL_COLON",
	SEMICOLON:   "SEMICOLON",
	DOT:         "DOT",
	ELLIPSIS:    "ELLIPSIS",
	COMMA:       "COMMA",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	SLASH:       "SLASH",
	PERCENT:     "PERCENT",
	ASSIGN:      "ASSIGN",
	EQUALS:      "EQUALS",
	LESS:        "LESS",
	LESS_EQ:     "LESS_EQ",
	GREATER:     "GREATER",
	GREATER_EQ:  "GREATER_EQ",
	ARROW:       "ARROW",
	FAT_ARROW:   "FAT_ARROW",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsString reports whether tt is one of the six string-literal categories.
func (tt TokenType) IsString() bool {
	return tt >= STR_STATIC && tt <= BSTR_HEAP
}

// IsKeyword reports whether tt is a reserved word.
func (tt TokenType) IsKeyword() bool {
	return tt >= LET && tt <= DYN
}

// Token is a single lexical unit produced by the Lexer.
//
// Lexeme carries the payload directly: the matched text for identifiers
// and numbers, the decoded byte content for string literals, the fixed
// spelling for keywords and punctuation. Offset/Length give the raw byte
// extent of the matched text (for string literals Length covers the
// prefix and quotes, which is why it can differ from len(Lexeme)).
// Skipped counts the whitespace/comment bytes discarded before the token.
type Token struct {
	Type    TokenType
	Lexeme  string
	Line    int // 1-based source line
	Offset  int // byte offset of the first matched byte
	Length  int // raw byte length of the matched text
	Skipped int // bytes skipped since the previous token
}

func (t Token) String() string {
	return fmt.Sprintf("%-11s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}
