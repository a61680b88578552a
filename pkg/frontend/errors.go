package frontend

import "fmt"

// LexErrorKind classifies the failure modes of the lexer. Malformed input
// is always reported through one of these, never through an EOF token, so
// a clean end of input and a broken literal can never be confused.
type LexErrorKind int

const (
	IllegalChar         LexErrorKind = iota // byte that starts no token
	UnterminatedComment                     // /* without matching */ before EOF
	UnterminatedString                      // string literal still open at EOF
	InvalidEscape                           // unknown escape or bad \xHH hex digit
	StringTooLong                           // literal exceeds Lexer.MaxStringLen
)

func (k LexErrorKind) String() string {
	switch k {
	case IllegalChar:
		return "illegal character"
	case UnterminatedComment:
		return "unterminated block comment"
	case UnterminatedString:
		return "unterminated string literal"
	case InvalidEscape:
		return "invalid escape sequence"
	case StringTooLong:
		return "string literal too long"
	}
	return fmt.Sprintf("LexErrorKind(%d)", int(k))
}

// LexError is a lexical failure at a known source position.
type LexError struct {
	Kind   LexErrorKind
	Line   int    // 1-based line of the offending byte
	Offset int    // byte offset of the offending byte
	Detail string // optional, e.g. the offending character or escape
}

func (e *LexError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("line %d: %s %s", e.Line, e.Kind, e.Detail)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
}

// ParseError is the first (and only, parsing is fail-fast) syntax error
// found in a compilation unit. Found is the token that did not fit the
// grammar; Snippet is the trimmed source line it appeared on.
type ParseError struct {
	Found   Token
	Msg     string
	Snippet string
}

func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("line %d: %s", e.Found.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s\n  |> %s", e.Found.Line, e.Msg, e.Snippet)
}
