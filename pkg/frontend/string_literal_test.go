package frontend

import (
	"errors"
	"testing"
)

// lexOne scans a single literal and asserts nothing else precedes EOF.
func lexOne(t *testing.T, input string) (Token, error) {
	t.Helper()
	lx := NewLexer([]byte(input))
	tok, err := lx.NextToken()
	if err != nil {
		return Token{}, err
	}
	next, err := lx.NextToken()
	if err != nil {
		t.Fatalf("NextToken() after literal error = %v", err)
	}
	if next.Type != EOF {
		t.Fatalf("trailing token %v after literal", next)
	}
	return tok, nil
}

func TestStringKinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType TokenType
		want     string
	}{
		{"Plain Static", `"hi"`, STR_STATIC, "hi"},
		{"Plain Heap", `"h\n"`, STR_HEAP, "h\n"},
		{"C Static", `c"hi"`, CSTR_STATIC, "hi"},
		{"C Heap", `c"h\n"`, CSTR_HEAP, "h\n"},
		{"Byte Static", `b"hi"`, BSTR_STATIC, "hi"},
		{"Byte Heap", `b"h\n"`, BSTR_HEAP, "h\n"},
		{"Empty", `""`, STR_STATIC, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := lexOne(t, tt.input)
			if err != nil {
				t.Fatalf("NextToken() error = %v", err)
			}
			if tok.Type != tt.wantType || tok.Lexeme != tt.want {
				t.Errorf("NextToken() = %v %q, want %v %q", tok.Type, tok.Lexeme, tt.wantType, tt.want)
			}
		})
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Newline Tab", `"\n\t"`, "\n\t"},
		{"Null", `"\0"`, "\x00"},
		{"Bell Backspace", `"\a\b"`, "\x07\x08"},
		{"Escape Formfeed", `"\e\f"`, "\x1b\x0c"},
		{"Carriage Vertical", `"\r\v"`, "\r\x0b"},
		{"Backslash Quote", `"\\\""`, `\"`},
		{"Hex", `"\x41\x42"`, "AB"},
		{"Hex Case", `"\xfF"`, "\xff"},
		{"Mixed", `"a\x20b"`, "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := lexOne(t, tt.input)
			if err != nil {
				t.Fatalf("NextToken() error = %v", err)
			}
			if tok.Type != STR_HEAP {
				t.Errorf("NextToken() type = %v, want STR_HEAP", tok.Type)
			}
			if tok.Lexeme != tt.want {
				t.Errorf("NextToken() payload = %q, want %q", tok.Lexeme, tt.want)
			}
		})
	}
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind LexErrorKind
	}{
		{"Unterminated", `"abc`, UnterminatedString},
		{"Unterminated After Backslash", `"abc\`, UnterminatedString},
		{"Unknown Escape", `"\q"`, InvalidEscape},
		{"Bad Hex Digit", `"\xZZ"`, InvalidEscape},
		{"Half Hex", `"\x4"`, InvalidEscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lexOne(t, tt.input)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("NextToken() error = %v, want *LexError", err)
			}
			if lexErr.Kind != tt.wantKind {
				t.Errorf("NextToken() kind = %v, want %v", lexErr.Kind, tt.wantKind)
			}
		})
	}
}

func TestStringMaxLen(t *testing.T) {
	lx := NewLexer([]byte(`"abcd"`))
	lx.MaxStringLen = 3
	_, err := lx.NextToken()
	var lexErr *LexError
	if !errors.As(err, &lexErr) || lexErr.Kind != StringTooLong {
		t.Fatalf("NextToken() error = %v, want StringTooLong", err)
	}

	lx = NewLexer([]byte(`"abc"`))
	lx.MaxStringLen = 3
	tok, err := lx.NextToken()
	if err != nil {
		t.Fatalf("NextToken() error = %v", err)
	}
	if tok.Lexeme != "abc" {
		t.Errorf("NextToken() payload = %q, want %q", tok.Lexeme, "abc")
	}
}
