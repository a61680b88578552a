package frontend

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestLexErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind LexErrorKind
		wantLine int
	}{
		{"Illegal Character", "let x = @;", IllegalChar, 1},
		{"Unterminated Comment", "x\n/* open", UnterminatedComment, 2},
		{"Unterminated String", "\n\n\"open", UnterminatedString, 3},
		{"Invalid Escape", `"\q"`, InvalidEscape, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("Lex() error = %v, want *LexError", err)
			}
			if lexErr.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", lexErr.Kind, tt.wantKind)
			}
			if lexErr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", lexErr.Line, tt.wantLine)
			}
		})
	}
}

// An unterminated literal is an error, never a silent EOF, so truncated
// input cannot be mistaken for a clean end of the token stream.
func TestTruncatedInputIsNotEOF(t *testing.T) {
	lx := NewLexer([]byte(`"abc`))
	tok, err := lx.NextToken()
	if err == nil {
		t.Fatalf("NextToken() = %v, want error", tok)
	}
}

func TestParseErrorDetails(t *testing.T) {
	_, err := ParseSource("entry {\n  let x 1;\n}")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ParseSource() error = %v, want *ParseError", err)
	}
	if parseErr.Found.Line != 2 {
		t.Errorf("Found.Line = %d, want 2", parseErr.Found.Line)
	}
	if parseErr.Snippet != "let x 1;" {
		t.Errorf("Snippet = %q, want %q", parseErr.Snippet, "let x 1;")
	}
	if !strings.Contains(err.Error(), "|>") {
		t.Errorf("Error() = %q, want source snippet marker", err.Error())
	}
}

func TestLexErrorSurfacesThroughParse(t *testing.T) {
	_, err := ParseSource("entry { let x = @; }")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("ParseSource() error = %v, want *LexError", err)
	}
	if lexErr.Kind != IllegalChar {
		t.Errorf("Kind = %v, want IllegalChar", lexErr.Kind)
	}
}

func TestIntegerOverflow(t *testing.T) {
	for _, src := range []string{
		"entry { 99999999999999999999; }",
		"entry { -99999999999999999999; }",
	} {
		_, err := ParseSource(src)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("ParseSource(%q) error = %v, want *ParseError", src, err)
		}
		if !strings.Contains(parseErr.Msg, "out of range") {
			t.Errorf("Msg = %q, want out-of-range complaint", parseErr.Msg)
		}
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/no_such_unit.lok")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ParseFile() error = %v, want fs.ErrNotExist", err)
	}
}
