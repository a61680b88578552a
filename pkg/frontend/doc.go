// Package frontend implements the lexer and parser for the lok
// language.
//
// The Lexer turns raw source bytes into a flat token stream, tracking
// line numbers and byte extents for every token. The Parser consumes
// that stream with a recursive-descent precedence ladder and produces
// the AST defined in ast.go. Parse, ParseSource and ParseFile are the
// usual entry points; Lex is available when only the token stream is
// wanted.
//
// Every AST node renders itself back to parseable source through its
// String method, so a unit can be parsed, printed and parsed again
// into an identical tree.
package frontend
