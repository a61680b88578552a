package frontend

// Parse consumes the lexer's token stream and returns the top-level
// declarations of one compilation unit.
func Parse(lx *Lexer) ([]Decl, error) {
	p, err := newParser(lx)
	if err != nil {
		return nil, err
	}
	return p.parseUnit()
}

// ParseSource parses a compilation unit held in memory.
func ParseSource(src string) ([]Decl, error) {
	return Parse(NewLexer([]byte(src)))
}

// ParseFile parses the compilation unit stored at path.
func ParseFile(path string) ([]Decl, error) {
	lx, err := NewFileLexer(path)
	if err != nil {
		return nil, err
	}
	return Parse(lx)
}
