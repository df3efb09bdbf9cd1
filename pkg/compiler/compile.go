package compiler

// Compile translates fun source text into a complete x86-64 System V
// assembly listing in AT&T syntax, ready for the GNU assembler. On failure
// the listing is empty and the error carries the first diagnostic; the two
// are mutually exclusive.
func Compile(src string) (string, error) {
	tokens, err := Lex(src)
	if err != nil {
		return "", err
	}

	stmts, err := Parse(tokens, src)
	if err != nil {
		return "", err
	}

	syms := NewSymbolTable()
	return Generate(stmts, syms)
}
