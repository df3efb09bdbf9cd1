package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanity-io/litter"

	"gofun/pkg/compiler"
)

const testSource = `pi = 3.1415927;

fun area(r) {
    return pi * r * r;
}

fun main() {
    return area(2.0);
}
`

func main() {
	output := flag.String("o", "", "output path for the assembly listing (default: source path with .s)")
	dumpTokens := flag.Bool("tokens", false, "print the token table before compiling")
	dumpAST := flag.Bool("ast", false, "dump the parsed program before compiling")
	dumpSymbols := flag.Bool("symbols", false, "print the symbol table after codegen")
	flag.Parse()

	src := testSource
	srcPath := ""
	if flag.NArg() > 0 {
		srcPath = flag.Arg(0)
		data, err := os.ReadFile(srcPath)
		if err != nil {
			fail("read", err)
		}
		src = string(data)
	}

	// A gofun.toml next to the source overrides unset flags.
	proj, err := LoadProject(projectDir(srcPath))
	if err != nil {
		fail("project", err)
	}
	if proj != nil {
		if *output == "" {
			*output = proj.Build.Output
		}
		*dumpTokens = *dumpTokens || proj.Build.DumpTokens
		*dumpAST = *dumpAST || proj.Build.DumpAST
	}

	tokens, err := compiler.Lex(src)
	if err != nil {
		fail("lex", err)
	}
	if *dumpTokens {
		fmt.Printf("Tokens (%d)\n", len(tokens))
		for _, tok := range tokens {
			fmt.Println(" ", tok)
		}
		fmt.Println()
	}

	stmts, err := compiler.Parse(tokens, src)
	if err != nil {
		fail("parse", err)
	}
	if *dumpAST {
		litter.Dump(stmts)
	}

	syms := compiler.NewSymbolTable()
	asm, err := compiler.Generate(stmts, syms)
	if err != nil {
		fail("codegen", err)
	}
	if *dumpSymbols {
		fmt.Print(syms)
	}

	if *output == "" && srcPath != "" {
		*output = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".s"
	}
	if *output == "" {
		fmt.Print(asm)
		return
	}
	if err := os.WriteFile(*output, []byte(asm), 0o644); err != nil {
		fail("write", err)
	}
	info(fmt.Sprintf("wrote %s", *output))
}
