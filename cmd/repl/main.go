package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"gofun/pkg/compiler"
)

const (
	historyFile = ".gofun_history"
	promptMain  = "==> "
)

var banner = "gofun REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

var helpText = `
REPL commands:
  :quit    Exit the REPL
  :reset   Discard the accumulated program
  :asm     Recompile the program and print the listing
  :help    Show this help
`

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func main() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyPath()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath()); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println(banner)

	// Each input must be a complete declaration; a line that breaks the
	// accumulated program is reported and discarded.
	var program []string
	for {
		input, err := line.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			fmt.Println()
			continue
		}
		if err != nil { // io.EOF
			fmt.Println()
			return
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		switch trimmed {
		case ":quit":
			return
		case ":help":
			fmt.Print(helpText)
			continue
		case ":reset":
			program = nil
			fmt.Println("program cleared")
			continue
		case ":asm":
			compileAndPrint(strings.Join(program, "\n"))
			continue
		}

		candidate := append(append([]string{}, program...), input)
		src := strings.Join(candidate, "\n")
		asm, err := compiler.Compile(src)
		if err != nil {
			fmt.Println(red(err.Error()))
			continue
		}
		program = candidate
		fmt.Print(green(asm))
	}
}

func compileAndPrint(src string) {
	asm, err := compiler.Compile(src)
	if err != nil {
		fmt.Println(red(err.Error()))
		return
	}
	fmt.Print(green(asm))
}
