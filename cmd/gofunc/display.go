package main

import (
	"os"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

// fail prints a tagged stage error to the console and exits.
func fail(stage string, err error) {
	errorStyleBG.Print(stage + " error")
	errorColorFG.Println(" " + err.Error())
	os.Exit(1)
}

// info prints an informational message to the user.
func info(msg string) {
	infoStyleBG.Print("gofunc")
	infoColorFG.Println(" " + msg)
}
