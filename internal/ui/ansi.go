package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	symCheck = "✔"
	symCross = "✖"
)

// SetOutput redirects OK/Info and Fail; nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

func OK(msg string)   { fmt.Fprintln(stdout, SuccessStyle().Render(symCheck+" "+msg)) }
func Info(msg string) { fmt.Fprintln(stdout, MutedStyle().Render(msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, ErrorStyle().Render(symCross+" "+msg)) }
