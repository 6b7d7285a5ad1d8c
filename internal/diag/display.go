package diag

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

// Display prints an internal-compiler-error banner for an Unsupported
// diagnostic, the way the teacher's displayICE prints a banner for the
// compiler's own internal errors.
func (u *Unsupported) Display() {
	errorStyleBG.Print(" internal error ")
	errorColorFG.Println(" " + u.Operation)

	infoColorFG.Printf("  id: %s\n", u.ID)
	fmt.Println("  operands:")
	for _, operand := range u.Operands {
		fmt.Println("    - " + operand)
	}
}

// DisplayWarning prints a non-fatal advisory about a defensive fallthrough
// (e.g. the oblivious SUB's unreachable branch) without treating it as a
// hard failure.
func DisplayWarning(context, message string) {
	warnStyleBG.Print(" " + context + " ")
	fmt.Println(" " + message)
}

// Banner renders a short section header, used by cmd/boundscheck to mirror
// the teacher's habit of bannering each phase of its own output.
func Banner(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", 4) + " " + title + " " + strings.Repeat("-", 4))
}
