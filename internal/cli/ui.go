package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/parse"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorTrack  = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255") // bright white
	colorSubtle = lipgloss.Color("245") // gray
	colorMuted  = lipgloss.Color("240") // dim gray
)

var (
	// StyleTitle renders headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTrack)

	// StyleHighlight renders patterns and addresses.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTrack)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleNote    = lipgloss.NewStyle().Foreground(colorSubtle)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorTrack)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleOK.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleWarn.Render(iconWarning)+" "+styleWarn.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleNote.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printStats prints "N nodes · M primitives · cached" with zero counts
// left out.
func printStats(nodeCount, primitiveCount int, cached bool) {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, StyleDim.Render(plural(nodeCount, "node")))
	}
	if primitiveCount > 0 {
		parts = append(parts, StyleDim.Render(plural(primitiveCount, "primitive")))
	}
	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleNote.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// =============================================================================
// Errors
// =============================================================================

// PrintError writes a failed command's error to w. Coded errors show the
// message and a muted code; syntax errors use the parser's message so the
// position is kept.
func PrintError(w io.Writer, err error) {
	code := errors.GetCode(err)
	if code == "" {
		fmt.Fprintln(w, styleFail.Render(iconError)+" "+err.Error())
		return
	}
	msg := errors.UserMessage(err)
	var perr *parse.Error
	if stderrors.As(err, &perr) {
		msg = perr.Error()
	}
	fmt.Fprintln(w, styleFail.Render(iconError)+" "+msg+" "+StyleDim.Render("("+string(code)+")"))
}
