package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), fmt.Sprintf(format, args...))
}

// printTree writes tree lines, dimming the box-drawing prefix and anchor rows.
func printTree(w io.Writer, lines []string) {
	for _, line := range lines {
		prefix, rest := splitTreePrefix(line)
		if strings.Contains(rest, " == ") || strings.Contains(rest, " >= ") || strings.Contains(rest, " <= ") {
			fmt.Fprintln(w, styleDim.Render(prefix)+styleLabel.Render(rest))
			continue
		}
		fmt.Fprintln(w, styleDim.Render(prefix)+rest)
	}
}

func splitTreePrefix(line string) (string, string) {
	i := strings.IndexFunc(line, func(r rune) bool {
		return !strings.ContainsRune("├└│─ ", r)
	})
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i:]
}

func printStat(w io.Writer, label string, n int) {
	fmt.Fprintf(w, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-24s", label)), styleNumber.Render(fmt.Sprint(n)))
}
