package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/feedback"
)

// printResult writes a tool result for a terminal. The first line carries the
// glyph and is colored by outcome; links are accented and the remaining
// lines of a failure are muted.
func printResult(w io.Writer, res *feedback.ToolResult, theme feedback.Theme) {
	r := lipgloss.NewRenderer(w)
	head := r.NewStyle().Foreground(ansiColor(theme.Success)).Bold(true)
	if res.IsError {
		head = r.NewStyle().Foreground(ansiColor(theme.Error)).Bold(true)
	}
	accent := r.NewStyle().Foreground(ansiColor(theme.Accent)).Underline(true)
	muted := r.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true)

	first, rest, _ := strings.Cut(res.Text, "\n")
	fmt.Fprintln(w, head.Render(first))
	if rest == "" {
		return
	}
	for _, line := range strings.Split(rest, "\n") {
		switch {
		case strings.HasPrefix(line, "https://"):
			line = accent.Render(line)
		case res.IsError && line != "":
			line = muted.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
