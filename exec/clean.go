package exec

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes terminal escape sequences from s and turns CRLF line
// endings into LF. Other bytes, lone carriage returns included, are kept.
func StripANSI(s string) string {
	return strings.ReplaceAll(ansi.Strip(s), "\r\n", "\n")
}
