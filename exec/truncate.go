package exec

import (
	"fmt"
	"strings"
)

// Limits applied to collaborator output quoted in error messages.
const (
	DefaultMaxLines = 200
	DefaultMaxBytes = 16 * 1024
)

// TruncateTail keeps the last maxLines lines or maxBytes bytes of s, whichever
// limit is hit first, and reports whether anything was dropped. If the last
// line alone exceeds maxBytes, its tail is returned.
func TruncateTail(s string, maxLines, maxBytes int) (string, bool) {
	if s == "" {
		return s, false
	}
	trailing := strings.HasSuffix(s, "\n")
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) <= maxLines && len(s) <= maxBytes {
		return s, false
	}

	budget := maxBytes
	if trailing {
		budget--
	}
	var kept []string
	size := 0
	for i := len(lines) - 1; i >= 0 && len(kept) < maxLines; i-- {
		n := len(lines[i])
		if len(kept) > 0 {
			n++
		}
		if size+n > budget {
			if len(kept) == 0 {
				tail := lines[i]
				if len(tail) > maxBytes {
					tail = tail[len(tail)-maxBytes:]
				}
				return tail, true
			}
			break
		}
		kept = append(kept, lines[i])
		size += n
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	out := strings.Join(kept, "\n")
	if trailing {
		out += "\n"
	}
	return out, true
}

// truncateMessage limits s for use in an error message, noting how much of
// the captured output was dropped.
func truncateMessage(s string, totalLines int) string {
	out, truncated := TruncateTail(s, DefaultMaxLines, DefaultMaxBytes)
	if !truncated {
		return out
	}
	shown := strings.Count(strings.TrimSuffix(out, "\n"), "\n") + 1
	return fmt.Sprintf("[showing last %d of %d lines]\n%s", shown, totalLines, out)
}
