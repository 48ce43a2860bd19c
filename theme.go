package feedback

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values.
type Theme struct {
	Success int // Success glyph and ticket number
	Error   int // Failure glyph and error text
	Muted   int // Secondary details such as raw output
	Accent  int // Links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Success: 2,
		Error:   1,
		Muted:   8,
		Accent:  5,
	}
}
