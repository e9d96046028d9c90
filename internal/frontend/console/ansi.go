package console

import "fmt"

// ANSI escape codes used by the menus.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

// StripANSI removes all \033[...m sequences from s.
func StripANSI(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}

// healthColor picks green, yellow or red by the fraction of health left.
func healthColor(hp, maxHP int) string {
	switch {
	case maxHP <= 0 || hp*4 <= maxHP:
		return BrightRed
	case hp*2 <= maxHP:
		return BrightYellow
	default:
		return BrightGreen
	}
}

// healthBar renders "hp/max" colored by how hurt the holder is.
func healthBar(hp, maxHP int) string {
	return Colorf(healthColor(hp, maxHP), "%d/%d", hp, maxHP)
}
