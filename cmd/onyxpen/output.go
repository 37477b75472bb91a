package main

import (
	"fmt"
	"os"
)

type color string

const (
	colorReset  color = "\033[0m"
	colorRed    color = "\033[31m"
	colorGreen  color = "\033[32m"
	colorYellow color = "\033[33m"
	colorCyan   color = "\033[36m"
	colorBold   color = "\033[1m"
)

func colorize(c color, text string) string {
	if noColor {
		return text
	}
	return string(c) + text + string(colorReset)
}

// stderrLine prints one colored, prefixed status line. User-facing status
// goes to stderr so stdout stays clean for list/show output.
func stderrLine(c color, prefix, format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(c, prefix+fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) {
	stderrLine(colorGreen, "✓ ", format, args...)
}

func printError(format string, args ...any) {
	stderrLine(colorRed, "✗ ", format, args...)
}

func printWarning(format string, args ...any) {
	stderrLine(colorYellow, "⚠ ", format, args...)
}

func printStep(format string, args ...any) {
	stderrLine(colorCyan, "→ ", format, args...)
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "  %s %s\n", colorize(colorBold, label+":"), val)
}
